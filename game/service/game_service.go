package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

// Errors shared by the storage implementations and the transports.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Play(ctx context.Context, sessionID string, update SettingsUpdate) (*engine.GameState, error)
	Restart(ctx context.Context, sessionID string) (*engine.GameState, error)
	SelectCard(ctx context.Context, sessionID string, arrayID int) (*SelectResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) (time.Time, error)
}

// ConfigManager handles preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// EventSink receives engine events for a session. Publish is called on the
// session's loop goroutine and must not block or call back into the service.
type EventSink interface {
	Publish(sessionID string, ev engine.Event, state *engine.GameState)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(sessionID string, ev engine.Event, state *engine.GameState)

// Publish calls f.
func (f SinkFunc) Publish(sessionID string, ev engine.Event, state *engine.GameState) {
	f(sessionID, ev, state)
}

// MultiSink fans events out to several sinks.
type MultiSink []EventSink

// Publish forwards to every non-nil sink.
func (m MultiSink) Publish(sessionID string, ev engine.Event, state *engine.GameState) {
	for _, sink := range m {
		if sink != nil {
			sink.Publish(sessionID, ev, state)
		}
	}
}

// Session represents an active game session. Game must only be touched
// through Do, which runs on the session's loop.
type Session struct {
	ID             string
	Game           *engine.Game
	Loop           *engine.Loop
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// Do runs fn against the session's game on its loop and waits for it.
func (s *Session) Do(ctx context.Context, fn func(g *engine.Game)) error {
	return s.Loop.Do(ctx, func() {
		fn(s.Game)
	})
}
