package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// shutdownTimeout bounds how long a deleted session's loop may take to drain.
const shutdownTimeout = 2 * time.Second

// SchedulerFactory builds the scheduler a session's game runs its timers on.
type SchedulerFactory func(loop *engine.Loop) engine.Scheduler

// Option configures a Manager.
type Option func(*Manager)

// WithEventSink forwards every engine event of every session to sink.
func WithEventSink(sink service.EventSink) Option {
	return func(m *Manager) {
		m.sink = sink
	}
}

// WithSchedulerFactory replaces the real-time scheduler, mostly for tests.
func WithSchedulerFactory(factory SchedulerFactory) Option {
	return func(m *Manager) {
		if factory != nil {
			m.newScheduler = factory
		}
	}
}

// Manager handles game session lifecycle
type Manager struct {
	sessions     map[string]*service.Session
	sink         service.EventSink
	newScheduler SchedulerFactory
	mu           sync.RWMutex
}

// NewManager creates a new session manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*service.Session),
		newScheduler: func(loop *engine.Loop) engine.Scheduler {
			return engine.NewLoopScheduler(loop)
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create creates a new session with the given ID and configuration. The
// session's game is idle until Play is called on it.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if config == nil {
		config = engine.DefaultConfig()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	}

	// Check if session already exists (case-insensitive)
	if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	loop := engine.NewLoop()

	var game *engine.Game
	listener := func(ev engine.Event) {
		if m.sink != nil && game != nil {
			m.sink.Publish(id, ev, game.State())
		}
	}

	game, err := engine.NewGame(config.Settings, m.newScheduler(loop), engine.WithListener(listener))
	if err != nil {
		loop.Close()
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Game:           game,
		Loop:           loop,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, exists := m.sessions[strings.ToLower(id)]; exists {
		return session, nil
	}
	return nil, ErrSessionNotFound
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns a copy of every active session, taken under the lock so the
// access times are consistent. The copies share the game and loop.
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		cp := *session
		result = append(result, &cp)
	}

	return result
}

// Delete removes a session and stops its game
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	lowerID := strings.ToLower(id)
	session, exists := m.sessions[lowerID]
	if exists {
		delete(m.sessions, lowerID)
	}
	m.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}

	closeSession(session)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session and
// returns it. LastAccessedAt is only written and read under m.mu.
func (m *Manager) UpdateLastAccessed(id string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return time.Time{}, ErrSessionNotFound
	}

	session.LastAccessedAt = time.Now()
	return session.LastAccessedAt, nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	cutoff := time.Now().Add(-maxAge)
	var expired []*service.Session

	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, session)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		closeSession(session)
	}

	return len(expired)
}

// Shutdown stops every session
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*service.Session)
	m.mu.Unlock()

	for _, session := range sessions {
		closeSession(session)
	}
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func closeSession(session *service.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := session.Do(ctx, func(g *engine.Game) { g.Shutdown() }); err != nil {
		fmt.Printf("Warning: Failed to stop game for session %s: %v\n", session.ID, err)
	}
	session.Loop.Close()
}

// generateSessionID generates a random 4-character session ID not yet in use.
// Callers hold m.mu.
func (m *Manager) generateSessionID() string {
	for {
		// 2 random bytes give 4 hex characters
		bytes := make([]byte, 2)
		rand.Read(bytes)
		id := hex.EncodeToString(bytes)
		if !m.sessionExists(id) {
			return id
		}
	}
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
