package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given preset name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a session, shows the settings dialog and deals a
// first board with the preset's settings.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: config '%s' not found. Available configs: %v", err, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: config '%s' not found. Use /api/configs to list available configurations", err, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var state *engine.GameState
	var playErr error
	err = session.Do(ctx, func(g *engine.Game) {
		g.Open()
		playErr = g.Play(config.Settings)
		state = g.State()
	})
	if err == nil {
		err = playErr
	}
	if err != nil {
		s.sessions.Delete(session.ID)
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.CreatedAt,
		GameState:      state,
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	accessed, err := s.sessions.UpdateLastAccessed(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	state, err := snapshot(ctx, session)
	if err != nil {
		return nil, err
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: accessed,
		GameState:      state,
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		state, err := snapshot(ctx, sess)
		if err != nil {
			// Session was deleted while listing
			continue
		}
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      state,
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Play applies a settings update and starts a new game
func (s *gameServiceImpl) Play(ctx context.Context, sessionID string, update SettingsUpdate) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	var state *engine.GameState
	var playErr error
	err = sess.Do(ctx, func(g *engine.Game) {
		playErr = g.Play(update.Apply(g.Settings()))
		state = g.State()
	})
	if err != nil {
		return nil, err
	}
	if playErr != nil {
		return nil, playErr
	}
	return state, nil
}

// Restart deals a new board with the current settings
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	var state *engine.GameState
	var restartErr error
	err = sess.Do(ctx, func(g *engine.Game) {
		restartErr = g.Restart()
		state = g.State()
	})
	if err != nil {
		return nil, err
	}
	if restartErr != nil {
		return nil, restartErr
	}
	return state, nil
}

// SelectCard selects a card in a session's game
func (s *gameServiceImpl) SelectCard(ctx context.Context, sessionID string, arrayID int) (*SelectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	var outcome engine.SelectOutcome
	var state *engine.GameState
	var selectErr error
	err = sess.Do(ctx, func(g *engine.Game) {
		outcome, selectErr = g.Select(arrayID)
		state = g.State()
	})
	if err != nil {
		return nil, err
	}
	if selectErr != nil {
		return nil, selectErr
	}

	return &SelectResult{
		Accepted:     outcome.Accepted,
		Reason:       outcome.Reason,
		ArrayID:      outcome.ArrayID,
		Turn:         outcome.Turn,
		Hidden:       outcome.Hidden,
		BoardCleared: outcome.BoardCleared,
		Message:      selectMessage(outcome),
		GameState:    state,
	}, nil
}

func selectMessage(out engine.SelectOutcome) string {
	switch {
	case !out.Accepted:
		return fmt.Sprintf("Selection of card %d ignored (%s)", out.ArrayID, out.Reason)
	case out.BoardCleared:
		return "All pairs found!"
	case out.Turn != nil && out.Turn.Matched:
		return fmt.Sprintf("Match! Cards %d and %d share picture %d", out.Turn.FirstID, out.Turn.SecondID, out.Turn.FirstPicture)
	case out.Turn != nil:
		return fmt.Sprintf("No match: cards %d and %d", out.Turn.FirstID, out.Turn.SecondID)
	case len(out.Hidden) > 0:
		return fmt.Sprintf("Card %d revealed, cards %v hidden", out.ArrayID, out.Hidden)
	default:
		return fmt.Sprintf("Card %d revealed", out.ArrayID)
	}
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return snapshot(ctx, sess)
}

// GetTurnHistory returns paginated turn history of the current game
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	state, err := snapshot(ctx, sess)
	if err != nil {
		return nil, err
	}
	history := state.TurnHistory
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var turns []engine.TurnRecord
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			turns = append(turns, history[i])
		}
	} else if start < total {
		turns = history[start:end]
	}

	if turns == nil {
		turns = []engine.TurnRecord{}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a preset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func snapshot(ctx context.Context, sess *Session) (*engine.GameState, error) {
	var state *engine.GameState
	if err := sess.Do(ctx, func(g *engine.Game) {
		state = g.State()
	}); err != nil {
		return nil, err
	}
	return state, nil
}
