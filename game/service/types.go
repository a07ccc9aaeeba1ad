package service

import (
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// SettingsUpdate overrides some of the current settings before a new game.
// Nil fields keep their current value.
type SettingsUpdate struct {
	CardsQty  *int  `json:"cards_qty,omitempty"`
	SpeedMS   *int  `json:"speed_ms,omitempty"`
	ShowCards *bool `json:"show_cards,omitempty"`
}

// Apply returns base with the update's non-nil fields applied.
func (u SettingsUpdate) Apply(base engine.Settings) engine.Settings {
	if u.CardsQty != nil {
		base.CardsQty = *u.CardsQty
	}
	if u.SpeedMS != nil {
		base.SpeedMS = *u.SpeedMS
	}
	if u.ShowCards != nil {
		base.ShowCards = *u.ShowCards
	}
	return base
}

// SelectResult contains the result of a card selection
type SelectResult struct {
	Accepted     bool               `json:"accepted"`
	Reason       string             `json:"reason,omitempty"`
	ArrayID      int                `json:"array_id"`
	Turn         *engine.TurnRecord `json:"turn,omitempty"`
	Hidden       []int              `json:"hidden,omitempty"`
	BoardCleared bool               `json:"board_cleared,omitempty"`
	Message      string             `json:"message"`
	GameState    *engine.GameState  `json:"game_state"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	CardsQty    int    `json:"cards_qty"`
	SpeedMS     int    `json:"speed_ms"`
	ShowCards   bool   `json:"show_cards"`
	PreviewMS   int    `json:"preview_ms"`
}
