package engine

import "time"

// EventType identifies an engine output.
type EventType string

const (
	EventGameStarted    EventType = "game_started"
	EventCardChanged    EventType = "card_changed"
	EventMovesChanged   EventType = "moves_changed"
	EventTimeChanged    EventType = "time_changed"
	EventInputLock      EventType = "input_lock"
	EventPreviewStarted EventType = "preview_started"
	EventPreviewEnded   EventType = "preview_ended"
	EventCompleted      EventType = "completed"
	EventGameReset      EventType = "game_reset"
	EventSettingsModal  EventType = "settings_modal"
)

// Event is emitted to renderers whenever observable state changes.
// Only the fields relevant to Type are set.
type Event struct {
	Type      EventType `json:"type"`
	GameID    string    `json:"game_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	Cards       []CardView   `json:"cards,omitempty"`
	MoveCounter int          `json:"move_counter,omitempty"`
	Elapsed     *ElapsedTime `json:"elapsed,omitempty"`
	Locked      *bool        `json:"locked,omitempty"`
	Visible     *bool        `json:"visible,omitempty"`
	Turn        *TurnRecord  `json:"turn,omitempty"`
}

// Listener receives engine events on the loop goroutine. It must not block.
type Listener func(Event)

// Hooks are the settings-collaborator callbacks.
type Hooks struct {
	ShowSettings  func()
	CloseSettings func()
}

func boolPtr(b bool) *bool {
	return &b
}
