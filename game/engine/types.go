package engine

import (
	"errors"
	"time"
)

const (
	// AvailablePictures is the size of the picture universe boards draw from.
	AvailablePictures = 24

	MinCardsQty = 4
	MaxCardsQty = AvailablePictures * 2
	MaxSpeedMS  = 10000

	// InstantSpeed is the speed sentinel for "no artificial delay".
	InstantSpeed = 0

	// MatchFallbackDelay replaces the match delay when the speed is instant.
	MatchFallbackDelay = 600 * time.Millisecond

	// ClockPeriod is how often the turn clock reports elapsed time.
	ClockPeriod = time.Second

	// TimePlaceholder is displayed while the clock is stopped.
	TimePlaceholder = "--:--"

	// maxPendingSelections is the largest Selection Set the resolver accepts.
	maxPendingSelections = 3
)

var (
	ErrTooManyPairs     = errors.New("pair count exceeds available pictures")
	ErrInvalidPairCount = errors.New("pair count must be positive")
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrCardNotFound     = errors.New("card not found")
	ErrLoopClosed       = errors.New("event loop closed")
	ErrInputLocked      = errors.New("input locked during preview")
	ErrNoScheduler      = errors.New("scheduler is required")
)

// Phase is the controller state of a game.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePreview   Phase = "preview"
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
)

// CardState is the rendering state of a single card.
type CardState string

const (
	CardHidden   CardState = "hidden"
	CardSelected CardState = "selected"
	CardRevealed CardState = "revealed"
	CardMatched  CardState = "matched"
)

// Reasons reported when a selection is ignored.
const (
	ReasonNotRunning    = "not_running"
	ReasonInputLocked   = "input_locked"
	ReasonSelectionFull = "selection_full"
	ReasonNotSelectable = "not_selectable"
)

// CardView is the client-facing representation of a card.
// PictureNumber is only included while the card is face up.
type CardView struct {
	ArrayID       int       `json:"array_id"`
	PictureNumber *int      `json:"picture_number,omitempty"`
	State         CardState `json:"state"`
}

// ElapsedTime is the turn clock reading.
type ElapsedTime struct {
	Minutes int    `json:"minutes"`
	Seconds int    `json:"seconds"`
	Display string `json:"display"`
	Running bool   `json:"running"`
}

// TurnRecord describes one comparison of exactly two cards.
type TurnRecord struct {
	Turn          int       `json:"turn"`
	FirstID       int       `json:"first_id"`
	SecondID      int       `json:"second_id"`
	FirstPicture  int       `json:"first_picture"`
	SecondPicture int       `json:"second_picture"`
	Matched       bool      `json:"matched"`
	MoveCounter   int       `json:"move_counter"`
	Timestamp     time.Time `json:"timestamp"`
}

// SelectOutcome reports what a selection action did.
type SelectOutcome struct {
	Accepted bool        `json:"accepted"`
	Reason   string      `json:"reason,omitempty"`
	ArrayID  int         `json:"array_id"`
	Turn     *TurnRecord `json:"turn,omitempty"`
	// Hidden lists cards flipped back immediately by the instant-mode tie-break.
	Hidden []int `json:"hidden,omitempty"`
	// BoardCleared is set when this action removed the last active pair.
	BoardCleared bool `json:"board_cleared,omitempty"`
}

// GameState is a point-in-time snapshot of a game, safe to hand to other goroutines.
type GameState struct {
	GameID         string       `json:"game_id"`
	Phase          Phase        `json:"phase"`
	Settings       Settings     `json:"settings"`
	Cards          []CardView   `json:"cards"`
	MoveCounter    int          `json:"move_counter"`
	Elapsed        ElapsedTime  `json:"elapsed"`
	InputLocked    bool         `json:"input_locked"`
	RemainingCards int          `json:"remaining_cards"`
	SelectedIDs    []int        `json:"selected_ids"`
	LastChoiceID   *int         `json:"last_choice_id,omitempty"`
	Completed      bool         `json:"completed"`
	StartedAt      time.Time    `json:"started_at,omitempty"`
	TurnHistory    []TurnRecord `json:"turn_history"`
}
