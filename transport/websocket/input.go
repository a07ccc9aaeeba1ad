package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/memorygame/game/service"
)

// Client actions
const (
	ActionSelect  = "select"
	ActionRestart = "restart"
	ActionPlay    = "play"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrMissingArrayID = errors.New("array_id is required")
)

// Input is a message sent by a client.
type Input struct {
	Action    string `json:"action"`
	ArrayID   *int   `json:"array_id,omitempty"`
	CardsQty  *int   `json:"cards_qty,omitempty"`
	SpeedMS   *int   `json:"speed_ms,omitempty"`
	ShowCards *bool  `json:"show_cards,omitempty"`
}

// InputHandler executes client actions for a session. A non-nil result is
// sent back to the client that issued the action.
type InputHandler interface {
	HandleInput(ctx context.Context, sessionID string, in Input) (interface{}, error)
}

// ServiceInput dispatches client actions to a game service.
type ServiceInput struct {
	Service service.GameService
}

// HandleInput implements InputHandler.
func (s ServiceInput) HandleInput(ctx context.Context, sessionID string, in Input) (interface{}, error) {
	switch in.Action {
	case ActionSelect:
		if in.ArrayID == nil {
			return nil, ErrMissingArrayID
		}
		return s.Service.SelectCard(ctx, sessionID, *in.ArrayID)

	case ActionRestart:
		return s.Service.Restart(ctx, sessionID)

	case ActionPlay:
		return s.Service.Play(ctx, sessionID, service.SettingsUpdate{
			CardsQty:  in.CardsQty,
			SpeedMS:   in.SpeedMS,
			ShowCards: in.ShowCards,
		})

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, in.Action)
	}
}
