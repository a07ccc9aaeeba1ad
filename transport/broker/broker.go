package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/service"
)

// SubjectPrefix is the root of every subject this package uses.
const SubjectPrefix = "memorygame"

// DefaultURL is used when no NATS URL is configured.
const DefaultURL = nats.DefaultURL

const requestTimeout = 5 * time.Second

// Conn is the part of *nats.Conn the bus needs.
type Conn interface {
	Publish(subj string, data []byte) error
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Message is the payload published for every engine event.
type Message struct {
	SessionID string            `json:"session_id"`
	Event     string            `json:"event"`
	Data      engine.Event      `json:"data"`
	GameState *engine.GameState `json:"game_state,omitempty"`
}

// SelectRequest is the body of a select request.
type SelectRequest struct {
	ArrayID *int `json:"array_id"`
}

// SelectReply answers a select request. Exactly one of Result and Error is set.
type SelectReply struct {
	Result *service.SelectResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// Selector is the part of the game service the request handler drives.
type Selector interface {
	SelectCard(ctx context.Context, sessionID string, arrayID int) (*service.SelectResult, error)
}

// EventSubject returns memorygame.<session>.<event>.
func EventSubject(sessionID string, eventType engine.EventType) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, sessionID, eventType)
}

// SelectSubject returns the request subject for a session.
func SelectSubject(sessionID string) string {
	return fmt.Sprintf("%s.%s.select", SubjectPrefix, sessionID)
}

// Connect dials NATS with the reconnect settings used by the server.
func Connect(url, name string) (*nats.Conn, error) {
	if url == "" {
		url = DefaultURL
	}
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	}
	return nats.Connect(url, opts...)
}

// Bus publishes engine events to NATS and answers select requests.
type Bus struct {
	conn Conn
}

// NewBus wraps a connection.
func NewBus(conn Conn) *Bus {
	return &Bus{conn: conn}
}

// Publish implements service.EventSink. NATS buffers outgoing messages so
// this never blocks the session loop.
func (b *Bus) Publish(sessionID string, ev engine.Event, state *engine.GameState) {
	msg := Message{
		SessionID: sessionID,
		Event:     string(ev.Type),
		Data:      ev,
		GameState: state,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("NATS marshal error for session %s: %v", sessionID, err)
		return
	}
	if err := b.conn.Publish(EventSubject(sessionID, ev.Type), data); err != nil {
		log.Printf("NATS publish error for session %s: %v", sessionID, err)
	}
}

// ServeSelect subscribes to select requests for every session.
func (b *Bus) ServeSelect(sel Selector) (*nats.Subscription, error) {
	subject := SelectSubject("*")
	return b.conn.Subscribe(subject, func(m *nats.Msg) {
		if m.Reply == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		reply := HandleSelect(ctx, sel, m.Subject, m.Data)
		if err := b.conn.Publish(m.Reply, reply); err != nil {
			log.Printf("NATS reply error on %s: %v", m.Subject, err)
		}
	})
}

var errBadSubject = errors.New("malformed select subject")

// SessionFromSubject extracts the session ID of memorygame.<session>.select.
func SessionFromSubject(subject string) (string, error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 || parts[0] != SubjectPrefix || parts[2] != "select" || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", errBadSubject, subject)
	}
	return parts[1], nil
}

// HandleSelect decodes a select request, runs it and encodes the reply.
func HandleSelect(ctx context.Context, sel Selector, subject string, data []byte) []byte {
	reply := handleSelect(ctx, sel, subject, data)
	out, err := json.Marshal(reply)
	if err != nil {
		out, _ = json.Marshal(SelectReply{Error: err.Error()})
	}
	return out
}

func handleSelect(ctx context.Context, sel Selector, subject string, data []byte) SelectReply {
	sessionID, err := SessionFromSubject(subject)
	if err != nil {
		return SelectReply{Error: err.Error()}
	}

	var req SelectRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return SelectReply{Error: "invalid request body"}
	}
	if req.ArrayID == nil {
		return SelectReply{Error: "array_id is required"}
	}

	result, err := sel.SelectCard(ctx, sessionID, *req.ArrayID)
	if err != nil {
		return SelectReply{Error: err.Error()}
	}
	log.Printf("[NATS SELECT] session=%s card=%d accepted=%v", sessionID, *req.ArrayID, result.Accepted)
	return SelectReply{Result: result}
}
