package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/service"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	mu         sync.Mutex
	published  []published
	handlers   map[string]nats.MsgHandler
	publishErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{handlers: make(map[string]nats.MsgHandler)}
}

func (c *fakeConn) Publish(subj string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{subject: subj, data: data})
	return c.publishErr
}

func (c *fakeConn) Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[subj] = cb
	return nil, nil
}

func (c *fakeConn) last() published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published[len(c.published)-1]
}

type selectorFunc func(ctx context.Context, sessionID string, arrayID int) (*service.SelectResult, error)

func (f selectorFunc) SelectCard(ctx context.Context, sessionID string, arrayID int) (*service.SelectResult, error) {
	return f(ctx, sessionID, arrayID)
}

func TestSubjects(t *testing.T) {
	if got := EventSubject("ab12", engine.EventCardChanged); got != "memorygame.ab12.card_changed" {
		t.Errorf("EventSubject = %s", got)
	}
	if got := SelectSubject("ab12"); got != "memorygame.ab12.select" {
		t.Errorf("SelectSubject = %s", got)
	}
}

func TestSessionFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
		wantErr bool
	}{
		{"memorygame.ab12.select", "ab12", false},
		{"memorygame..select", "", true},
		{"memorygame.ab12.play", "", true},
		{"other.ab12.select", "", true},
		{"memorygame.ab12.select.extra", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			got, err := SessionFromSubject(tt.subject)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("session = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBus_Publish(t *testing.T) {
	conn := newFakeConn()
	bus := NewBus(conn)

	ev := engine.Event{Type: engine.EventMovesChanged, MoveCounter: 3}
	state := &engine.GameState{MoveCounter: 3}
	bus.Publish("ab12", ev, state)

	msg := conn.last()
	if msg.subject != "memorygame.ab12.moves_changed" {
		t.Errorf("subject = %s", msg.subject)
	}

	var decoded Message
	if err := json.Unmarshal(msg.data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.SessionID != "ab12" || decoded.Event != "moves_changed" {
		t.Errorf("unexpected message %+v", decoded)
	}
	if decoded.Data.MoveCounter != 3 || decoded.GameState == nil || decoded.GameState.MoveCounter != 3 {
		t.Errorf("payload not carried: %+v", decoded)
	}
}

func TestBus_PublishErrorDoesNotPanic(t *testing.T) {
	conn := newFakeConn()
	conn.publishErr = errors.New("connection closed")
	bus := NewBus(conn)

	bus.Publish("ab12", engine.Event{Type: engine.EventTimeChanged}, nil)

	if len(conn.published) != 1 {
		t.Errorf("expected one publish attempt, got %d", len(conn.published))
	}
}

func TestHandleSelect(t *testing.T) {
	sel := selectorFunc(func(ctx context.Context, sessionID string, arrayID int) (*service.SelectResult, error) {
		if sessionID == "gone" {
			return nil, fmt.Errorf("session %s: %w", sessionID, service.ErrSessionNotFound)
		}
		return &service.SelectResult{Accepted: true, ArrayID: arrayID, Message: "Card selected"}, nil
	})

	t.Run("accepted", func(t *testing.T) {
		var reply SelectReply
		out := HandleSelect(context.Background(), sel, "memorygame.ab12.select", []byte(`{"array_id":4}`))
		if err := json.Unmarshal(out, &reply); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if reply.Error != "" || reply.Result == nil {
			t.Fatalf("unexpected reply %s", out)
		}
		if reply.Result.ArrayID != 4 || !reply.Result.Accepted {
			t.Errorf("unexpected result %+v", reply.Result)
		}
	})

	errorCases := []struct {
		name    string
		subject string
		body    string
	}{
		{"missing array_id", "memorygame.ab12.select", `{}`},
		{"bad json", "memorygame.ab12.select", `{`},
		{"bad subject", "memorygame.select", `{"array_id":1}`},
		{"unknown session", "memorygame.gone.select", `{"array_id":1}`},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			var reply SelectReply
			out := HandleSelect(context.Background(), sel, tt.subject, []byte(tt.body))
			if err := json.Unmarshal(out, &reply); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if reply.Error == "" || reply.Result != nil {
				t.Errorf("expected error reply, got %s", out)
			}
		})
	}
}

func TestBus_ServeSelect(t *testing.T) {
	conn := newFakeConn()
	bus := NewBus(conn)

	calls := 0
	sel := selectorFunc(func(ctx context.Context, sessionID string, arrayID int) (*service.SelectResult, error) {
		calls++
		return &service.SelectResult{Accepted: true, ArrayID: arrayID}, nil
	})

	if _, err := bus.ServeSelect(sel); err != nil {
		t.Fatalf("ServeSelect: %v", err)
	}

	handler, ok := conn.handlers["memorygame.*.select"]
	if !ok {
		t.Fatal("expected wildcard select subscription")
	}

	handler(&nats.Msg{Subject: "memorygame.ab12.select", Reply: "_INBOX.1", Data: []byte(`{"array_id":2}`)})
	if calls != 1 {
		t.Fatalf("expected selector to be called once, got %d", calls)
	}
	if msg := conn.last(); msg.subject != "_INBOX.1" {
		t.Errorf("reply published on %s", msg.subject)
	}

	// Requests without a reply subject are dropped.
	handler(&nats.Msg{Subject: "memorygame.ab12.select", Data: []byte(`{"array_id":2}`)})
	if calls != 1 {
		t.Errorf("expected no call for fire-and-forget message, got %d", calls)
	}
}
