package main

import (
	"context"
	"math/rand"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/memorygame/api"
	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/service"
	"github.com/wricardo/mcp-training/memorygame/game/session"
	"github.com/wricardo/mcp-training/memorygame/game/strategy"
	"github.com/wricardo/mcp-training/memorygame/transport/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	presets := map[string]string{
		"quick.json":   `{"name":"Quick","description":"fast flips","cards_qty":8,"speed_ms":20,"show_cards":false}`,
		"instant.json": `{"name":"Instant","description":"no delay","cards_qty":8,"speed_ms":0,"show_cards":false}`,
	}
	for name, content := range presets {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write preset: %v", err)
		}
	}

	configs, err := config.NewManager(dir)
	if err != nil {
		t.Fatalf("config.NewManager failed: %v", err)
	}
	sessions := session.NewManager()
	t.Cleanup(sessions.Shutdown)

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	svc := service.NewGameService(sessions, configs)
	srv := httptest.NewServer(api.NewServer(svc, hub))
	t.Cleanup(srv.Close)
	return srv
}

func TestPlayGame(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tests := []struct {
		preset   string
		strategy strategy.Strategy
	}{
		{"quick", strategy.NewMemory()},
		{"instant", strategy.NewMemory()},
		{"quick", strategy.NewRandom(rand.New(rand.NewSource(2)))},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			client := NewClient(srv.URL)
			state, err := client.CreateSession(ctx, tt.preset)
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}

			rep, err := playGame(ctx, client, tt.strategy, state, playOptions{Poll: 5 * time.Millisecond})
			if err != nil {
				t.Fatalf("playGame failed: %v", err)
			}

			if rep.Turns < 4 {
				t.Errorf("Turns = %d, cannot be below the 4 pairs", rep.Turns)
			}
			if rep.Moves != rep.Turns+1 {
				t.Errorf("Moves = %d, want %d", rep.Moves, rep.Turns+1)
			}
		})
	}
}

func TestPlayGame_AfterRestart(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := NewClient(srv.URL)
	if _, err := client.CreateSession(ctx, "quick"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	state, err := client.Restart(ctx)
	if err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if state == nil || state.MoveCounter != 1 {
		t.Fatalf("Expected a fresh game after restart, got %+v", state)
	}

	if _, err := playGame(ctx, client, strategy.NewMemory(), state, playOptions{Poll: 5 * time.Millisecond}); err != nil {
		t.Fatalf("playGame failed: %v", err)
	}
}

func TestPlayGame_StepLimit(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client := NewClient(srv.URL)
	state, err := client.CreateSession(ctx, "quick")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	_, err = playGame(ctx, client, strategy.NewMemory(), state, playOptions{Poll: time.Millisecond, MaxSteps: 1})
	if err == nil {
		t.Fatal("Expected an unfinished game with a single step")
	}
}

func TestClient_Errors(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client := NewClient(srv.URL)
	if _, err := client.Resume(ctx, "zzzz"); err == nil {
		t.Error("Expected error resuming an unknown session")
	}
	if _, err := client.CreateSession(ctx, "missing"); err == nil {
		t.Error("Expected error for an unknown preset")
	}
}
