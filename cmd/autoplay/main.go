// Command autoplay plays the memory game against a running server through the
// REST API, using one of the automated players from game/strategy.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/strategy"
)

const sessionFile = ".session"

var errUnfinished = errors.New("game did not finish")

// playOptions tunes the pace of the bot.
type playOptions struct {
	Delay    time.Duration
	Poll     time.Duration
	MaxSteps int
	Verbose  bool
}

// report summarizes one finished game.
type report struct {
	GameID  string
	Turns   int
	Moves   int
	Picks   int
	Ignored int
	Elapsed string
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "Play the memory game through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Preset to use for a new session (classic, easy, instant, expert)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.StringFlag{Name: "strategy", Value: "memory", Usage: "Player to use: memory or random"},
			&cli.IntFlag{Name: "games", Value: 1, Usage: "Number of games to play"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "Seed for the random player"},
			&cli.DurationFlag{Name: "delay", Usage: "Pause between picks"},
			&cli.DurationFlag{Name: "poll", Value: 100 * time.Millisecond, Usage: "State polling interval while waiting"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	strat, ok := strategy.New(cmd.String("strategy"), rand.New(rand.NewSource(int64(cmd.Int("seed")))))
	if !ok {
		return fmt.Errorf("unknown strategy %q", cmd.String("strategy"))
	}

	opts := playOptions{
		Delay:   cmd.Duration("delay"),
		Poll:    cmd.Duration("poll"),
		Verbose: cmd.Bool("v"),
	}

	log.Printf("Connecting to game server at %s", cmd.String("url"))
	client := NewClient(cmd.String("url"))

	state, resumed, err := openSession(ctx, client, cmd.String("continue"), cmd.String("config"))
	if err != nil {
		return err
	}

	games := int(cmd.Int("games"))
	failed := 0
	for i := 0; i < games; i++ {
		if i > 0 || (resumed && state.Completed) {
			if state, err = client.Restart(ctx); err != nil {
				return err
			}
		}

		log.Printf("\n=== 🎮 Game %d/%d ===", i+1, games)
		rep, err := playGame(ctx, client, strat, state, opts)
		if err != nil {
			if errors.Is(err, errUnfinished) {
				log.Printf("❌ %v", err)
				failed++
				continue
			}
			return err
		}
		log.Printf("🎉 Cleared in %d turns (move counter %d), time %s, %d picks (%d ignored)",
			rep.Turns, rep.Moves, rep.Elapsed, rep.Picks, rep.Ignored)
	}

	log.Printf("Session: %s", client.SessionID())
	if failed > 0 {
		return fmt.Errorf("%d of %d games did not finish", failed, games)
	}
	return nil
}

// openSession resumes the requested or saved session, or creates a new one
// and saves its ID for the next run.
func openSession(ctx context.Context, client *Client, continueID, configID string) (*engine.GameState, bool, error) {
	savedID := continueID
	if savedID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedID = string(bytes.TrimSpace(data))
		}
	}

	if savedID != "" {
		log.Printf("🔄 Resuming session: %s", savedID)
		state, err := client.Resume(ctx, savedID)
		if err == nil {
			return state, true, nil
		}
		log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
	}

	state, err := client.CreateSession(ctx, configID)
	if err != nil {
		return nil, false, err
	}
	log.Printf("✨ Session created: %s (%d cards)", client.SessionID(), len(state.Cards))

	if err := os.WriteFile(sessionFile, []byte(client.SessionID()), 0644); err != nil {
		log.Printf("Warning: Failed to save session ID: %v", err)
	}
	return state, false, nil
}

// playGame plays from state until the game completes.
func playGame(ctx context.Context, client *Client, s strategy.Strategy, state *engine.GameState, opts playOptions) (*report, error) {
	s.Reset()
	rep := &report{GameID: state.GameID}

	maxSteps := opts.MaxSteps
	if maxSteps == 0 {
		maxSteps = len(state.Cards) * len(state.Cards) * 8
	}

	var err error
	for step := 0; step < maxSteps && !state.Completed; step++ {
		s.Observe(state.Cards)

		if state.InputLocked {
			// preview: everything is face up, so just watch
			if state, err = waitState(ctx, client, opts.Poll); err != nil {
				return nil, err
			}
			continue
		}

		id, ok := s.Next(state.Cards)
		if !ok {
			if state, err = waitState(ctx, client, opts.Poll); err != nil {
				return nil, err
			}
			continue
		}

		result, err := client.Select(ctx, id)
		if err != nil {
			return nil, err
		}
		rep.Picks++
		state = result.GameState

		if !result.Accepted {
			rep.Ignored++
			if opts.Verbose {
				log.Printf("Card %d ignored: %s", id, result.Reason)
			}
			if state, err = waitState(ctx, client, opts.Poll); err != nil {
				return nil, err
			}
			continue
		}

		s.Observe(state.Cards)
		if t := result.Turn; t != nil {
			if opts.Verbose {
				log.Printf("Turn %d: %d/%d pictures %d/%d matched=%v", t.Turn, t.FirstID, t.SecondID, t.FirstPicture, t.SecondPicture, t.Matched)
			}
			if !t.Matched && !state.Settings.Instant() {
				if state, err = waitState(ctx, client, state.Settings.Speed()+opts.Poll); err != nil {
					return nil, err
				}
			}
		}

		if opts.Delay > 0 {
			if err := sleep(ctx, opts.Delay); err != nil {
				return nil, err
			}
		}
	}

	if !state.Completed {
		return nil, fmt.Errorf("%w after %d picks", errUnfinished, rep.Picks)
	}

	rep.Turns = len(state.TurnHistory)
	rep.Moves = state.MoveCounter
	rep.Elapsed = state.Elapsed.Display
	return rep, nil
}

func waitState(ctx context.Context, client *Client, d time.Duration) (*engine.GameState, error) {
	if err := sleep(ctx, d); err != nil {
		return nil, err
	}
	return client.GetState(ctx)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
