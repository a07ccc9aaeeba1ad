// Package engine provides the core logic of the memory matching game.
//
// The engine package implements:
//   - Board generation from a fixed universe of pictures
//   - The card registry and selection state
//   - Turn resolution with speed-dependent deferred flips
//   - The turn clock, the preview phase and completion detection
//
// Core Types:
//
// Game is the controller. It owns a Registry for the current board, a
// TurnClock and the pending deferred tasks. Game is not safe for concurrent
// use. Hosts run it on a Loop and give it a LoopScheduler so that timer
// callbacks are serialized with player actions. Tests use ManualScheduler.
//
// Usage:
//
//	loop := engine.NewLoop()
//	defer loop.Close()
//
//	game, err := engine.NewGame(engine.DefaultConfig().Settings,
//		engine.NewLoopScheduler(loop),
//		engine.WithListener(func(ev engine.Event) { log.Printf("%s", ev.Type) }))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = loop.Do(ctx, func() {
//		game.Open()
//		_ = game.Play(engine.Settings{CardsQty: 16, SpeedMS: 500})
//		outcome, _ := game.Select(0)
//		_ = outcome
//	})
//
// Game Rules:
//
// The player reveals two cards per turn. A matching pair leaves the board, a
// mismatched pair is turned face down again. With speed 0 a mismatched pair
// stays up until the next pick, which hides both and keeps only the new card.
// The game completes when no active cards remain.
package engine
