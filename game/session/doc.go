// Package session provides session management for the memory game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - One event loop per session
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns an engine.Game, the engine.Loop that confines it
// and the scheduler its timers run on. Engine events are forwarded to the
// manager's service.EventSink together with a state snapshot.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and uses cryptographic randomness to generate them.
//
// Concurrency:
//
// The session map is guarded by a read/write mutex. Game state is never
// touched directly; callers go through Session.Do, which runs on the
// session's loop.
//
// Usage:
//
//	manager := session.NewManager(session.WithEventSink(hub))
//	defer manager.Shutdown()
//
//	sess, err := manager.Create("", preset)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = sess.Do(ctx, func(g *engine.Game) {
//		g.Open()
//		_ = g.Play(preset.Settings)
//	})
//
// Sessions live in memory only. Deleting or expiring a session cancels its
// pending timers and stops its loop.
package session
