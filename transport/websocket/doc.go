// Package websocket provides WebSocket transport for the memory game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Fan-out of engine events to every client of a session
//   - Client actions (select, restart, play)
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client has a read goroutine and a write
// goroutine; only the hub goroutine touches the client registry.
//
// The Hub implements service.EventSink. Publish is non-blocking, so it is
// safe to call from a session's event loop.
//
// Message Protocol:
//
//   - Incoming: {"action": "select", "array_id": 3}
//   - Incoming: {"action": "restart"}
//   - Incoming: {"action": "play", "cards_qty": 12, "speed_ms": 0}
//   - Outgoing: {"session_id": "ab12", "event": "card_changed", "game_state": {...}, "data": {...}}
//
// Action results are sent only to the issuing client as "<action>_result";
// failures are sent as an "error" event.
//
// Usage:
//
//	hub := websocket.NewHub()
//	sessionMgr := session.NewManager(session.WithEventSink(hub))
//	gameService := service.NewGameService(sessionMgr, configMgr)
//	hub.SetInputHandler(websocket.ServiceInput{Service: gameService})
//	go hub.Run()
//	defer hub.Stop()
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
