// Package broker connects game sessions to a NATS server.
//
// Every engine event is published on memorygame.<session>.<event> as a
// Message. Card selections can be sent as requests on
// memorygame.<session>.select with a {"array_id": N} body; the reply is a
// SelectReply holding either the SelectResult or an error string.
//
//	nc, err := broker.Connect(url, "memory-game")
//	bus := broker.NewBus(nc)
//	sessionMgr := session.NewManager(session.WithEventSink(bus))
//	bus.ServeSelect(gameService)
package broker
