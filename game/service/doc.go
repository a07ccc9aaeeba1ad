// Package service provides the business logic layer for the memory game.
//
// The service package implements:
//   - Multi-session game management
//   - Preset loading for new sessions
//   - Card selection, play and restart
//   - Paginated turn history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages preset loading and validation.
// EventSink receives the engine events of every session.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP, NATS)
// and the game engine. Each session owns a game confined to its own event
// loop; the service reaches it through Session.Do, so callers never touch a
// game from their own goroutine.
//
// Usage:
//
//	sessionMgr := session.NewManager(session.WithEventSink(hub))
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "easy")
//	result, err := gameService.SelectCard(ctx, info.ID, 3)
package service
