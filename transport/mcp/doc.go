// Package mcp provides the Model Context Protocol interface for the memory game.
//
// The Client is a thin proxy: every tool call is turned into a REST request
// against the API server and the JSON answer is rendered as text an agent
// can read.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: board, move counter and clock
//   - select_card: turn a card face up by array_id
//   - play: new game with optional setting overrides
//   - restart: new game with the current settings
//   - turn_history: paginated past turns
//   - list_configs: available presets
//   - game_instructions: rules and board legend
//
// Transport Modes:
//
// The same MCP server is served over stdio (the stdio-mcp command) or over
// streamable HTTP at /mcp.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
