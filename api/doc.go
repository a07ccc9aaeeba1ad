// Package api provides HTTP REST API handlers for the memory game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "easy"}), the game starts immediately
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session and stop its timers
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/select - Select a card ({"array_id": 3})
//   - POST /api/sessions/{id}/play - New game with updated settings ({"cards_qty": 12})
//   - POST /api/sessions/{id}/restart - New game with the current settings
//   - GET /api/sessions/{id}/history - Turn history (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs - List presets
//   - GET /api/configs/{name} - Get a preset
//   - POST /api/configs - Save a preset
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket upgrade
//
// Error Handling:
//
// Errors are returned as JSON: {"error": "message"}. Unknown sessions,
// presets and cards are 404, malformed bodies and invalid settings are 400,
// everything else is 500. A selection the game ignores is not an error; the
// response carries accepted=false and a reason.
package api
