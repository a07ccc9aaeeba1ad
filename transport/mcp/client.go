package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Memory Match Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Memory Match Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Find every pair of matching pictures in as few moves as possible.

AVAILABLE TOOLS:
- create_session: Create a new game session (the game starts right away)
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Show the board, move counter and clock
- select_card: Turn a card face up by its array_id
- play: Start a new game, optionally with new settings
- restart: Start a new game with the current settings
- turn_history: View past turns
- list_configs: List available presets
- game_instructions: Get the complete rules`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional preset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, move counter and elapsed time",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_card",
		Description: "Turn a card face up. The second card of a turn is compared with the first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"array_id": map[string]interface{}{
					"type":        "integer",
					"description": "Board position of the card (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you picked this card",
				},
			},
			Required: []string{"session_id", "array_id"},
		},
	}, c.handleSelectCard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play",
		Description: "Start a new game. Settings that are not given keep their current value.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"cards_qty": map[string]interface{}{
					"type":        "integer",
					"description": "Number of cards, even, between 4 and 48",
				},
				"speed_ms": map[string]interface{}{
					"type":        "integer",
					"description": "Delay before unmatched cards flip back, 0 for instant mode",
				},
				"show_cards": map[string]interface{}{
					"type":        "boolean",
					"description": "Show every card briefly before the game starts",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePlay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart",
		Description: "Start a new game with the current settings",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get the turns of the current game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configID := request.GetString("config_id", "")

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Active Sessions (%d):\n\n", response.Count))
	for _, s := range response.Sessions {
		status := "-"
		if s.GameState != nil {
			status = fmt.Sprintf("%s, moves %d", s.GameState.Phase, s.GameState.MoveCounter)
		}
		b.WriteString(fmt.Sprintf("- %s (Config: %s, Created: %s, %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleSelectCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	arrayID := request.GetInt("array_id", -1)
	if arrayID < 0 {
		return mcp.NewToolResultError("array_id is required and must be >= 0"), nil
	}

	var result service.SelectResult
	body := map[string]int{"array_id": arrayID}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/select"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSelectResult(&result)), nil
}

func (c *Client) handlePlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	args := request.GetArguments()

	body := map[string]interface{}{}
	if _, ok := args["cards_qty"]; ok {
		body["cards_qty"] = request.GetInt("cards_qty", 0)
	}
	if _, ok := args["speed_ms"]; ok {
		body["speed_ms"] = request.GetInt("speed_ms", 0)
	}
	if _, ok := args["show_cards"]; ok {
		body["show_cards"] = request.GetBool("show_cards", false)
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/play"), body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/restart"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := request.GetString("order", ""); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		speed := fmt.Sprintf("%dms", config.SpeedMS)
		if config.SpeedMS == engine.InstantSpeed {
			speed = "instant"
		}
		preview := "no preview"
		if config.ShowCards {
			preview = fmt.Sprintf("preview %dms", config.PreviewMS)
		}
		b.WriteString(fmt.Sprintf("• %s (%s)\n  %s\n  Cards: %d, Speed: %s, %s\n\n",
			config.ConfigID, config.Name, config.Description, config.CardsQty, speed, preview))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🃏 Memory Match Game - Complete Instructions

GAME OBJECTIVE:
Every picture appears on exactly two cards. Find all pairs in as few moves as possible.

HOW A TURN WORKS:
• Select a face-down card with select_card; it turns face up
• Select a second card; the two are compared and the move counter goes up by one
• Match: both cards stay face up and are out of play
• No match: both cards flip back after the game speed delay (speed_ms)
• In instant mode (speed_ms = 0) the mismatched pair stays up until your next pick,
  which hides them and starts a new turn

BOARD LEGEND (game_state):
• ## - face-down card
• >NN - card you just selected, NN is its picture
• NN - face-up card waiting to flip back
• =NN - matched card
• Each cell is prefixed with its array_id, e.g. "05:##"

IGNORED SELECTIONS (not errors):
• input_locked - the preview is showing or the game is over
• not_running - no game in progress
• not_selectable - the card is already face up or matched

PREVIEW:
With show_cards enabled every card is shown face up before the game starts.
The preview lasts 4s for up to 16 cards, 6s up to 32 and 8s above. Memorize what you can!

THE CLOCK:
The clock starts when a game starts and stops when the last pair is found.

STRATEGY TIPS:
• Keep a map of every picture you have seen and its array_id
• When a new card matches a picture you already saw, pick the known partner
• Otherwise, pick an unseen card so every turn reveals new information
• Use turn_history to rebuild your map: it lists both pictures of every turn

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has unique 4-character ID
- play changes settings and deals a new board; restart keeps the settings
- play and restart are refused while the preview is showing

Good luck, and may your memory serve you well! 🧠`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// boardColumns picks a near-square layout for n cards
func boardColumns(n int) int {
	switch {
	case n <= 16:
		return 4
	case n <= 36:
		return 6
	default:
		return 8
	}
}

func formatCard(card engine.CardView) string {
	picture := 0
	if card.PictureNumber != nil {
		picture = *card.PictureNumber
	}
	switch card.State {
	case engine.CardSelected:
		return fmt.Sprintf("%02d:>%02d", card.ArrayID, picture)
	case engine.CardRevealed:
		return fmt.Sprintf("%02d: %02d", card.ArrayID, picture)
	case engine.CardMatched:
		return fmt.Sprintf("%02d:=%02d", card.ArrayID, picture)
	default:
		return fmt.Sprintf("%02d: ##", card.ArrayID)
	}
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Phase: %s | Moves: %d | Time: %s | Remaining: %d/%d\n",
		state.Phase, state.MoveCounter, state.Elapsed.Display, state.RemainingCards, len(state.Cards)))
	if state.InputLocked && !state.Completed {
		result.WriteString("Input locked\n")
	}
	result.WriteString("\n")

	cols := boardColumns(len(state.Cards))
	for i, card := range state.Cards {
		result.WriteString(formatCard(card))
		if (i+1)%cols == 0 || i == len(state.Cards)-1 {
			result.WriteString("\n")
		} else {
			result.WriteString("  ")
		}
	}

	if state.Completed {
		result.WriteString(fmt.Sprintf("\n🎉 ALL PAIRS FOUND in %d moves (%s)!", state.MoveCounter, state.Elapsed.Display))
	}

	return result.String()
}

func formatSelectResult(result *service.SelectResult) string {
	var b strings.Builder
	if result.Accepted {
		b.WriteString("✓ ")
	} else {
		b.WriteString("✗ ")
	}
	b.WriteString(result.Message)
	b.WriteString("\n")

	if t := result.Turn; t != nil {
		outcome := "no match"
		if t.Matched {
			outcome = "match"
		}
		b.WriteString(fmt.Sprintf("Turn %d: card %d (picture %d) vs card %d (picture %d) → %s\n",
			t.Turn, t.FirstID, t.FirstPicture, t.SecondID, t.SecondPicture, outcome))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Turn History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns))

	if len(history.Turns) == 0 {
		b.WriteString("(no turns yet)\n")
	}
	for _, turn := range history.Turns {
		status := "✗"
		if turn.Matched {
			status = "✓"
		}
		b.WriteString(fmt.Sprintf("%d. cards %d/%d pictures %d/%d %s [Moves: %d]\n",
			turn.Turn, turn.FirstID, turn.SecondID, turn.FirstPicture, turn.SecondPicture, status, turn.MoveCounter))
	}

	return b.String()
}
