package server

import (
	"bytes"
	"draughts/agent"
	"draughts/game"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func testApp() (*fiber.App, *Manager) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 2
	manager := NewManager()
	return New(cfg, manager), manager
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func createGame(t *testing.T, app *fiber.App, body any) gameView {
	t.Helper()
	status, out := do(t, app, http.MethodPost, "/api/games", body)
	require.Equal(t, http.StatusCreated, status, string(out))

	var v gameView
	require.NoError(t, json.Unmarshal(out, &v))
	return v
}

func TestCreateAndGetGame(t *testing.T) {
	app, manager := testApp()

	created := createGame(t, app, map[string]any{"strategy": "alphabeta", "maxDepth": 1})
	require.NotEmpty(t, created.ID)
	require.Equal(t, game.InitializeBoard().String(), created.Board.String())
	require.Equal(t, "white", created.ToMove)
	require.Equal(t, 1, manager.Len())

	status, out := do(t, app, http.MethodGet, "/api/games/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var fetched gameView
	require.NoError(t, json.Unmarshal(out, &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Empty(t, fetched.History)
}

func TestCreateGameRejectsBadInput(t *testing.T) {
	app, _ := testApp()

	status, _ := do(t, app, http.MethodPost, "/api/games", map[string]any{"strategy": "negamax"})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/games", map[string]any{"board": []string{"........"}})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestUnknownGame(t *testing.T) {
	app, _ := testApp()

	status, _ := do(t, app, http.MethodGet, "/api/games/not-a-uuid", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, "/api/games/1b4e28ba-2fa1-11d2-883f-0016d3cca427/moves", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodDelete, "/api/games/1b4e28ba-2fa1-11d2-883f-0016d3cca427", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestPlayMove(t *testing.T) {
	app, _ := testApp()
	created := createGame(t, app, nil)

	status, out := do(t, app, http.MethodGet, "/api/games/"+created.ID+"/moves", nil)
	require.Equal(t, http.StatusOK, status)
	var legal struct {
		Moves []game.Move `json:"moves"`
	}
	require.NoError(t, json.Unmarshal(out, &legal))
	require.Len(t, legal.Moves, 7)

	status, out = do(t, app, http.MethodPost, "/api/games/"+created.ID+"/moves", map[string]any{"from": []int{5, 0}, "to": []int{4, 1}})
	require.Equal(t, http.StatusOK, status, string(out))
	var resp playMoveResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Equal(t, game.Square{Row: 4, Col: 1}, resp.Human.To)
	require.NotNil(t, resp.Engine)
	require.Equal(t, "alphabeta_ordering", resp.Engine.Strategy)
	require.Equal(t, 2, resp.Engine.Metric.Depths)
	require.Equal(t, game.WhiteMan, resp.Board.At(game.Square{Row: 4, Col: 1}))

	status, _ = do(t, app, http.MethodPost, "/api/games/"+created.ID+"/moves", map[string]any{"from": []int{4, 1}, "to": []int{2, 1}})
	require.Equal(t, http.StatusBadRequest, status, "Illegal moves should be rejected")

	status, out = do(t, app, http.MethodGet, "/api/games/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var fetched gameView
	require.NoError(t, json.Unmarshal(out, &fetched))
	require.Len(t, fetched.History, 2)
}

func TestPlayMoveAfterGameOver(t *testing.T) {
	app, _ := testApp()
	created := createGame(t, app, map[string]any{"board": []string{
		"........",
		"........",
		"........",
		"........",
		"...b....",
		"..w.....",
		"........",
		"........",
	}})

	status, out := do(t, app, http.MethodPost, "/api/games/"+created.ID+"/moves", map[string]any{"from": []int{5, 2}, "to": []int{3, 4}})
	require.Equal(t, http.StatusOK, status)
	var resp playMoveResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Equal(t, "white", resp.Outcome)
	require.Nil(t, resp.Engine)

	status, _ = do(t, app, http.MethodPost, "/api/games/"+created.ID+"/moves", map[string]any{"from": []int{3, 4}, "to": []int{2, 3}})
	require.Equal(t, http.StatusConflict, status)
}

func TestDeleteGame(t *testing.T) {
	app, manager := testApp()
	created := createGame(t, app, nil)

	status, _ := do(t, app, http.MethodDelete, "/api/games/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, status)
	require.Zero(t, manager.Len())
}

func TestFindMove(t *testing.T) {
	app, _ := testApp()
	b := game.InitializeBoard()

	status, out := do(t, app, http.MethodPost, "/api/findmove?strategy=minimax&maxDepth=1", agent.FindMoveRequest{Board: b, Side: game.White})
	require.Equal(t, http.StatusOK, status, string(out))

	var resp agent.FindMoveResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.True(t, resp.Found)
	require.Equal(t, "minimax", resp.Strategy)
	require.Equal(t, 1, resp.Metric.Depths)

	legal := false
	for _, move := range b.LegalMoves(game.White) {
		legal = legal || move.Equal(resp.Move)
	}
	require.True(t, legal)

	status, _ = do(t, app, http.MethodPost, "/api/findmove", map[string]any{"side": "white"})
	require.Equal(t, http.StatusBadRequest, status, "A board is required")
}

func TestRemoteAgentAgainstServer(t *testing.T) {
	app, _ := testApp()
	b := game.InitializeBoard()

	server := httptest.NewServer(adaptor.FiberApp(app))
	defer server.Close()

	decision, ok := agent.NewRemoteAgent(game.Black, server.URL, 0).FindMove(b)
	require.True(t, ok)
	require.Equal(t, "alphabeta_ordering", decision.Strategy)
}

func TestFindMoveStalemate(t *testing.T) {
	app, _ := testApp()
	b, err := game.ParseBoard("........\nw.......\n...B....\n........\n........\n........\n........\n........")
	require.NoError(t, err)

	status, out := do(t, app, http.MethodPost, "/api/findmove?maxDepth=2", agent.FindMoveRequest{Board: b, Side: game.Black})
	require.Equal(t, http.StatusOK, status, string(out))

	var resp agent.FindMoveResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.True(t, resp.Found)
	require.Equal(t, game.Square{Row: 0, Col: 1}, resp.Move.To)
	require.Equal(t, math.MaxFloat64, resp.Score)
}

func TestFindMoveRequiresSide(t *testing.T) {
	app, _ := testApp()

	status, out := do(t, app, http.MethodPost, "/api/findmove", map[string]any{"board": game.InitializeBoard()})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, string(out), "side must be white or black")
}

func TestPlayMoveIntoStalemate(t *testing.T) {
	app, _ := testApp()
	created := createGame(t, app, map[string]any{"board": []string{
		"........",
		"........",
		".w.B....",
		"........",
		"........",
		"........",
		"........",
		"........",
	}})

	status, out := do(t, app, http.MethodPost, "/api/games/"+created.ID+"/moves", map[string]any{"from": []int{2, 1}, "to": []int{1, 0}})
	require.Equal(t, http.StatusOK, status, string(out))

	var resp playMoveResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.NotNil(t, resp.Engine)
	require.Equal(t, game.Square{Row: 0, Col: 1}, resp.Engine.Move.To, "Engine should block the last white man")
	require.Equal(t, math.MaxFloat64, resp.Engine.Score)
	require.Equal(t, "draw", resp.Outcome)
}

func TestRequestLogStatus(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	app, _ := testApp()
	status, _ := do(t, app, http.MethodGet, "/api/unknown", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, buf.String(), `"status":404`, "Errors returned down the chain should be logged with their final status")

	buf.Reset()
	status, _ = do(t, app, http.MethodGet, "/api/games/not-a-uuid", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, buf.String(), `"status":404`)
}
