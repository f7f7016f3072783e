package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"draughts/game"
	"draughts/searcher"

	"github.com/rs/zerolog/log"
)

// FindMoveRequest is the body posted to a remote agent's /api/findmove.
type FindMoveRequest struct {
	Board *game.Board `json:"board"`
	Side  game.Side   `json:"side"`
}

type FindMoveResponse struct {
	Move     game.Move             `json:"move"`
	Score    float64               `json:"score"`
	Found    bool                  `json:"found"`
	Strategy string                `json:"strategy"`
	Metric   searcher.SearchMetric `json:"metric"`
}

type remoteAgent struct {
	side   game.Side
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that asks the server at baseURL for its
// moves. Unreachable servers and illegal answers fall back to the first
// legal move.
func NewRemoteAgent(side game.Side, baseURL string, timeout time.Duration) Agent {
	return &remoteAgent{
		side:   side,
		url:    baseURL + "/api/findmove",
		client: &http.Client{Timeout: timeout},
	}
}

func (a *remoteAgent) Side() game.Side {
	return a.side
}

func (a *remoteAgent) FindMove(board *game.Board) (Decision, bool) {
	moves := board.LegalMoves(a.side)
	if len(moves) == 0 {
		return Decision{Strategy: "remote"}, false
	}

	resp, err := a.request(board)
	if err != nil {
		log.Warn().Err(err).Str("url", a.url).Msg("remote agent failed, forcing the first legal move")
		return fallback(board, moves[0]), true
	}
	for _, move := range moves {
		if move.Equal(resp.Move) {
			return Decision{
				Move:     move,
				Score:    resp.Score,
				Strategy: resp.Strategy,
				Metric:   resp.Metric,
			}, true
		}
	}
	log.Warn().Str("move", resp.Move.String()).Msg("remote agent returned an illegal move, forcing the first legal move")
	return fallback(board, moves[0]), true
}

func (a *remoteAgent) request(board *game.Board) (FindMoveResponse, error) {
	body, err := json.Marshal(FindMoveRequest{Board: board, Side: a.side})
	if err != nil {
		return FindMoveResponse{}, err
	}

	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return FindMoveResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return FindMoveResponse{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, out)
	}

	var decoded FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return FindMoveResponse{}, fmt.Errorf("failed to decode move: %w", err)
	}
	if !decoded.Found {
		return FindMoveResponse{}, fmt.Errorf("agent found no move")
	}
	return decoded, nil
}

func fallback(board *game.Board, move game.Move) Decision {
	return Decision{
		Move:     move,
		Score:    board.Apply(move).Evaluate(),
		Strategy: "remote",
	}
}
