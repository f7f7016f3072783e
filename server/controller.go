package server

import (
	"errors"
	"time"

	"draughts/agent"
	"draughts/engine"
	"draughts/game"
	"draughts/searcher"

	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	cfg     Config
	manager *Manager
}

type createGameRequest struct {
	Strategy    string      `json:"strategy"`
	TimeLimitMs int         `json:"timeLimitMs"`
	MaxDepth    int         `json:"maxDepth"`
	Board       *game.Board `json:"board"`
}

type playMoveRequest struct {
	From game.Square `json:"from"`
	To   game.Square `json:"to"`
}

type gameView struct {
	ID      string          `json:"id"`
	Board   *game.Board     `json:"board"`
	ToMove  string          `json:"toMove,omitempty"`
	Over    bool            `json:"over"`
	Outcome string          `json:"outcome,omitempty"`
	History []engine.Update `json:"history"`
}

type engineMove struct {
	Move     game.Move             `json:"move"`
	Score    float64               `json:"score"`
	Strategy string                `json:"strategy"`
	Metric   searcher.SearchMetric `json:"metric"`
}

type playMoveResponse struct {
	Human   game.Move   `json:"human"`
	Engine  *engineMove `json:"engine"`
	Outcome string      `json:"outcome,omitempty"`
	Board   *game.Board `json:"board"`
}

func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUnknownGame):
		return errorResponse(c, fiber.StatusNotFound, err)
	case errors.Is(err, engine.ErrIllegalMove):
		return errorResponse(c, fiber.StatusBadRequest, err)
	case errors.Is(err, engine.ErrGameOver):
		return errorResponse(c, fiber.StatusConflict, err)
	default:
		return errorResponse(c, fiber.StatusInternalServerError, err)
	}
}

// newSearcher applies the request's overrides on top of the configured
// defaults. Zero values keep the default.
func (gc *GameController) newSearcher(side game.Side, strategyName string, timeLimitMs, maxDepth int) (*searcher.Searcher, searcher.Strategy, error) {
	strategy := gc.cfg.Strategy
	if strategyName != "" {
		parsed, err := searcher.ParseStrategy(strategyName)
		if err != nil {
			return nil, 0, err
		}
		strategy = parsed
	}

	duration := gc.cfg.TimeLimit
	if timeLimitMs > 0 {
		duration = time.Duration(timeLimitMs) * time.Millisecond
	}
	depth := gc.cfg.MaxDepth
	if maxDepth > 0 {
		depth = maxDepth
	}

	s := searcher.New(
		searcher.WithSide(side),
		searcher.WithDuration(duration),
		searcher.WithMaxDepth(depth),
	)
	return s, strategy, nil
}

func view(snapshot engine.Snapshot) gameView {
	v := gameView{
		ID:      snapshot.ID.String(),
		Board:   snapshot.Board,
		Over:    snapshot.Over,
		Outcome: snapshot.Outcome,
		History: snapshot.History,
	}
	if !snapshot.Over {
		v.ToMove = game.White.String()
	}
	return v
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, err)
		}
	}

	s, strategy, err := gc.newSearcher(game.Black, req.Strategy, req.TimeLimitMs, req.MaxDepth)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	session := engine.NewSession(agent.NewSearchAgent(s, strategy), req.Board)
	gc.manager.Add(session)

	return c.Status(fiber.StatusCreated).JSON(view(session.Snapshot()))
}

func (gc *GameController) GetGame(c *fiber.Ctx) error {
	session, err := gc.manager.Get(c.Params("id"))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(view(session.Snapshot()))
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.manager.Remove(c.Params("id")); err != nil {
		return sessionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	session, err := gc.manager.Get(c.Params("id"))
	if err != nil {
		return sessionError(c, err)
	}
	moves := session.LegalMoves()
	if moves == nil {
		moves = []game.Move{}
	}
	return c.JSON(fiber.Map{"moves": moves})
}

func (gc *GameController) PlayMove(c *fiber.Ctx) error {
	session, err := gc.manager.Get(c.Params("id"))
	if err != nil {
		return sessionError(c, err)
	}

	var req playMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	reply, err := session.Play(req.From, req.To)
	if err != nil {
		return sessionError(c, err)
	}

	resp := playMoveResponse{
		Human:   reply.Human,
		Outcome: reply.Outcome,
		Board:   session.Snapshot().Board,
	}
	if reply.Engine != nil {
		resp.Engine = &engineMove{
			Move:     reply.Engine.Move,
			Score:    reply.Engine.Score,
			Strategy: reply.Engine.Strategy,
			Metric:   reply.Engine.Metric,
		}
	}
	return c.JSON(resp)
}

// FindMove serves remote agents: it searches the posted board for the
// posted side with the configured defaults, overridable by the strategy,
// timeLimitMs and maxDepth query parameters.
func (gc *GameController) FindMove(c *fiber.Ctx) error {
	var req agent.FindMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}
	if req.Board == nil {
		return errorResponse(c, fiber.StatusBadRequest, errors.New("board is required"))
	}
	if req.Side != game.White && req.Side != game.Black {
		return errorResponse(c, fiber.StatusBadRequest, errors.New("side must be white or black"))
	}

	s, strategy, err := gc.newSearcher(req.Side, c.Query("strategy"), c.QueryInt("timeLimitMs"), c.QueryInt("maxDepth"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err)
	}

	move, score, ok := s.ChooseMove(req.Board, strategy)
	return c.JSON(agent.FindMoveResponse{
		Move:     move,
		Score:    score,
		Found:    ok,
		Strategy: strategy.String(),
		Metric:   s.Stats(),
	})
}
