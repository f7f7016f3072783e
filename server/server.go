package server

import (
	"errors"
	"time"

	"draughts/meta"
	"draughts/searcher"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

// Config holds the defaults applied when a request leaves a field out.
type Config struct {
	Strategy     searcher.Strategy
	TimeLimit    time.Duration
	MaxDepth     int
	AllowOrigins string
}

func DefaultConfig() Config {
	return Config{
		Strategy:     searcher.AlphaBetaOrdering,
		TimeLimit:    meta.TIME_LIMIT,
		MaxDepth:     meta.MAX_DEPTH,
		AllowOrigins: "*",
	}
}

// New builds the fiber app serving the game API.
func New(cfg Config, manager *Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "draughts",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", responseStatus(c, err)).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	})

	gc := &GameController{cfg: cfg, manager: manager}

	api := app.Group("/api")
	api.Post("/findmove", gc.FindMove)

	api.Post("/games", gc.CreateGame)
	api.Get("/games/:id", gc.GetGame)
	api.Delete("/games/:id", gc.DeleteGame)
	api.Get("/games/:id/moves", gc.LegalMoves)
	api.Post("/games/:id/moves", gc.PlayMove)

	return app
}

// responseStatus is the status the client will see. An error returned down
// the chain is turned into a response by the error handler only after the
// middleware returns.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
