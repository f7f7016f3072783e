package engine

import (
	"errors"
	"fmt"
	"sync"

	"draughts/agent"
	"draughts/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

// Reply is the outcome of one human move: the move that was applied, the
// engine's answer if it had one, and the result once the game has ended.
type Reply struct {
	Human   game.Move
	Engine  *agent.Decision
	Outcome string // empty while the game is running
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	ID      uuid.UUID
	Board   *game.Board
	History []Update
	Over    bool
	Outcome string
}

// Session is a game between a human playing White and an agent playing
// Black. The human always moves first.
type Session struct {
	ID       uuid.UUID
	mu       sync.Mutex
	board    *game.Board
	opponent agent.Agent
	history  []Update
	over     bool
	outcome  string
}

// NewSession starts a session from board, or from the initial position when
// board is nil.
func NewSession(opponent agent.Agent, board *game.Board) *Session {
	if opponent.Side() != game.Black {
		panic("the engine opponent must play black")
	}
	if board == nil {
		board = game.InitializeBoard()
	} else {
		board = board.Clone()
	}

	s := &Session{
		ID:       uuid.New(),
		board:    board,
		opponent: opponent,
		history:  []Update{},
	}
	s.checkOver(game.White)
	return s
}

// LegalMoves lists the moves the human may play, nil once the game is over.
func (s *Session) LegalMoves() []game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.over {
		return nil
	}
	return s.board.LegalMoves(game.White)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]Update, len(s.history))
	copy(history, s.history)
	return Snapshot{
		ID:      s.ID,
		Board:   s.board.Clone(),
		History: history,
		Over:    s.over,
		Outcome: s.outcome,
	}
}

// Play applies the human move from -> to and then the opponent's reply.
// Among the legal moves the first one with matching endpoints is played.
func (s *Session) Play(from, to game.Square) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.over {
		return Reply{}, ErrGameOver
	}

	move, ok := s.match(from, to)
	if !ok {
		return Reply{}, fmt.Errorf("%w: %s->%s", ErrIllegalMove, from, to)
	}
	s.apply(move, game.White)
	reply := Reply{Human: move}

	if s.checkOver(game.Black) {
		reply.Outcome = s.outcome
		return reply, nil
	}

	decision, ok := s.opponent.FindMove(s.board)
	if !ok {
		// checkOver already covers a stuck opponent
		s.finish()
		reply.Outcome = s.outcome
		return reply, nil
	}
	s.apply(decision.Move, game.Black)
	reply.Engine = &decision
	log.Debug().Str("session", s.ID.String()).Str("move", decision.Move.String()).Float64("score", decision.Score).Msg("engine replied")

	if s.checkOver(game.White) {
		reply.Outcome = s.outcome
	}
	return reply, nil
}

func (s *Session) match(from, to game.Square) (game.Move, bool) {
	for _, move := range s.board.LegalMoves(game.White) {
		if move.From == from && move.To == to {
			return move, true
		}
	}
	return game.Move{}, false
}

func (s *Session) apply(move game.Move, side game.Side) {
	s.board = s.board.Apply(move)
	s.history = append(s.history, Update{
		Move: move,
		Side: side,
		Hash: s.board.Hash(side.Opponent()),
	})
}

// checkOver ends the session when toMove cannot play.
func (s *Session) checkOver(toMove game.Side) bool {
	if s.board.IsTerminal() || len(s.board.LegalMoves(toMove)) == 0 {
		s.finish()
	}
	return s.over
}

func (s *Session) finish() {
	s.over = true
	s.outcome = Outcome(s.board)
	log.Info().Str("session", s.ID.String()).Str("outcome", s.outcome).Msg("game over")
}
