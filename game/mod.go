package game

// Size is the number of rows and columns on the board.
const Size = 8

// StateHash identifies a position (board contents plus side to move).
type StateHash uint64

// Evaluates a board to a score where positive values favor Black and
// negative values favor White.
type Evaluate func(*Board) float64
