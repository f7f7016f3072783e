// meta/meta.go
package meta

import "time"

// TIME_LIMIT is the default soft search budget per move.
const TIME_LIMIT = 4 * time.Second

// MAX_DEPTH is the default ply cap of iterative deepening.
const MAX_DEPTH = 4

// MAX_TURNS caps the number of plies of an engine game.
const MAX_TURNS = 300

// OPENING_PLIES is the number of random plies experiments open each game with.
const OPENING_PLIES = 2

// SERVER_ADDR is the default listen address of the HTTP server.
const SERVER_ADDR = ":8080"
