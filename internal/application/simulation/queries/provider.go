package queries

import "github.com/andrescamacho/spacetraders-economy/internal/application/simulation"

// GameProvider returns the session queries read from
type GameProvider interface {
	Game() *simulation.Game
}
