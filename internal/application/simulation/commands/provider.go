package commands

import "github.com/andrescamacho/spacetraders-economy/internal/application/simulation"

// GameProvider returns the session commands act on. A provider may swap the
// game after a load.
type GameProvider interface {
	Game() *simulation.Game
}

// StaticProvider always returns the same game
type StaticProvider struct {
	G *simulation.Game
}

func (p *StaticProvider) Game() *simulation.Game { return p.G }
