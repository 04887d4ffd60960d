package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
)

// TravelCommand moves the ship to Destination
type TravelCommand struct {
	Destination string
}

// TravelHandler handles the Travel command
type TravelHandler struct {
	games GameProvider
}

func NewTravelHandler(games GameProvider) *TravelHandler {
	return &TravelHandler{games: games}
}

// Handle executes the Travel command, returning *simulation.TravelResult
func (h *TravelHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TravelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TravelCommand")
	}
	return h.games.Game().Travel(ctx, cmd.Destination)
}
