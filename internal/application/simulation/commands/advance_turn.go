package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
)

// AdvanceTurnCommand advances the session by Turns turns (at least one)
type AdvanceTurnCommand struct {
	Turns int
}

// AdvanceTurnResponse carries one report per advanced turn. Errs holds the
// per-location failures of turns that still completed.
type AdvanceTurnResponse struct {
	Reports []*simulation.TurnReport
	Errs    []error
}

// AdvanceTurnHandler handles the AdvanceTurn command
type AdvanceTurnHandler struct {
	games GameProvider
}

func NewAdvanceTurnHandler(games GameProvider) *AdvanceTurnHandler {
	return &AdvanceTurnHandler{games: games}
}

// Handle executes the AdvanceTurn command
func (h *AdvanceTurnHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AdvanceTurnCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceTurnCommand")
	}
	turns := cmd.Turns
	if turns <= 0 {
		turns = 1
	}

	game := h.games.Game()
	resp := &AdvanceTurnResponse{}
	for i := 0; i < turns; i++ {
		if err := ctx.Err(); err != nil {
			return resp, err
		}
		report, err := game.AdvanceTurn(ctx)
		if report == nil {
			return resp, err
		}
		resp.Reports = append(resp.Reports, report)
		if err != nil {
			resp.Errs = append(resp.Errs, err)
		}
	}
	return resp, nil
}
