package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
)

// AcceptContractCommand accepts an offered contract
type AcceptContractCommand struct {
	ContractID string
}

// ClaimContractCommand claims a completed contract's reward
type ClaimContractCommand struct {
	ContractID string
}

// ClaimContractResponse is the reward paid out
type ClaimContractResponse struct {
	ContractID string
	Reward     contract.RewardBundle
}

// ContractHandler handles accept and claim
type ContractHandler struct {
	games GameProvider
}

func NewContractHandler(games GameProvider) *ContractHandler {
	return &ContractHandler{games: games}
}

// Handle executes accept or claim
func (h *ContractHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	game := h.games.Game()
	switch cmd := request.(type) {
	case *AcceptContractCommand:
		if err := game.AcceptContract(ctx, cmd.ContractID); err != nil {
			return nil, err
		}
		state, _ := game.Engine().Contract(cmd.ContractID)
		return &state, nil
	case *ClaimContractCommand:
		reward, err := game.ClaimContract(ctx, cmd.ContractID)
		if err != nil {
			return nil, err
		}
		return &ClaimContractResponse{ContractID: cmd.ContractID, Reward: reward}, nil
	}
	return nil, fmt.Errorf("invalid request type: expected *AcceptContractCommand or *ClaimContractCommand")
}
