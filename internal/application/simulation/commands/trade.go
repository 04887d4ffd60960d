package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// BuyCargoCommand buys cargo at the docked location
type BuyCargoCommand struct {
	Commodity string
	Quantity  int
}

// SellCargoCommand sells cargo at the docked location
type SellCargoCommand struct {
	Commodity string
	Quantity  int
}

// TradeHandler handles both trade commands
type TradeHandler struct {
	games GameProvider
}

func NewTradeHandler(games GameProvider) *TradeHandler {
	return &TradeHandler{games: games}
}

// Handle executes a buy or sell, returning *simulation.TradeResult
func (h *TradeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	game := h.games.Game()
	switch cmd := request.(type) {
	case *BuyCargoCommand:
		c, err := shared.ParseCommodity(cmd.Commodity)
		if err != nil {
			return nil, err
		}
		return game.Buy(ctx, c, cmd.Quantity)
	case *SellCargoCommand:
		c, err := shared.ParseCommodity(cmd.Commodity)
		if err != nil {
			return nil, err
		}
		return game.Sell(ctx, c, cmd.Quantity)
	}
	return nil, fmt.Errorf("invalid request type: expected *BuyCargoCommand or *SellCargoCommand")
}
