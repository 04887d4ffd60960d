package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// GetStatusQuery summarizes the session
type GetStatusQuery struct{}

type GetStatusResponse struct {
	GameID      string
	Turn        int
	Location    string
	Funds       int
	Cargo       map[string]int
	CargoUsed   int
	Capacity    int
	Damage      int
	Attack      int
	Defense     int
	Speed       int
	Rank        string
	Reputation  int
	PlotPoints  int
	TradeProfit int
	Discovered  []string
}

type GetStatusHandler struct {
	games GameProvider
}

func NewGetStatusHandler(games GameProvider) *GetStatusHandler {
	return &GetStatusHandler{games: games}
}

func (h *GetStatusHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetStatusQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStatusQuery")
	}
	game := h.games.Game()
	ship := game.Ship()
	profile := game.Profile()

	resp := &GetStatusResponse{
		GameID:      game.ID(),
		Turn:        game.Turn(),
		Location:    game.CurrentLocation(),
		Funds:       ship.Funds(),
		Cargo:       make(map[string]int),
		CargoUsed:   ship.CargoUsed(),
		Capacity:    ship.Capacity(),
		Damage:      ship.Damage(),
		Attack:      ship.Attack(),
		Defense:     ship.Defense(),
		Speed:       ship.Speed(),
		Rank:        profile.Rank().String(),
		Reputation:  profile.Reputation,
		PlotPoints:  profile.PlotPoints,
		TradeProfit: profile.TradeProfit,
		Discovered:  profile.DiscoveredLocations(),
	}
	for _, c := range shared.AllCommodities() {
		if qty := ship.Cargo(c); qty > 0 {
			resp.Cargo[c.String()] = qty
		}
	}
	return resp, nil
}
