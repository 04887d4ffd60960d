package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/tax"
)

// GetMarketQuery reads one location's market; an empty Location means the docked one
type GetMarketQuery struct {
	Location string
}

// MarketRowDTO is one commodity line of a market board
type MarketRowDTO struct {
	Commodity   string
	Listed      bool
	Tradeable   bool
	Price       int
	Banned      bool
	BanTurns    int
	Stock       int
	Bought      int
	Sold        int
	UnitBuyCost int // taxed cost of one unit
	UnitSellNet int // taxed proceeds of one unit
}

// GetMarketResponse is a market board
type GetMarketResponse struct {
	Location  string
	Type      string
	Economy   string
	Buildings []string
	TaxRate   float64
	Rows      []MarketRowDTO
}

type GetMarketHandler struct {
	games GameProvider
}

func NewGetMarketHandler(games GameProvider) *GetMarketHandler {
	return &GetMarketHandler{games: games}
}

func (h *GetMarketHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetMarketQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMarketQuery")
	}
	game := h.games.Game()
	name := query.Location
	if name == "" {
		name = game.CurrentLocation()
	}
	loc, err := game.Location(name)
	if err != nil {
		return nil, err
	}

	rate := tax.RateAt(game.Profile().Rank(), loc)
	resp := &GetMarketResponse{
		Location: loc.Name(),
		Type:     string(loc.Type()),
		Economy:  string(loc.Economy()),
		TaxRate:  rate,
	}
	for _, b := range loc.Buildings() {
		resp.Buildings = append(resp.Buildings, string(b))
	}

	m := loc.Market()
	for _, c := range shared.AllCommodities() {
		resp.Rows = append(resp.Rows, marketRow(m, c, rate))
	}
	return resp, nil
}

func marketRow(m *market.Market, c shared.Commodity, rate float64) MarketRowDTO {
	vol := m.Volume(c)
	row := MarketRowDTO{
		Commodity: c.String(),
		Listed:    m.IsListed(c),
		Tradeable: m.CanTrade(c),
		Banned:    m.IsBanned(c),
		BanTurns:  m.BanTurnsRemaining(c),
		Stock:     m.Stock(c),
		Bought:    vol.Bought,
		Sold:      vol.Sold,
	}
	if price, err := m.Price(c); err == nil && price > 0 {
		row.Price = price
		row.UnitBuyCost = tax.BuyCost(1, price, rate)
		row.UnitSellNet = tax.SellProceeds(1, price, rate)
	}
	return row
}
