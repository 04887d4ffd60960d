package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/tax"
)

// GetTaxRatesQuery tabulates the tax rate at every location for the current
// rank, or for Rank when set
type GetTaxRatesQuery struct {
	Rank string
}

type TaxRateDTO struct {
	Location      string
	Type          string
	BuildingCount int
	Rate          float64
}

type GetTaxRatesResponse struct {
	Rank           string
	RankMultiplier float64
	Rates          []TaxRateDTO
}

type GetTaxRatesHandler struct {
	games GameProvider
}

func NewGetTaxRatesHandler(games GameProvider) *GetTaxRatesHandler {
	return &GetTaxRatesHandler{games: games}
}

func (h *GetTaxRatesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetTaxRatesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTaxRatesQuery")
	}
	game := h.games.Game()

	rank := game.Profile().Rank()
	if query.Rank != "" {
		parsed, err := player.ParseRank(query.Rank)
		if err != nil {
			return nil, err
		}
		rank = parsed
	}

	resp := &GetTaxRatesResponse{Rank: rank.String(), RankMultiplier: tax.RankMultiplier(rank)}
	for _, name := range game.LocationNames() {
		loc, err := game.Location(name)
		if err != nil {
			return nil, err
		}
		resp.Rates = append(resp.Rates, TaxRateDTO{
			Location:      name,
			Type:          string(loc.Type()),
			BuildingCount: loc.BuildingCount(),
			Rate:          tax.RateAt(rank, loc),
		})
	}
	return resp, nil
}
