package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/quest"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/tax"
)

// GetContractsQuery lists every tracked obligation
type GetContractsQuery struct{}

// ContractDTO is a contract line with a profitability estimate where one applies
type ContractDTO struct {
	contract.State
	FinalReward   contract.RewardBundle
	Bonuses       contract.Bonuses
	Profitability *contract.ProfitabilityEvaluation
}

// GetContractsResponse groups contracts by collection
type GetContractsResponse struct {
	Offered         []ContractDTO
	Active          []ContractDTO
	Finished        []ContractDTO
	Quests          []quest.State
	CompletedQuests []quest.State
	ActiveCap       int
}

type GetContractsHandler struct {
	games GameProvider
}

func NewGetContractsHandler(games GameProvider) *GetContractsHandler {
	return &GetContractsHandler{games: games}
}

func (h *GetContractsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetContractsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetContractsQuery")
	}
	game := h.games.Game()
	engine := game.Engine()

	resp := &GetContractsResponse{
		Quests:          engine.Quests(),
		CompletedQuests: engine.CompletedQuests(),
		ActiveCap:       engine.Config().ActiveCap,
	}
	resp.Offered = h.describe(game, engine.Offered())
	resp.Active = h.describe(game, engine.Active())
	resp.Finished = h.describe(game, engine.Finished())
	return resp, nil
}

func (h *GetContractsHandler) describe(game *simulation.Game, states []contract.State) []ContractDTO {
	engine := game.Engine()
	out := make([]ContractDTO, 0, len(states))
	for _, st := range states {
		dto := ContractDTO{State: st}
		dto.FinalReward, dto.Bonuses, _ = engine.PreviewReward(st.ID)
		if ctx, ok := profitabilityContext(game, st); ok {
			dto.Profitability, _ = engine.Evaluate(st.ID, ctx)
		}
		out = append(out, dto)
	}
	return out
}

// profitabilityContext prices the cargo leg at current market prices
func profitabilityContext(game *simulation.Game, st contract.State) (contract.ProfitabilityContext, bool) {
	var source, destination string
	var commodity shared.Commodity
	switch {
	case st.Cargo != nil:
		source, destination, commodity = st.Cargo.Source, st.Cargo.Destination, st.Cargo.Commodity
	case st.Special != nil && len(st.Special.Destinations) > 0:
		source, destination, commodity = st.Special.Source, st.Special.Destinations[0], st.Special.Commodity
	default:
		return contract.ProfitabilityContext{}, false
	}

	src, err := game.Location(source)
	if err != nil {
		return contract.ProfitabilityContext{}, false
	}
	dst, err := game.Location(destination)
	if err != nil {
		return contract.ProfitabilityContext{}, false
	}
	srcPrice, err := src.Market().Price(commodity)
	if err != nil {
		return contract.ProfitabilityContext{}, false
	}
	dstPrice, err := dst.Market().Price(commodity)
	if err != nil {
		return contract.ProfitabilityContext{}, false
	}

	rank := game.Profile().Rank()
	return contract.ProfitabilityContext{
		SourcePrice:      srcPrice,
		DestinationPrice: dstPrice,
		BuyTaxRate:       tax.RateAt(rank, src),
		SellTaxRate:      tax.RateAt(rank, dst),
		CargoCapacity:    game.Ship().Capacity(),
	}, true
}
