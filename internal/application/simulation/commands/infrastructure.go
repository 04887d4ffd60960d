package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// DiscoverDepositCommand surveys the docked location for Resource
type DiscoverDepositCommand struct {
	Resource string
}

// DiscoverDepositResponse reports the units found (0 on a failed survey)
type DiscoverDepositResponse struct {
	Resource shared.Commodity
	Found    int
}

// BuildPlatformCommand builds an extractor on a discovered deposit
type BuildPlatformCommand struct {
	Resource string
}

// ConstructBuildingCommand raises a building at the docked location
type ConstructBuildingCommand struct {
	Building string
}

// RepairShipCommand repairs up to Points of hull damage
type RepairShipCommand struct {
	Points int
}

// UpgradeShipCommand raises one stat
type UpgradeShipCommand struct {
	Stat string
}

// InfrastructureHandler handles surveys, platforms, buildings and ship maintenance
type InfrastructureHandler struct {
	games GameProvider
}

func NewInfrastructureHandler(games GameProvider) *InfrastructureHandler {
	return &InfrastructureHandler{games: games}
}

func (h *InfrastructureHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	game := h.games.Game()
	switch cmd := request.(type) {
	case *DiscoverDepositCommand:
		c, err := shared.ParseCommodity(cmd.Resource)
		if err != nil {
			return nil, err
		}
		found, err := game.Discover(ctx, c)
		if err != nil {
			return nil, err
		}
		return &DiscoverDepositResponse{Resource: c, Found: found}, nil
	case *BuildPlatformCommand:
		c, err := shared.ParseCommodity(cmd.Resource)
		if err != nil {
			return nil, err
		}
		p, err := game.BuildPlatform(ctx, c)
		if err != nil {
			return nil, err
		}
		return &p, nil
	case *ConstructBuildingCommand:
		b, err := location.ParseBuildingType(cmd.Building)
		if err != nil {
			return nil, err
		}
		return nil, game.Construct(ctx, b)
	case *RepairShipCommand:
		return game.Repair(ctx, cmd.Points)
	case *UpgradeShipCommand:
		stat, err := ledger.ParseStat(cmd.Stat)
		if err != nil {
			return nil, err
		}
		return nil, game.Upgrade(ctx, stat)
	}
	return nil, fmt.Errorf("invalid request type for infrastructure handler: %T", request)
}
