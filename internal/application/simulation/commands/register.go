package commands

import "github.com/andrescamacho/spacetraders-economy/internal/application/common"

// RegisterHandlers wires every session command into the mediator
func RegisterHandlers(m common.Mediator, games GameProvider) error {
	trade := NewTradeHandler(games)
	contracts := NewContractHandler(games)
	infra := NewInfrastructureHandler(games)
	progress := NewProgressHandler(games)

	registrations := []error{
		common.RegisterHandler[*AdvanceTurnCommand](m, NewAdvanceTurnHandler(games)),
		common.RegisterHandler[*BuyCargoCommand](m, trade),
		common.RegisterHandler[*SellCargoCommand](m, trade),
		common.RegisterHandler[*TravelCommand](m, NewTravelHandler(games)),
		common.RegisterHandler[*AcceptContractCommand](m, contracts),
		common.RegisterHandler[*ClaimContractCommand](m, contracts),
		common.RegisterHandler[*DiscoverDepositCommand](m, infra),
		common.RegisterHandler[*BuildPlatformCommand](m, infra),
		common.RegisterHandler[*ConstructBuildingCommand](m, infra),
		common.RegisterHandler[*RepairShipCommand](m, infra),
		common.RegisterHandler[*UpgradeShipCommand](m, infra),
		common.RegisterHandler[*DeliverPassengersCommand](m, progress),
		common.RegisterHandler[*StartQuestCommand](m, progress),
		common.RegisterHandler[*RecordCombatVictoryCommand](m, progress),
		common.RegisterHandler[*AddResearchCommand](m, progress),
		common.RegisterHandler[*ReachMilestoneCommand](m, progress),
	}
	for _, err := range registrations {
		if err != nil {
			return err
		}
	}
	return nil
}
