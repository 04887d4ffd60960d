package queries

import "github.com/andrescamacho/spacetraders-economy/internal/application/common"

// RegisterHandlers wires every session query into the mediator
func RegisterHandlers(m common.Mediator, games GameProvider) error {
	for _, err := range []error{
		common.RegisterHandler[*GetMarketQuery](m, NewGetMarketHandler(games)),
		common.RegisterHandler[*GetContractsQuery](m, NewGetContractsHandler(games)),
		common.RegisterHandler[*GetTaxRatesQuery](m, NewGetTaxRatesHandler(games)),
		common.RegisterHandler[*GetStatusQuery](m, NewGetStatusHandler(games)),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
