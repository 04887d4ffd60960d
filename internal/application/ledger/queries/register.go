package queries

import (
	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
)

// RegisterHandlers wires the journal reports into the mediator
func RegisterHandlers(m common.Mediator, repo ledger.TransactionRepository) error {
	if err := common.RegisterHandler[*GetTransactionsQuery](m, NewGetTransactionsHandler(repo)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*GetCashFlowQuery](m, NewGetCashFlowHandler(repo)); err != nil {
		return err
	}
	return common.RegisterHandler[*GetProfitLossQuery](m, NewGetProfitLossHandler(repo))
}
