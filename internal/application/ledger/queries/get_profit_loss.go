package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
)

// GetProfitLossQuery represents a query to generate a profit & loss statement
type GetProfitLossQuery struct {
	GameID   string
	FromTurn *int
	ToTurn   *int
}

// GetProfitLossResponse represents the profit & loss statement result
type GetProfitLossResponse struct {
	Period           string
	TotalRevenue     int
	TotalExpenses    int
	NetProfit        int
	RevenueBreakdown map[string]int // category -> amount
	ExpenseBreakdown map[string]int // category -> amount
}

// GetProfitLossHandler handles the GetProfitLoss query
type GetProfitLossHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProfitLossHandler creates a new GetProfitLossHandler
func NewGetProfitLossHandler(transactionRepo ledger.TransactionRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetProfitLoss query
func (h *GetProfitLossHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetProfitLossQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfitLossQuery")
	}

	opts := ledger.QueryOptions{FromTurn: query.FromTurn, ToTurn: query.ToTurn}
	transactions, err := h.transactionRepo.FindByGame(ctx, query.GameID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	resp := ProfitLoss(transactions)
	resp.Period = period(query.FromTurn, query.ToTurn)
	return resp, nil
}

// ProfitLoss sums income and expenses per category
func ProfitLoss(transactions []*ledger.Transaction) *GetProfitLossResponse {
	resp := &GetProfitLossResponse{
		RevenueBreakdown: make(map[string]int),
		ExpenseBreakdown: make(map[string]int),
	}
	for _, tx := range transactions {
		category := tx.Category().String()
		if tx.IsIncome() {
			resp.RevenueBreakdown[category] += tx.Amount()
			resp.TotalRevenue += tx.Amount()
		} else {
			resp.ExpenseBreakdown[category] += -tx.Amount()
			resp.TotalExpenses += -tx.Amount()
		}
	}
	resp.NetProfit = resp.TotalRevenue - resp.TotalExpenses
	return resp
}
