package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
)

// GetCashFlowQuery represents a query to generate a cash flow statement over
// an inclusive turn range. Nil bounds are open.
type GetCashFlowQuery struct {
	GameID   string
	FromTurn *int
	ToTurn   *int
}

// GetCashFlowResponse represents the cash flow statement result
type GetCashFlowResponse struct {
	Period     string
	Categories []*CategoryCashFlow
	NetFlow    int
}

// CategoryCashFlow represents cash flow for a specific category
type CategoryCashFlow struct {
	Category     string
	TotalInflow  int
	TotalOutflow int
	NetFlow      int
	Transactions int // count
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(transactionRepo ledger.TransactionRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	opts := ledger.QueryOptions{
		FromTurn: query.FromTurn,
		ToTurn:   query.ToTurn,
		Limit:    0, // No limit - get all transactions
	}
	transactions, err := h.transactionRepo.FindByGame(ctx, query.GameID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	resp := CashFlow(transactions)
	resp.Period = period(query.FromTurn, query.ToTurn)
	return resp, nil
}

// CashFlow aggregates journal entries by category. Categories without entries
// are omitted; the rest keep AllCategories order.
func CashFlow(transactions []*ledger.Transaction) *GetCashFlowResponse {
	categoryMap := make(map[ledger.Category]*CategoryCashFlow)
	for _, cat := range ledger.AllCategories() {
		categoryMap[cat] = &CategoryCashFlow{Category: cat.String()}
	}

	resp := &GetCashFlowResponse{}
	for _, tx := range transactions {
		flow := categoryMap[tx.Category()]
		flow.Transactions++

		if tx.IsIncome() {
			flow.TotalInflow += tx.Amount()
		} else {
			flow.TotalOutflow += -tx.Amount() // Store as positive value
		}
		flow.NetFlow = flow.TotalInflow - flow.TotalOutflow
		resp.NetFlow += tx.Amount()
	}

	resp.Categories = make([]*CategoryCashFlow, 0)
	for _, cat := range ledger.AllCategories() {
		if flow := categoryMap[cat]; flow.Transactions > 0 {
			resp.Categories = append(resp.Categories, flow)
		}
	}
	return resp
}

func period(from, to *int) string {
	switch {
	case from == nil && to == nil:
		return "all turns"
	case from == nil:
		return fmt.Sprintf("turns up to %d", *to)
	case to == nil:
		return fmt.Sprintf("turns from %d", *from)
	}
	return fmt.Sprintf("turns %d to %d", *from, *to)
}
