package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
)

// GetTransactionsQuery represents a query to retrieve a saved game's journal
type GetTransactionsQuery struct {
	GameID          string
	FromTurn        *int
	ToTurn          *int
	Category        *string
	TransactionType *string
	Limit           int
	Offset          int
}

// GetTransactionsResponse represents the result of the query
type GetTransactionsResponse struct {
	Transactions []*TransactionDTO
}

// TransactionDTO represents a transaction data transfer object
type TransactionDTO struct {
	ID              string
	Turn            int
	Timestamp       time.Time
	Type            string
	Category        string
	Amount          int
	BalanceBefore   int
	BalanceAfter    int
	Description     string
	Commodity       string
	Quantity        int
	RelatedEntityID string
}

// GetTransactionsHandler handles the GetTransactions query
type GetTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetTransactionsHandler creates a new GetTransactionsHandler
func NewGetTransactionsHandler(transactionRepo ledger.TransactionRepository) *GetTransactionsHandler {
	return &GetTransactionsHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetTransactions query
func (h *GetTransactionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery")
	}
	if query.GameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	opts, err := h.buildQueryOptions(query)
	if err != nil {
		return nil, err
	}

	transactions, err := h.transactionRepo.FindByGame(ctx, query.GameID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	dtos := make([]*TransactionDTO, len(transactions))
	for i, tx := range transactions {
		dtos[i] = ToDTO(tx)
	}
	return &GetTransactionsResponse{Transactions: dtos}, nil
}

func (h *GetTransactionsHandler) buildQueryOptions(query *GetTransactionsQuery) (ledger.QueryOptions, error) {
	opts := ledger.DefaultQueryOptions()
	opts.FromTurn = query.FromTurn
	opts.ToTurn = query.ToTurn

	if query.Category != nil {
		category, err := ledger.ParseCategory(*query.Category)
		if err != nil {
			return opts, fmt.Errorf("invalid category: %w", err)
		}
		opts.Category = &category
	}

	if query.TransactionType != nil {
		txType, err := ledger.ParseTransactionType(*query.TransactionType)
		if err != nil {
			return opts, fmt.Errorf("invalid transaction type: %w", err)
		}
		opts.TransactionType = &txType
	}

	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	opts.Offset = query.Offset
	return opts, nil
}

// ToDTO flattens a journal entry for display
func ToDTO(tx *ledger.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:              tx.ID().String(),
		Turn:            tx.Turn(),
		Timestamp:       tx.Timestamp(),
		Type:            tx.TransactionType().String(),
		Category:        tx.Category().String(),
		Amount:          tx.Amount(),
		BalanceBefore:   tx.BalanceBefore(),
		BalanceAfter:    tx.BalanceAfter(),
		Description:     tx.Description(),
		Commodity:       tx.Commodity().String(),
		Quantity:        tx.Quantity(),
		RelatedEntityID: tx.RelatedEntityID(),
	}
}
