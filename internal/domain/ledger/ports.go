package ledger

import "context"

// TransactionRepository persists the journal of a saved game
type TransactionRepository interface {
	// Append persists journal entries not yet stored for the game
	Append(ctx context.Context, gameID string, txs []*Transaction) error

	// FindByGame retrieves journal entries with optional filtering
	FindByGame(ctx context.Context, gameID string, opts QueryOptions) ([]*Transaction, error)
}

// QueryOptions defines filtering and pagination options for journal queries
type QueryOptions struct {
	// Turn range filtering (inclusive)
	FromTurn *int
	ToTurn   *int

	Category        *Category
	TransactionType *TransactionType

	// Pagination
	Limit  int
	Offset int
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 50}
}
