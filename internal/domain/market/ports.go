package market

import (
	"context"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// PriceHistoryRepository defines persistence operations for price history
type PriceHistoryRepository interface {
	// Record persists one turn's price records for a game
	Record(ctx context.Context, gameID string, records []*PriceRecord) error

	// History retrieves records for a market/commodity pair ordered oldest
	// first, keeping the most recent limit entries when limit > 0
	History(ctx context.Context, gameID, location string, commodity shared.Commodity, limit int) ([]*PriceRecord, error)
}
