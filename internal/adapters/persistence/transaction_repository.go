package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append persists the entries not yet stored for the game. Entries keep the
// order they are given in; already stored ids are skipped.
func (r *GormTransactionRepository) Append(ctx context.Context, gameID string, txs []*ledger.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var stored []string
		if err := db.Model(&TransactionModel{}).Where("game_id = ?", gameID).Pluck("id", &stored).Error; err != nil {
			return fmt.Errorf("failed to list stored transactions: %w", err)
		}
		known := make(map[string]bool, len(stored))
		for _, id := range stored {
			known[id] = true
		}

		var next int
		if err := db.Model(&TransactionModel{}).Where("game_id = ?", gameID).
			Select("COALESCE(MAX(sequence), 0)").Scan(&next).Error; err != nil {
			return fmt.Errorf("failed to read journal sequence: %w", err)
		}

		var models []*TransactionModel
		for _, tx := range txs {
			if known[tx.ID().String()] {
				continue
			}
			next++
			models = append(models, transactionToModel(gameID, next, tx))
		}
		if len(models) == 0 {
			return nil
		}
		if err := db.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to create transactions: %w", err)
		}
		return nil
	})
}

// FindByGame retrieves journal entries for a game, oldest first
func (r *GormTransactionRepository) FindByGame(ctx context.Context, gameID string, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	query := r.db.WithContext(ctx).Where("game_id = ?", gameID)

	// Apply filters
	query = applyFilters(query, opts)
	query = query.Order("sequence ASC")

	// Apply pagination
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*ledger.Transaction, len(models))
	for i := range models {
		tx, err := modelToTransaction(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert transaction model: %w", err)
		}
		transactions[i] = tx
	}
	return transactions, nil
}

// DeleteByGame removes a game's journal
func (r *GormTransactionRepository) DeleteByGame(ctx context.Context, gameID string) error {
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Delete(&TransactionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}

// applyFilters applies query options to a GORM query
func applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	// Turn range filtering
	if opts.FromTurn != nil {
		query = query.Where("turn >= ?", *opts.FromTurn)
	}
	if opts.ToTurn != nil {
		query = query.Where("turn <= ?", *opts.ToTurn)
	}

	// Category filtering
	if opts.Category != nil {
		query = query.Where("category = ?", opts.Category.String())
	}

	// Transaction type filtering
	if opts.TransactionType != nil {
		query = query.Where("transaction_type = ?", opts.TransactionType.String())
	}
	return query
}

// modelToTransaction converts database model to domain entity
func modelToTransaction(model *TransactionModel) (*ledger.Transaction, error) {
	id, err := ledger.ParseTransactionID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction ID in database: %w", err)
	}

	transactionType, err := ledger.ParseTransactionType(model.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type in database: %w", err)
	}

	return ledger.ReconstructTransaction(id, ledger.Entry{
		Turn:            model.Turn,
		Type:            transactionType,
		Amount:          model.Amount,
		BalanceBefore:   model.BalanceBefore,
		Description:     model.Description,
		Commodity:       shared.Commodity(model.Commodity),
		Quantity:        model.Quantity,
		RelatedEntityID: model.RelatedEntityID,
	}, model.BalanceAfter, model.Timestamp), nil
}

// transactionToModel converts domain entity to database model
func transactionToModel(gameID string, sequence int, tx *ledger.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              tx.ID().String(),
		GameID:          gameID,
		Turn:            tx.Turn(),
		Sequence:        sequence,
		Timestamp:       tx.Timestamp(),
		TransactionType: tx.TransactionType().String(),
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
