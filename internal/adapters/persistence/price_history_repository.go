package persistence

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// GormPriceHistoryRepository implements PriceHistoryRepository using GORM
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GORM market price history repository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// Record persists one turn's price records
func (r *GormPriceHistoryRepository) Record(ctx context.Context, gameID string, records []*market.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*PriceHistoryModel, len(records))
	for i, rec := range records {
		models[i] = &PriceHistoryModel{
			GameID:    gameID,
			Location:  rec.Location(),
			Commodity: rec.Commodity().String(),
			Turn:      rec.Turn(),
			Price:     rec.Price(),
			Banned:    rec.Banned(),
		}
	}

	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to record price history: %w", err)
	}
	return nil
}

// History retrieves price history for a specific market/commodity pair,
// oldest first
func (r *GormPriceHistoryRepository) History(
	ctx context.Context,
	gameID string,
	location string,
	commodity shared.Commodity,
	limit int,
) ([]*market.PriceRecord, error) {
	var models []PriceHistoryModel
	query := r.db.WithContext(ctx).
		Where("game_id = ? AND location = ? AND commodity = ?", gameID, location, commodity.String()).
		Order("turn DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}

	records := make([]*market.PriceRecord, 0, len(models))
	for _, model := range models {
		rec, err := market.NewPriceRecord(model.Turn, model.Location, shared.Commodity(model.Commodity), model.Price, model.Banned)
		if err != nil {
			return nil, fmt.Errorf("failed to convert model to record: %w", err)
		}
		records = append(records, rec)
	}
	slices.Reverse(records)
	return records, nil
}

// DeleteByGame removes a game's price history
func (r *GormPriceHistoryRepository) DeleteByGame(ctx context.Context, gameID string) error {
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).Delete(&PriceHistoryModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete price history: %w", err)
	}
	return nil
}
