package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
)

// GormGameRepository implements simulation.Repository using GORM
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GORM-based save-game repository
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// Save persists a snapshot (upsert)
func (r *GormGameRepository) Save(ctx context.Context, snap simulation.Snapshot) error {
	if snap.ID == "" {
		return fmt.Errorf("snapshot has no game id")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	model := GameModel{
		ID:              snap.ID,
		PlayerName:      snap.Profile.Name,
		Turn:            snap.Turn,
		CurrentLocation: snap.Current,
		Funds:           snap.Ship.Funds,
		Reputation:      snap.Profile.Reputation,
		SnapshotVersion: snap.Version,
		Snapshot:        string(data),
		CreatedAt:       savedAt,
		SavedAt:         savedAt,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"player_name", "turn", "current_location", "funds", "reputation",
				"snapshot_version", "snapshot", "saved_at",
			}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by game id
func (r *GormGameRepository) Load(ctx context.Context, id string) (simulation.Snapshot, error) {
	var model GameModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return simulation.Snapshot{}, fmt.Errorf("%w: %s", simulation.ErrGameNotFound, id)
		}
		return simulation.Snapshot{}, fmt.Errorf("failed to load game: %w", err)
	}

	var snap simulation.Snapshot
	if err := json.Unmarshal([]byte(model.Snapshot), &snap); err != nil {
		return simulation.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// List returns every save, most recent first
func (r *GormGameRepository) List(ctx context.Context) ([]simulation.Summary, error) {
	var models []GameModel
	err := r.db.WithContext(ctx).
		Omit("snapshot").
		Order("saved_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	summaries := make([]simulation.Summary, len(models))
	for i, m := range models {
		summaries[i] = simulation.Summary{
			ID:         m.ID,
			PlayerName: m.PlayerName,
			Turn:       m.Turn,
			Location:   m.CurrentLocation,
			Funds:      m.Funds,
			Reputation: m.Reputation,
			SavedAt:    m.SavedAt,
		}
	}
	return summaries, nil
}

// Delete removes a save
func (r *GormGameRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GameModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", simulation.ErrGameNotFound, id)
	}
	return nil
}
