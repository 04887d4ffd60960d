package simulation

import (
	"context"
	"errors"
	"time"
)

var ErrGameNotFound = errors.New("saved game not found")

// Summary is the listing row of a saved game
type Summary struct {
	ID         string
	PlayerName string
	Turn       int
	Location   string
	Funds      int
	Reputation int
	SavedAt    time.Time
}

// Repository stores session snapshots
type Repository interface {
	// Save inserts or replaces the snapshot with the same id
	Save(ctx context.Context, snap Snapshot) error

	// Load returns ErrGameNotFound for unknown ids
	Load(ctx context.Context, id string) (Snapshot, error)

	// List returns saves, most recently saved first
	List(ctx context.Context) ([]Summary, error)

	Delete(ctx context.Context, id string) error
}
