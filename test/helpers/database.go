package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-economy/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-economy/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory SQLite database closed at test end
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test database")
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// Repositories bundles the save-game stores over one database
type Repositories struct {
	DB           *gorm.DB
	Games        *persistence.GormGameRepository
	Transactions *persistence.GormTransactionRepository
	PriceHistory *persistence.GormPriceHistoryRepository
}

// NewTestRepositories wires every gorm repository to a fresh test database
func NewTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	db := NewTestDB(t)
	return &Repositories{
		DB:           db,
		Games:        persistence.NewGormGameRepository(db),
		Transactions: persistence.NewGormTransactionRepository(db),
		PriceHistory: persistence.NewGormPriceHistoryRepository(db),
	}
}
