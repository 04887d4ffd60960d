package persistence

import (
	"time"
)

// GameModel represents the games table. The full session is stored as a JSON
// snapshot; the other columns are copies for listing saves without decoding.
type GameModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	PlayerName      string    `gorm:"column:player_name;not null"`
	Turn            int       `gorm:"column:turn;not null"`
	CurrentLocation string    `gorm:"column:current_location;not null"`
	Funds           int       `gorm:"column:funds;not null"`
	Reputation      int       `gorm:"column:reputation;not null;default:0"`
	SnapshotVersion int       `gorm:"column:snapshot_version;not null"`
	Snapshot        string    `gorm:"column:snapshot;type:text;not null"` // JSON as text
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
	SavedAt         time.Time `gorm:"column:saved_at;not null"`
}

func (GameModel) TableName() string {
	return "games"
}

// TransactionModel represents the transactions table
type TransactionModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	GameID          string    `gorm:"column:game_id;not null;index:idx_transactions_game_turn"`
	Turn            int       `gorm:"column:turn;not null;index:idx_transactions_game_turn"`
	Sequence        int       `gorm:"column:sequence;not null"`
	Timestamp       time.Time `gorm:"column:timestamp;not null"`
	TransactionType string    `gorm:"column:transaction_type;not null"`
	Category        string    `gorm:"column:category;not null"`
	Amount          int       `gorm:"column:amount;not null"`
	BalanceBefore   int       `gorm:"column:balance_before;not null"`
	BalanceAfter    int       `gorm:"column:balance_after;not null"`
	Description     string    `gorm:"column:description"`
	Commodity       string    `gorm:"column:commodity"`
	Quantity        int       `gorm:"column:quantity;default:0"`
	RelatedEntityID string    `gorm:"column:related_entity_id"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// PriceHistoryModel represents the market_price_history table
type PriceHistoryModel struct {
	ID        int    `gorm:"column:id;primaryKey;autoIncrement"`
	GameID    string `gorm:"column:game_id;not null;index:idx_price_history_lookup"`
	Location  string `gorm:"column:location;not null;index:idx_price_history_lookup"`
	Commodity string `gorm:"column:commodity;not null;index:idx_price_history_lookup"`
	Turn      int    `gorm:"column:turn;not null"`
	Price     int    `gorm:"column:price;not null"`
	Banned    bool   `gorm:"column:banned;not null;default:false"`
}

func (PriceHistoryModel) TableName() string {
	return "market_price_history"
}
