package ledger

import (
	"fmt"
	"time"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Transaction is one immutable journal entry of the ship's funds
type Transaction struct {
	id              TransactionID
	turn            int
	timestamp       time.Time
	transactionType TransactionType
	category        Category
	amount          int // Positive for income, negative for expenses
	balanceBefore   int
	balanceAfter    int
	description     string
	commodity       shared.Commodity
	quantity        int
	relatedEntityID string // contract or quest id for rewards
}

// Entry is the input for a new journal entry
type Entry struct {
	Turn            int
	Type            TransactionType
	Amount          int
	BalanceBefore   int
	Description     string
	Commodity       shared.Commodity
	Quantity        int
	RelatedEntityID string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(e Entry, timestamp time.Time) (*Transaction, error) {
	category, err := e.Type.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "transaction_type", Reason: err.Error()}
	}

	t := &Transaction{
		id:              NewTransactionID(),
		turn:            e.Turn,
		timestamp:       timestamp,
		transactionType: e.Type,
		category:        category,
		amount:          e.Amount,
		balanceBefore:   e.BalanceBefore,
		balanceAfter:    e.BalanceBefore + e.Amount,
		description:     e.Description,
		commodity:       e.Commodity,
		quantity:        e.Quantity,
		relatedEntityID: e.RelatedEntityID,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction reconstructs a transaction from persistence
func ReconstructTransaction(id TransactionID, e Entry, balanceAfter int, timestamp time.Time) *Transaction {
	category, _ := e.Type.ToCategory()
	return &Transaction{
		id:              id,
		turn:            e.Turn,
		timestamp:       timestamp,
		transactionType: e.Type,
		category:        category,
		amount:          e.Amount,
		balanceBefore:   e.BalanceBefore,
		balanceAfter:    balanceAfter,
		description:     e.Description,
		commodity:       e.Commodity,
		quantity:        e.Quantity,
		relatedEntityID: e.RelatedEntityID,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return &ErrInvalidTransaction{Field: "amount", Reason: "cannot be zero"}
	}
	if t.turn < 0 {
		return &ErrInvalidTransaction{Field: "turn", Reason: "cannot be negative"}
	}

	expected := t.balanceBefore + t.amount
	if t.balanceAfter != expected {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}
	if t.balanceAfter < 0 {
		return &ErrInvalidTransaction{Field: "balance_after", Reason: "cannot go negative"}
	}
	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() TransactionID                { return t.id }
func (t *Transaction) Turn() int                        { return t.turn }
func (t *Transaction) Timestamp() time.Time             { return t.timestamp }
func (t *Transaction) TransactionType() TransactionType { return t.transactionType }
func (t *Transaction) Category() Category               { return t.category }
func (t *Transaction) Amount() int                      { return t.amount }
func (t *Transaction) BalanceBefore() int               { return t.balanceBefore }
func (t *Transaction) BalanceAfter() int                { return t.balanceAfter }
func (t *Transaction) Description() string              { return t.description }
func (t *Transaction) Commodity() shared.Commodity      { return t.commodity }
func (t *Transaction) Quantity() int                    { return t.quantity }
func (t *Transaction) RelatedEntityID() string          { return t.relatedEntityID }

// IsIncome returns true if the transaction represents income
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

// String provides a human-readable representation
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, turn=%d, type=%s, amount=%d, balance=%d->%d]",
		t.id.String(), t.turn, t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
