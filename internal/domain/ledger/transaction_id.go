package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID is a value object representing a journal entry's unique identifier
type TransactionID struct {
	value string
}

// NewTransactionID creates a new TransactionID with a generated UUID
func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.New().String()}
}

// ParseTransactionID restores a TransactionID from a stored UUID string
func ParseTransactionID(id string) (TransactionID, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction_id %q: %w", id, err)
	}
	return TransactionID{value: id}, nil
}

func (t TransactionID) String() string {
	return t.value
}

func (t TransactionID) IsZero() bool {
	return t.value == ""
}
