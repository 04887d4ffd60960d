package ledger

import "fmt"

// ErrInvalidTransaction rejects a journal entry with a bad field
type ErrInvalidTransaction struct {
	Field  string
	Reason string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid journal entry: %s %s", e.Field, e.Reason)
}

// ErrBalanceInvariantViolation is returned when an entry's balances do not
// add up, which only happens for corrupted or hand-built journals
type ErrBalanceInvariantViolation struct {
	BalanceBefore int
	Amount        int
	BalanceAfter  int
	Expected      int
}

func (e *ErrBalanceInvariantViolation) Error() string {
	return fmt.Sprintf("journal entry does not balance: %d %+d = %d, recorded %d",
		e.BalanceBefore, e.Amount, e.Expected, e.BalanceAfter)
}
