package contract

import "fmt"

// Status is the lifecycle state of a contract
type Status string

const (
	StatusOffered   Status = "OFFERED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusClaimed   Status = "CLAIMED"
)

// IsTerminal reports whether progress can no longer change
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusClaimed
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a stored status
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOffered, StatusActive, StatusCompleted, StatusFailed, StatusClaimed:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid contract status: %s", s)
}

// Kind is the contract category
type Kind string

const (
	KindCargo     Kind = "CARGO"
	KindPassenger Kind = "PASSENGER"
	KindSpecial   Kind = "SPECIAL"
)
