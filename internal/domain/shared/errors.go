package shared

import (
	"errors"
	"fmt"
)

// Expected-branch errors returned by trade and obligation operations.
// None of these are exceptional: callers display a message and re-prompt.
var (
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrInsufficientCargo        = errors.New("insufficient cargo")
	ErrCargoCapacityExceeded    = errors.New("cargo capacity exceeded")
	ErrCommodityBanned          = errors.New("commodity banned")
	ErrNoPlatformAvailable      = errors.New("no platform available")
	ErrInvalidCommodity         = errors.New("invalid commodity")
	ErrInvalidQuantity          = errors.New("invalid quantity")
	ErrNoDeposit                = errors.New("no deposit discovered")
	ErrNotBuildable             = errors.New("building not allowed at this location")
	ErrUnknownLocation          = errors.New("unknown location")
	ErrContractCapReached       = errors.New("active contract cap reached")
	ErrContractAlreadyCompleted = errors.New("contract already completed")
	ErrContractExpired          = errors.New("contract expired")
	ErrContractNotCompleted     = errors.New("contract not completed")
	ErrContractAlreadyClaimed   = errors.New("contract rewards already claimed")
	ErrContractNotFound         = errors.New("contract not found")
	ErrContractNotOffered       = errors.New("contract is not on offer")
	ErrQuestAlreadyActive       = errors.New("quest already active")
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
	Kind    error
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel so errors.Is works on rich errors.
func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NewDomainError(kind error, message string) *DomainError {
	return &DomainError{Message: message, Kind: kind}
}

// InsufficientFundsError carries the shortfall of a rejected payment.
type InsufficientFundsError struct {
	*DomainError
	Required  int
	Available int
}

func NewInsufficientFundsError(required, available int) *InsufficientFundsError {
	return &InsufficientFundsError{
		DomainError: NewDomainError(ErrInsufficientFunds,
			fmt.Sprintf("insufficient funds: need %d, have %d", required, available)),
		Required:  required,
		Available: available,
	}
}

// InsufficientCargoError carries the shortfall of a rejected sale.
type InsufficientCargoError struct {
	*DomainError
	Commodity Commodity
	Required  int
	Available int
}

func NewInsufficientCargoError(commodity Commodity, required, available int) *InsufficientCargoError {
	return &InsufficientCargoError{
		DomainError: NewDomainError(ErrInsufficientCargo,
			fmt.Sprintf("insufficient %s cargo: need %d, have %d", commodity, required, available)),
		Commodity: commodity,
		Required:  required,
		Available: available,
	}
}

// CommodityBannedError reports how long a ban still runs.
type CommodityBannedError struct {
	*DomainError
	Commodity      Commodity
	TurnsRemaining int
}

func NewCommodityBannedError(commodity Commodity, turnsRemaining int) *CommodityBannedError {
	return &CommodityBannedError{
		DomainError: NewDomainError(ErrCommodityBanned,
			fmt.Sprintf("%s trading banned for %d more turns", commodity, turnsRemaining)),
		Commodity:      commodity,
		TurnsRemaining: turnsRemaining,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvariantViolation panics. Reaching it means the turn ordering or the
// bound-clamping contract was broken by the caller, not by player input.
func InvariantViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("invariant violated: "+format, args...))
}
