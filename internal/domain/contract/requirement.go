package contract

import (
	"fmt"
	"slices"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Requirement is the closed set of contract requirements. Only
// CargoRequirement, PassengerRequirement and SpecialRequirement implement it.
type Requirement interface {
	Kind() Kind
	Validate() error
	Describe() string
	requirement()
}

// CargoRequirement: buy Commodity at Source, then sell at least Amount at Destination
type CargoRequirement struct {
	Commodity   shared.Commodity `json:"commodity"`
	Amount      int              `json:"amount"`
	Source      string           `json:"source"`
	Destination string           `json:"destination"`
}

func (CargoRequirement) Kind() Kind { return KindCargo }
func (CargoRequirement) requirement() {}

func (r CargoRequirement) Validate() error {
	if !r.Commodity.IsValid() {
		return fmt.Errorf("%q: %w", r.Commodity, shared.ErrInvalidCommodity)
	}
	if r.Amount <= 0 {
		return shared.NewValidationError("amount", "must be positive")
	}
	if r.Source == "" || r.Destination == "" {
		return shared.NewValidationError("route", "source and destination are required")
	}
	if r.Source == r.Destination {
		return shared.NewValidationError("route", "source and destination must differ")
	}
	return nil
}

func (r CargoRequirement) Describe() string {
	return fmt.Sprintf("Deliver %d %s from %s to %s", r.Amount, r.Commodity, r.Source, r.Destination)
}

// PassengerRequirement: deliver Count passengers to Destination. An empty
// ClassCode accepts any class.
type PassengerRequirement struct {
	ClassCode       string `json:"class_code,omitempty"`
	Count           int    `json:"count"`
	MinSatisfaction int    `json:"min_satisfaction"`
	Destination     string `json:"destination"`
}

func (PassengerRequirement) Kind() Kind { return KindPassenger }
func (PassengerRequirement) requirement() {}

func (r PassengerRequirement) Validate() error {
	if r.Count <= 0 {
		return shared.NewValidationError("count", "must be positive")
	}
	if r.MinSatisfaction < 0 || r.MinSatisfaction > 100 {
		return shared.NewValidationError("min_satisfaction", "must be within [0,100]")
	}
	if r.Destination == "" {
		return shared.NewValidationError("destination", "is required")
	}
	return nil
}

func (r PassengerRequirement) Describe() string {
	class := "any class"
	if r.ClassCode != "" {
		class = "class " + r.ClassCode
	}
	return fmt.Sprintf("Carry %d passengers (%s, satisfaction >= %d) to %s",
		r.Count, class, r.MinSatisfaction, r.Destination)
}

// Accepts reports whether a delivery counts toward the requirement
func (r PassengerRequirement) Accepts(location, classCode string, satisfaction int) bool {
	if location != r.Destination {
		return false
	}
	if r.ClassCode != "" && classCode != r.ClassCode {
		return false
	}
	return satisfaction >= r.MinSatisfaction
}

// SpecialRequirement: buy Commodity at Source, then deliver Amount across
// Destinations. Every destination must be visited.
type SpecialRequirement struct {
	Commodity    shared.Commodity `json:"commodity"`
	Amount       int              `json:"amount"`
	Source       string           `json:"source"`
	Destinations []string         `json:"destinations"`
}

func (SpecialRequirement) Kind() Kind { return KindSpecial }
func (SpecialRequirement) requirement() {}

func (r SpecialRequirement) Validate() error {
	if !r.Commodity.IsValid() {
		return fmt.Errorf("%q: %w", r.Commodity, shared.ErrInvalidCommodity)
	}
	if r.Amount <= 0 {
		return shared.NewValidationError("amount", "must be positive")
	}
	if r.Source == "" || len(r.Destinations) == 0 {
		return shared.NewValidationError("route", "source and destinations are required")
	}
	if slices.Contains(r.Destinations, r.Source) {
		return shared.NewValidationError("route", "source cannot be a destination")
	}
	return nil
}

func (r SpecialRequirement) Describe() string {
	return fmt.Sprintf("Deliver %d %s from %s across %v", r.Amount, r.Commodity, r.Source, r.Destinations)
}

// IsDestination reports whether location is one of the listed destinations
func (r SpecialRequirement) IsDestination(location string) bool {
	return slices.Contains(r.Destinations, location)
}
