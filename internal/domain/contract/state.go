package contract

import (
	"fmt"
	"slices"
)

// State is the serializable form of a contract, counters stored verbatim.
// Title is derived and ignored on restore.
type State struct {
	ID                     string                `json:"id"`
	Kind                   Kind                  `json:"kind"`
	Title                  string                `json:"title"`
	Status                 Status                `json:"status"`
	Duration               int                   `json:"duration"`
	TurnsRemaining         int                   `json:"turns_remaining"`
	LastTurn               int                   `json:"last_turn"`
	OfferedTurn            int                   `json:"offered_turn"`
	AcceptedTurn           int                   `json:"accepted_turn"`
	CompletedWithRemaining int                   `json:"completed_with_remaining"`
	Progress               Progress              `json:"progress"`
	Reward                 RewardBundle          `json:"reward"`
	Penalty                int                   `json:"penalty"`
	Claimed                *RewardBundle         `json:"claimed,omitempty"`
	Cargo                  *CargoRequirement     `json:"cargo,omitempty"`
	Passenger              *PassengerRequirement `json:"passenger,omitempty"`
	Special                *SpecialRequirement   `json:"special,omitempty"`
}

// Snapshot returns the contract's state
func (c *Contract) Snapshot() State {
	st := State{
		ID:                     c.id,
		Kind:                   c.Kind(),
		Title:                  c.Title(),
		Status:                 c.status,
		Duration:               c.duration,
		TurnsRemaining:         c.turnsRemaining,
		LastTurn:               c.lastTurn,
		OfferedTurn:            c.offeredTurn,
		AcceptedTurn:           c.acceptedTurn,
		CompletedWithRemaining: c.completedWithRemaining,
		Progress:               c.progress.clone(),
		Reward:                 c.reward,
		Penalty:                c.penalty,
	}
	if c.claimed != nil {
		claimed := *c.claimed
		st.Claimed = &claimed
	}
	switch req := c.requirement.(type) {
	case CargoRequirement:
		st.Cargo = &req
	case PassengerRequirement:
		st.Passenger = &req
	case SpecialRequirement:
		req.Destinations = slices.Clone(req.Destinations)
		st.Special = &req
	}
	return st
}

// RestoreContract rebuilds a contract from a snapshot
func RestoreContract(st State) (*Contract, error) {
	var req Requirement
	switch st.Kind {
	case KindCargo:
		if st.Cargo != nil {
			req = *st.Cargo
		}
	case KindPassenger:
		if st.Passenger != nil {
			req = *st.Passenger
		}
	case KindSpecial:
		if st.Special != nil {
			req = *st.Special
		}
	}
	if req == nil {
		return nil, fmt.Errorf("contract %s: missing %s requirement", st.ID, st.Kind)
	}

	c, err := NewContract(st.ID, req, st.Duration, st.Reward, st.Penalty, st.OfferedTurn)
	if err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(st.Status)); err != nil {
		return nil, err
	}
	if st.TurnsRemaining < 0 || st.TurnsRemaining > st.Duration {
		return nil, fmt.Errorf("contract %s: turns remaining %d outside [0,%d]", st.ID, st.TurnsRemaining, st.Duration)
	}
	if (st.Status == StatusClaimed) != (st.Claimed != nil) {
		return nil, fmt.Errorf("contract %s: claimed reward inconsistent with status %s", st.ID, st.Status)
	}

	c.status = st.Status
	c.turnsRemaining = st.TurnsRemaining
	c.lastTurn = st.LastTurn
	c.acceptedTurn = st.AcceptedTurn
	c.completedWithRemaining = st.CompletedWithRemaining
	c.progress = st.Progress.clone()
	slices.Sort(c.progress.Visited)
	if st.Claimed != nil {
		claimed := *st.Claimed
		c.claimed = &claimed
	}
	return c, nil
}
