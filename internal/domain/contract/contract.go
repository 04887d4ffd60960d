package contract

import (
	"fmt"
	"slices"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/events"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Progress is the forward-only delivery record of a contract
type Progress struct {
	Delivered       int      `json:"delivered"`
	Passengers      int      `json:"passengers"`
	SatisfactionSum int      `json:"satisfaction_sum"`
	SourceVisited   bool     `json:"source_visited"`
	Visited         []string `json:"visited,omitempty"`
}

func (p Progress) clone() Progress {
	p.Visited = slices.Clone(p.Visited)
	return p
}

func (p *Progress) visit(location string) {
	if i, found := slices.BinarySearch(p.Visited, location); !found {
		p.Visited = slices.Insert(p.Visited, i, location)
	}
}

// Change is the status before and after applying an observation
type Change struct {
	From Status
	To   Status
}

// Changed reports whether the contract moved to a new state
func (c Change) Changed() bool {
	return c.From != c.To
}

// Contract is a time-limited, event-driven obligation.
//
// Lifecycle: OFFERED -> ACTIVE -> {COMPLETED | FAILED}, COMPLETED -> CLAIMED.
// turnsRemaining decrements at most once per distinct turn carried by an
// event while ACTIVE, the acceptance turn included. Independently, the
// contract fails once the turn sweep reaches acceptedTurn+duration.
// Progress only moves forward and is frozen once terminal.
type Contract struct {
	id                     string
	requirement            Requirement
	duration               int
	turnsRemaining         int
	lastTurn               int
	offeredTurn            int
	acceptedTurn           int
	status                 Status
	progress               Progress
	reward                 RewardBundle
	penalty                int
	completedWithRemaining int
	claimed                *RewardBundle
}

// NewContract creates an offered contract
func NewContract(id string, req Requirement, duration int, reward RewardBundle, penalty int, offeredTurn int) (*Contract, error) {
	if id == "" {
		return nil, fmt.Errorf("contract ID cannot be empty")
	}
	if req == nil {
		return nil, fmt.Errorf("contract requirement cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("contract %s: %w", id, err)
	}
	if duration <= 0 {
		return nil, shared.NewValidationError("duration", "must be positive")
	}
	if reward.Money < 0 || reward.Reputation < 0 || reward.PlotPoints < 0 {
		return nil, shared.NewValidationError("reward", "cannot be negative")
	}
	if penalty < 0 {
		return nil, shared.NewValidationError("penalty", "cannot be negative")
	}

	return &Contract{
		id:             id,
		requirement:    req,
		duration:       duration,
		turnsRemaining: duration,
		lastTurn:       offeredTurn,
		offeredTurn:    offeredTurn,
		status:         StatusOffered,
		reward:         reward,
		penalty:        penalty,
	}, nil
}

func (c *Contract) ID() string               { return c.id }
func (c *Contract) Kind() Kind               { return c.requirement.Kind() }
func (c *Contract) Title() string            { return c.requirement.Describe() }
func (c *Contract) Requirement() Requirement { return c.requirement }
func (c *Contract) Duration() int            { return c.duration }
func (c *Contract) TurnsRemaining() int      { return c.turnsRemaining }
func (c *Contract) LastObservedTurn() int    { return c.lastTurn }
func (c *Contract) OfferedTurn() int         { return c.offeredTurn }
func (c *Contract) AcceptedTurn() int        { return c.acceptedTurn }
func (c *Contract) Status() Status           { return c.status }
func (c *Contract) Progress() Progress       { return c.progress.clone() }
func (c *Contract) Reward() RewardBundle     { return c.reward }
func (c *Contract) Penalty() int             { return c.penalty }

// ClaimedReward returns the paid-out reward once claimed
func (c *Contract) ClaimedReward() (RewardBundle, bool) {
	if c.claimed == nil {
		return RewardBundle{}, false
	}
	return *c.claimed, true
}

// Deadline is the first turn on which the sweep fails an unfinished contract
func (c *Contract) Deadline() int {
	return c.acceptedTurn + c.duration
}

// Accept starts the clock. Events on the acceptance turn still count it.
func (c *Contract) Accept(turn int) error {
	switch c.status {
	case StatusOffered:
	case StatusCompleted, StatusClaimed:
		return shared.NewDomainError(shared.ErrContractAlreadyCompleted, fmt.Sprintf("contract %s already completed", c.id))
	case StatusFailed:
		return shared.NewDomainError(shared.ErrContractExpired, fmt.Sprintf("contract %s expired", c.id))
	default:
		return shared.NewDomainError(shared.ErrContractNotOffered, fmt.Sprintf("contract %s is %s", c.id, c.status))
	}
	c.acceptedTurn = turn
	c.lastTurn = turn - 1
	c.transition(StatusActive)
	return nil
}

// ObserveTurn is the per-turn sweep. It leaves the counter to events and
// only fails the contract once the deadline turn is reached.
func (c *Contract) ObserveTurn(turn int) Change {
	from := c.status
	if c.status != StatusActive {
		return Change{From: from, To: from}
	}
	if turn >= c.Deadline() {
		c.turnsRemaining = 0
	}
	c.settle()
	return Change{From: from, To: c.status}
}

// Apply observes the event's turn, then folds the event into progress, then
// checks completion. Failure is only declared if the event did not complete
// the contract.
func (c *Contract) Apply(e events.TradeEvent) Change {
	from := c.status
	if c.status != StatusActive {
		return Change{From: from, To: from}
	}
	c.tick(e.Header().Turn)
	c.advance(e)
	c.settle()
	return Change{From: from, To: c.status}
}

// Claim pays out a completed contract exactly once
func (c *Contract) Claim() (RewardBundle, error) {
	switch c.status {
	case StatusCompleted:
	case StatusClaimed:
		return RewardBundle{}, shared.NewDomainError(shared.ErrContractAlreadyClaimed,
			fmt.Sprintf("contract %s: rewards already claimed", c.id))
	case StatusFailed:
		return RewardBundle{}, shared.NewDomainError(shared.ErrContractExpired,
			fmt.Sprintf("contract %s expired before completion", c.id))
	default:
		return RewardBundle{}, shared.NewDomainError(shared.ErrContractNotCompleted,
			fmt.Sprintf("contract %s is %s", c.id, c.status))
	}

	reward, _ := c.FinalReward()
	c.claimed = &reward
	c.transition(StatusClaimed)
	return reward, nil
}

// IsSatisfied reports whether the requirement is currently met
func (c *Contract) IsSatisfied() bool {
	switch req := c.requirement.(type) {
	case CargoRequirement:
		return c.progress.SourceVisited && c.progress.Delivered >= req.Amount
	case PassengerRequirement:
		return c.progress.Passengers >= req.Count
	case SpecialRequirement:
		if !c.progress.SourceVisited || c.progress.Delivered < req.Amount {
			return false
		}
		for _, d := range req.Destinations {
			if _, found := slices.BinarySearch(c.progress.Visited, d); !found {
				return false
			}
		}
		return true
	}
	return false
}

func (c *Contract) tick(turn int) {
	if turn <= c.lastTurn {
		return
	}
	c.lastTurn = turn
	if c.turnsRemaining > 0 {
		c.turnsRemaining--
	}
}

func (c *Contract) settle() {
	if c.IsSatisfied() {
		c.completedWithRemaining = c.turnsRemaining
		c.transition(StatusCompleted)
		return
	}
	if c.turnsRemaining == 0 {
		c.transition(StatusFailed)
	}
}

func (c *Contract) advance(e events.TradeEvent) {
	switch req := c.requirement.(type) {
	case CargoRequirement:
		switch ev := e.(type) {
		case events.BuyEvent:
			if ev.Location == req.Source && ev.Commodity == req.Commodity {
				c.progress.SourceVisited = true
			}
		case events.SellEvent:
			if c.progress.SourceVisited && ev.Location == req.Destination && ev.Commodity == req.Commodity {
				c.progress.Delivered += ev.Amount
			}
		}
	case PassengerRequirement:
		if ev, ok := e.(events.PassengerDeliveryEvent); ok && req.Accepts(ev.Location, ev.ClassCode, ev.Satisfaction) {
			c.progress.Passengers += ev.Count
			c.progress.SatisfactionSum += ev.Satisfaction * ev.Count
			c.progress.visit(ev.Location)
		}
	case SpecialRequirement:
		switch ev := e.(type) {
		case events.BuyEvent:
			if ev.Location == req.Source && ev.Commodity == req.Commodity {
				c.progress.SourceVisited = true
			}
		case events.SellEvent:
			if c.progress.SourceVisited && req.IsDestination(ev.Location) && ev.Commodity == req.Commodity {
				c.progress.Delivered += ev.Amount
				c.progress.visit(ev.Location)
			}
		case events.TravelEvent:
			if req.IsDestination(ev.Location) {
				c.progress.visit(ev.Location)
			}
		}
	}
}

var allowedTransitions = map[Status][]Status{
	StatusOffered:   {StatusActive},
	StatusActive:    {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusClaimed},
}

func (c *Contract) transition(to Status) {
	if !slices.Contains(allowedTransitions[c.status], to) {
		shared.InvariantViolation("contract %s cannot move from %s to %s", c.id, c.status, to)
	}
	c.status = to
}

func (c *Contract) String() string {
	return fmt.Sprintf("Contract[%s, %s, %s, %d/%d turns]", c.id, c.Kind(), c.status, c.turnsRemaining, c.duration)
}
