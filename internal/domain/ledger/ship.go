package ledger

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/tax"
)

// Stat identifies an upgradable ship stat
type Stat string

const (
	StatAttack  Stat = "ATTACK"
	StatDefense Stat = "DEFENSE"
	StatSpeed   Stat = "SPEED"
)

// ParseStat parses a stat name (case-sensitive, upper case)
func ParseStat(s string) (Stat, error) {
	switch Stat(s) {
	case StatAttack, StatDefense, StatSpeed:
		return Stat(s), nil
	}
	return "", shared.NewValidationError("stat", fmt.Sprintf("unknown stat %q", s))
}

const MaxDamage = 100

// Ship is the player ship singleton: funds, cargo hold and stats.
//
// Funds and cargo are mutated only through Buy, Sell, Credit, Debit, Repair and
// Upgrade. Every mutation of funds appends one journal entry.
type Ship struct {
	funds     int
	capacity  int
	cargo     map[shared.Commodity]int
	costBasis map[shared.Commodity]int
	attack    int
	defense   int
	speed     int
	damage    int
	journal   []*Transaction
	clock     shared.Clock
}

// NewShip creates an empty ship with starting funds and a cargo capacity
func NewShip(funds, capacity int, clock shared.Clock) (*Ship, error) {
	if funds < 0 {
		return nil, shared.NewValidationError("funds", "cannot be negative")
	}
	if capacity <= 0 {
		return nil, shared.NewValidationError("capacity", "must be positive")
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Ship{
		funds:     funds,
		capacity:  capacity,
		cargo:     make(map[shared.Commodity]int),
		costBasis: make(map[shared.Commodity]int),
		clock:     clock,
	}, nil
}

func (s *Ship) Funds() int    { return s.funds }
func (s *Ship) Capacity() int { return s.capacity }
func (s *Ship) Attack() int   { return s.attack }
func (s *Ship) Defense() int  { return s.defense }
func (s *Ship) Speed() int    { return s.speed }
func (s *Ship) Damage() int   { return s.damage }

// Cargo returns units held of one commodity
func (s *Ship) Cargo(c shared.Commodity) int {
	return s.cargo[c]
}

// CargoUsed returns total units across the hold
func (s *Ship) CargoUsed() int {
	total := 0
	for _, qty := range s.cargo {
		total += qty
	}
	return total
}

// CargoFree returns remaining hold space
func (s *Ship) CargoFree() int {
	return s.capacity - s.CargoUsed()
}

// CostBasis returns the total purchase cost of the units currently held
func (s *Ship) CostBasis(c shared.Commodity) int {
	return s.costBasis[c]
}

// Journal returns a copy of the transaction journal, oldest first
func (s *Ship) Journal() []*Transaction {
	out := make([]*Transaction, len(s.journal))
	copy(out, s.journal)
	return out
}

// Buy loads qty units at unitPrice, paying the taxed cost
func (s *Ship) Buy(c shared.Commodity, qty, unitPrice int, taxRate float64, turn int) (*Transaction, error) {
	if err := validateTrade(c, qty, unitPrice); err != nil {
		return nil, err
	}
	if qty > s.CargoFree() {
		return nil, fmt.Errorf("need %d free units, have %d: %w", qty, s.CargoFree(), shared.ErrCargoCapacityExceeded)
	}

	cost := tax.BuyCost(qty, unitPrice, taxRate)
	if cost > s.funds {
		return nil, shared.NewInsufficientFundsError(cost, s.funds)
	}

	tx, err := s.record(Entry{
		Turn:        turn,
		Type:        TransactionTypePurchaseCargo,
		Amount:      -cost,
		Description: fmt.Sprintf("bought %d %s @ %d", qty, c, unitPrice),
		Commodity:   c,
		Quantity:    qty,
	})
	if err != nil {
		return nil, err
	}
	s.cargo[c] += qty
	s.costBasis[c] += cost
	return tx, nil
}

// Sell unloads qty units at unitPrice and returns the realized profit
// against the average cost basis. The transaction is nil when taxes consume
// the whole proceeds.
func (s *Ship) Sell(c shared.Commodity, qty, unitPrice int, taxRate float64, turn int) (*Transaction, int, error) {
	if err := validateTrade(c, qty, unitPrice); err != nil {
		return nil, 0, err
	}
	held := s.cargo[c]
	if qty > held {
		return nil, 0, shared.NewInsufficientCargoError(c, qty, held)
	}

	proceeds := tax.SellProceeds(qty, unitPrice, taxRate)
	basis := s.costBasis[c] * qty / held
	profit := proceeds - basis

	var tx *Transaction
	if proceeds > 0 {
		var err error
		tx, err = s.record(Entry{
			Turn:        turn,
			Type:        TransactionTypeSellCargo,
			Amount:      proceeds,
			Description: fmt.Sprintf("sold %d %s @ %d", qty, c, unitPrice),
			Commodity:   c,
			Quantity:    qty,
		})
		if err != nil {
			return nil, 0, err
		}
	}

	s.cargo[c] = held - qty
	s.costBasis[c] -= basis
	if s.cargo[c] == 0 {
		delete(s.cargo, c)
		delete(s.costBasis, c)
	}
	return tx, profit, nil
}

// Credit adds reward money
func (s *Ship) Credit(amount int, kind TransactionType, turn int, description, relatedID string) (*Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit of %d: %w", amount, shared.ErrInvalidQuantity)
	}
	return s.record(Entry{
		Turn:            turn,
		Type:            kind,
		Amount:          amount,
		Description:     description,
		RelatedEntityID: relatedID,
	})
}

// Debit pays for infrastructure or maintenance
func (s *Ship) Debit(amount int, kind TransactionType, turn int, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit of %d: %w", amount, shared.ErrInvalidQuantity)
	}
	if amount > s.funds {
		return nil, shared.NewInsufficientFundsError(amount, s.funds)
	}
	return s.record(Entry{
		Turn:        turn,
		Type:        kind,
		Amount:      -amount,
		Description: description,
	})
}

// Repair removes up to points of damage. Returns the points actually repaired.
func (s *Ship) Repair(points, costPerPoint, turn int) (int, error) {
	if points <= 0 {
		return 0, fmt.Errorf("repair of %d points: %w", points, shared.ErrInvalidQuantity)
	}
	if points > s.damage {
		points = s.damage
	}
	if points == 0 {
		return 0, nil
	}
	cost := points * costPerPoint
	if cost > 0 {
		if _, err := s.Debit(cost, TransactionTypeRepair, turn, fmt.Sprintf("repaired %d%% hull", points)); err != nil {
			return 0, err
		}
	}
	s.damage -= points
	return points, nil
}

// Upgrade raises one stat by a level
func (s *Ship) Upgrade(stat Stat, cost, turn int) error {
	if _, err := ParseStat(string(stat)); err != nil {
		return err
	}
	if cost > 0 {
		if _, err := s.Debit(cost, TransactionTypeUpgrade, turn, fmt.Sprintf("upgraded %s", stat)); err != nil {
			return err
		}
	}
	switch stat {
	case StatAttack:
		s.attack++
	case StatDefense:
		s.defense++
	case StatSpeed:
		s.speed++
	}
	return nil
}

// ApplyDamage adds hull damage, saturating at 100%
func (s *Ship) ApplyDamage(points int) {
	if points <= 0 {
		return
	}
	s.damage += points
	if s.damage > MaxDamage {
		s.damage = MaxDamage
	}
}

func (s *Ship) record(e Entry) (*Transaction, error) {
	e.BalanceBefore = s.funds
	tx, err := NewTransaction(e, s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.funds = tx.BalanceAfter()
	s.journal = append(s.journal, tx)
	return tx, nil
}

func validateTrade(c shared.Commodity, qty, unitPrice int) error {
	if !c.IsValid() {
		return fmt.Errorf("%q: %w", c, shared.ErrInvalidCommodity)
	}
	if qty <= 0 {
		return fmt.Errorf("quantity %d: %w", qty, shared.ErrInvalidQuantity)
	}
	if unitPrice <= 0 {
		return shared.NewValidationError("unit_price", "must be positive")
	}
	return nil
}
