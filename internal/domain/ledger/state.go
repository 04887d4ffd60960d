package ledger

import (
	"time"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// TransactionState is the serializable form of one journal entry
type TransactionState struct {
	ID              string           `json:"id"`
	Turn            int              `json:"turn"`
	Timestamp       time.Time        `json:"timestamp"`
	Type            TransactionType  `json:"type"`
	Amount          int              `json:"amount"`
	BalanceBefore   int              `json:"balance_before"`
	BalanceAfter    int              `json:"balance_after"`
	Description     string           `json:"description,omitempty"`
	Commodity       shared.Commodity `json:"commodity,omitempty"`
	Quantity        int              `json:"quantity,omitempty"`
	RelatedEntityID string           `json:"related_entity_id,omitempty"`
}

// State is the serializable form of a ship, counters stored verbatim
type State struct {
	Funds     int                      `json:"funds"`
	Capacity  int                      `json:"capacity"`
	Cargo     map[shared.Commodity]int `json:"cargo"`
	CostBasis map[shared.Commodity]int `json:"cost_basis"`
	Attack    int                      `json:"attack"`
	Defense   int                      `json:"defense"`
	Speed     int                      `json:"speed"`
	Damage    int                      `json:"damage"`
	Journal   []TransactionState       `json:"journal"`
}

// ToState converts a transaction to its serializable form
func (t *Transaction) ToState() TransactionState {
	return TransactionState{
		ID:              t.id.String(),
		Turn:            t.turn,
		Timestamp:       t.timestamp,
		Type:            t.transactionType,
		Amount:          t.amount,
		BalanceBefore:   t.balanceBefore,
		BalanceAfter:    t.balanceAfter,
		Description:     t.description,
		Commodity:       t.commodity,
		Quantity:        t.quantity,
		RelatedEntityID: t.relatedEntityID,
	}
}

// TransactionFromState rebuilds a journal entry, rejecting corrupted balances
func TransactionFromState(st TransactionState) (*Transaction, error) {
	id, err := ParseTransactionID(st.ID)
	if err != nil {
		return nil, err
	}
	tx := ReconstructTransaction(id, Entry{
		Turn:            st.Turn,
		Type:            st.Type,
		Amount:          st.Amount,
		BalanceBefore:   st.BalanceBefore,
		Description:     st.Description,
		Commodity:       st.Commodity,
		Quantity:        st.Quantity,
		RelatedEntityID: st.RelatedEntityID,
	}, st.BalanceAfter, st.Timestamp)
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Snapshot returns the ship's state
func (s *Ship) Snapshot() State {
	st := State{
		Funds:     s.funds,
		Capacity:  s.capacity,
		Cargo:     make(map[shared.Commodity]int, len(s.cargo)),
		CostBasis: make(map[shared.Commodity]int, len(s.costBasis)),
		Attack:    s.attack,
		Defense:   s.defense,
		Speed:     s.speed,
		Damage:    s.damage,
		Journal:   make([]TransactionState, 0, len(s.journal)),
	}
	for c, q := range s.cargo {
		st.Cargo[c] = q
	}
	for c, b := range s.costBasis {
		st.CostBasis[c] = b
	}
	for _, tx := range s.journal {
		st.Journal = append(st.Journal, tx.ToState())
	}
	return st
}

// RestoreShip rebuilds a ship from a snapshot
func RestoreShip(st State, clock shared.Clock) (*Ship, error) {
	ship, err := NewShip(st.Funds, st.Capacity, clock)
	if err != nil {
		return nil, err
	}
	if st.Damage < 0 || st.Damage > MaxDamage {
		return nil, shared.NewValidationError("damage", "must be within [0,100]")
	}
	for c, q := range st.Cargo {
		if !c.IsValid() || q < 0 {
			return nil, shared.NewValidationError("cargo", "invalid cargo entry for "+string(c))
		}
		if q > 0 {
			ship.cargo[c] = q
		}
	}
	if ship.CargoUsed() > ship.capacity {
		return nil, shared.NewValidationError("cargo", "exceeds capacity")
	}
	for c, b := range st.CostBasis {
		if ship.cargo[c] > 0 {
			ship.costBasis[c] = b
		}
	}
	ship.attack, ship.defense, ship.speed, ship.damage = st.Attack, st.Defense, st.Speed, st.Damage
	for _, ts := range st.Journal {
		tx, err := TransactionFromState(ts)
		if err != nil {
			return nil, err
		}
		ship.journal = append(ship.journal, tx)
	}
	return ship, nil
}
