// Package quest holds single-objective obligations. A quest is ACTIVE until
// its predicate over game state reaches the target, then COMPLETED with its
// reward granted at once. There is no claim step.
package quest

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

type Quest struct {
	id        string
	name      string
	objective Objective
	progress  int
	completed bool
	reward    contract.RewardBundle
}

func NewQuest(id, name string, objective Objective, reward contract.RewardBundle) (*Quest, error) {
	if id == "" {
		return nil, fmt.Errorf("quest ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if objective == nil {
		return nil, fmt.Errorf("quest objective cannot be nil")
	}
	if objective.Target() <= 0 {
		return nil, shared.NewValidationError("target", "must be positive")
	}
	return &Quest{id: id, name: name, objective: objective, reward: reward}, nil
}

func (q *Quest) ID() string                    { return q.id }
func (q *Quest) Name() string                  { return q.name }
func (q *Quest) Type() Type                    { return q.objective.Type() }
func (q *Quest) Objective() Objective          { return q.objective }
func (q *Quest) Progress() int                 { return q.progress }
func (q *Quest) Target() int                   { return q.objective.Target() }
func (q *Quest) IsCompleted() bool             { return q.completed }
func (q *Quest) Reward() contract.RewardBundle { return q.reward }

// Key identifies the logical quest for duplicate suppression
func (q *Quest) Key() Key {
	return Key{Name: q.name, Type: q.objective.Type()}
}

// Key is the (name, type) pair
type Key struct {
	Name string
	Type Type
}

// Evaluate updates progress from game state and reports whether this call
// completed the quest. Progress never decreases; a completed quest is left
// untouched.
func (q *Quest) Evaluate(state GameState) bool {
	if q.completed {
		return false
	}
	measured := min(q.objective.Measure(state), q.objective.Target())
	if measured > q.progress {
		q.progress = measured
	}
	if q.progress >= q.objective.Target() {
		q.completed = true
		return true
	}
	return false
}

func (q *Quest) String() string {
	return fmt.Sprintf("Quest[%s, %s, %d/%d]", q.name, q.Type(), q.progress, q.Target())
}
