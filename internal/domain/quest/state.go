package quest

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
)

// State is the serializable form of a quest
type State struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Type        Type                  `json:"type"`
	Progress    int                   `json:"progress"`
	Completed   bool                  `json:"completed"`
	Reward      contract.RewardBundle `json:"reward"`
	Cargo       *CargoObjective       `json:"cargo,omitempty"`
	Combat      *CombatObjective      `json:"combat,omitempty"`
	Profit      *ProfitObjective      `json:"profit,omitempty"`
	Exploration *ExplorationObjective `json:"exploration,omitempty"`
	Research    *ResearchObjective    `json:"research,omitempty"`
}

func (q *Quest) Snapshot() State {
	st := State{
		ID:        q.id,
		Name:      q.name,
		Type:      q.Type(),
		Progress:  q.progress,
		Completed: q.completed,
		Reward:    q.reward,
	}
	switch o := q.objective.(type) {
	case CargoObjective:
		st.Cargo = &o
	case CombatObjective:
		st.Combat = &o
	case ProfitObjective:
		st.Profit = &o
	case ExplorationObjective:
		st.Exploration = &o
	case ResearchObjective:
		st.Research = &o
	}
	return st
}

func RestoreQuest(st State) (*Quest, error) {
	var obj Objective
	switch {
	case st.Type == TypeCargo && st.Cargo != nil:
		obj = *st.Cargo
	case st.Type == TypeCombat && st.Combat != nil:
		obj = *st.Combat
	case st.Type == TypeProfit && st.Profit != nil:
		obj = *st.Profit
	case st.Type == TypeExploration && st.Exploration != nil:
		obj = *st.Exploration
	case st.Type == TypeResearch && st.Research != nil:
		obj = *st.Research
	default:
		return nil, fmt.Errorf("quest %s: missing %s objective", st.ID, st.Type)
	}

	q, err := NewQuest(st.ID, st.Name, obj, st.Reward)
	if err != nil {
		return nil, err
	}
	if st.Progress < 0 || st.Progress > obj.Target() {
		return nil, fmt.Errorf("quest %s: progress %d outside [0,%d]", st.ID, st.Progress, obj.Target())
	}
	q.progress = st.Progress
	q.completed = st.Completed
	return q, nil
}
