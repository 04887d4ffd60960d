package obligation

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/quest"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// State is the serializable form of the engine
type State struct {
	Offered         []contract.State `json:"offered"`
	Active          []contract.State `json:"active"`
	Finished        []contract.State `json:"finished"`
	Quests          []quest.State    `json:"quests"`
	CompletedQuests []quest.State    `json:"completed_quests"`
	Announced       []quest.Key      `json:"announced"`
	SpecialUnlocked bool             `json:"special_unlocked"`
	LastRefresh     int              `json:"last_refresh"`
	Refreshed       bool             `json:"refreshed"`
}

// Snapshot returns the engine's state
func (e *Engine) Snapshot() State {
	st := State{
		Offered:         e.Offered(),
		Active:          e.Active(),
		Finished:        e.Finished(),
		Quests:          e.Quests(),
		CompletedQuests: e.CompletedQuests(),
		SpecialUnlocked: e.specialUnlocked,
		LastRefresh:     e.lastRefresh,
		Refreshed:       e.refreshed,
	}
	for key := range e.announced {
		st.Announced = append(st.Announced, key)
	}
	sort.Slice(st.Announced, func(i, j int) bool {
		if st.Announced[i].Name != st.Announced[j].Name {
			return st.Announced[i].Name < st.Announced[j].Name
		}
		return st.Announced[i].Type < st.Announced[j].Type
	})
	return st
}

// RestoreEngine rebuilds an engine from a snapshot
func RestoreEngine(st State, cfg Config, rng shared.RandomSource, state quest.GameState) (*Engine, error) {
	e := NewEngine(cfg, rng, state)

	var err error
	if e.offered, err = restoreContracts(st.Offered, contract.StatusOffered); err != nil {
		return nil, err
	}
	if e.active, err = restoreContracts(st.Active, contract.StatusActive); err != nil {
		return nil, err
	}
	if e.finished, err = restoreContracts(st.Finished); err != nil {
		return nil, err
	}
	for _, c := range e.finished {
		if !c.Status().IsTerminal() {
			return nil, fmt.Errorf("finished contract %s has status %s", c.ID(), c.Status())
		}
	}

	for _, qs := range st.Quests {
		q, err := quest.RestoreQuest(qs)
		if err != nil {
			return nil, err
		}
		e.quests = append(e.quests, q)
	}
	for _, qs := range st.CompletedQuests {
		q, err := quest.RestoreQuest(qs)
		if err != nil {
			return nil, err
		}
		e.completedQuests = append(e.completedQuests, q)
	}
	for _, key := range st.Announced {
		e.announced[key] = true
	}
	e.specialUnlocked = st.SpecialUnlocked
	e.lastRefresh = st.LastRefresh
	e.refreshed = st.Refreshed
	return e, nil
}

func restoreContracts(states []contract.State, want ...contract.Status) ([]*contract.Contract, error) {
	out := make([]*contract.Contract, 0, len(states))
	for _, s := range states {
		c, err := contract.RestoreContract(s)
		if err != nil {
			return nil, err
		}
		if len(want) > 0 && c.Status() != want[0] {
			return nil, fmt.Errorf("contract %s has status %s, expected %s", c.ID(), c.Status(), want[0])
		}
		out = append(out, c)
	}
	return out, nil
}
