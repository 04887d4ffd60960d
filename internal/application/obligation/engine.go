// Package obligation owns every contract and quest of a game and drives their
// state machines from trade events and turn sweeps.
//
// Collections are never mutated while being iterated: each sweep applies its
// observations first, then partitions the active set into a new slice of
// survivors and appends the rest to the finished collection.
package obligation

import (
	"fmt"
	"slices"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/events"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/quest"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Kind distinguishes contract and quest transitions
type Kind string

const (
	KindContract Kind = "CONTRACT"
	KindQuest    Kind = "QUEST"
)

// Quest statuses reported in transitions
const (
	QuestActive    = "ACTIVE"
	QuestCompleted = "COMPLETED"
)

// Transition is one state change for UI notification. Reward is set for quest
// completions (already due); Penalty is the reputation loss of a failed contract.
type Transition struct {
	ID      string
	Kind    Kind
	Title   string
	From    string
	To      string
	Turn    int
	Reward  contract.RewardBundle
	Penalty int
}

// Config tunes the engine
type Config struct {
	ActiveCap       int
	RefreshInterval int
	Generator       contract.GeneratorConfig
}

// DefaultConfig returns a cap of 3 active contracts and a refresh every 5 turns
func DefaultConfig() Config {
	return Config{
		ActiveCap:       3,
		RefreshInterval: 5,
		Generator:       contract.DefaultGeneratorConfig(),
	}
}

// Engine owns the offered, active and finished contracts and the quests.
type Engine struct {
	cfg       Config
	generator *contract.Generator
	state     quest.GameState

	offered  []*contract.Contract
	active   []*contract.Contract
	finished []*contract.Contract

	quests          []*quest.Quest
	completedQuests []*quest.Quest
	announced       map[quest.Key]bool

	specialUnlocked bool
	lastRefresh     int
	refreshed       bool
}

// NewEngine creates an engine. state may be nil, in which case quests are
// never evaluated.
func NewEngine(cfg Config, rng shared.RandomSource, state quest.GameState) *Engine {
	if cfg.ActiveCap <= 0 {
		cfg.ActiveCap = DefaultConfig().ActiveCap
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	return &Engine{
		cfg:       cfg,
		generator: contract.NewGenerator(cfg.Generator, rng),
		state:     state,
		announced: make(map[quest.Key]bool),
	}
}

// BindState sets the game state quests are evaluated against
func (e *Engine) BindState(state quest.GameState) {
	e.state = state
}

func (e *Engine) Config() Config { return e.cfg }

// Accept moves an offered contract into the active collection
func (e *Engine) Accept(id string, turn int) error {
	c, ok := e.find(id)
	if !ok {
		return shared.NewDomainError(shared.ErrContractNotFound, fmt.Sprintf("contract %s not found", id))
	}
	if c.Status() == contract.StatusOffered && len(e.active) >= e.cfg.ActiveCap {
		return shared.NewDomainError(shared.ErrContractCapReached,
			fmt.Sprintf("cannot accept %s: %d of %d contracts active", id, len(e.active), e.cfg.ActiveCap))
	}
	if err := c.Accept(turn); err != nil {
		return err
	}
	e.offered = slices.DeleteFunc(e.offered, func(o *contract.Contract) bool { return o.ID() == id })
	e.active = append(e.active, c)
	return nil
}

// SubmitEvent feeds one event to every active contract, then re-evaluates
// quests. Contracts that finish are moved out of the active collection.
func (e *Engine) SubmitEvent(ev events.TradeEvent) []Transition {
	turn := ev.Header().Turn
	var out []Transition
	for _, c := range e.active {
		if ch := c.Apply(ev); ch.Changed() {
			out = append(out, contractTransition(c, ch, turn))
		}
	}
	e.retainActive()
	return append(out, e.EvaluateQuests(turn)...)
}

// AdvanceTurn is the obligation sweep of a turn: observe the turn on every
// active contract, regenerate offers when due, then evaluate quests.
func (e *Engine) AdvanceTurn(turn int, board contract.Board) []Transition {
	var out []Transition
	for _, c := range e.active {
		if ch := c.ObserveTurn(turn); ch.Changed() {
			out = append(out, contractTransition(c, ch, turn))
		}
	}
	e.retainActive()

	if !e.refreshed || turn-e.lastRefresh >= e.cfg.RefreshInterval {
		e.RegenerateOffers(turn, board)
	}
	return append(out, e.EvaluateQuests(turn)...)
}

// RegenerateOffers replaces the whole offered pool with a new batch. Active
// contracts are untouched.
func (e *Engine) RegenerateOffers(turn int, board contract.Board) {
	e.offered = e.generator.Batch(turn, board, e.specialUnlocked)
	e.lastRefresh = turn
	e.refreshed = true
}

// Offer adds a contract to the offered pool, e.g. one authored by a story
func (e *Engine) Offer(c *contract.Contract) error {
	if c.Status() != contract.StatusOffered {
		return shared.NewDomainError(shared.ErrContractNotOffered, fmt.Sprintf("contract %s is %s", c.ID(), c.Status()))
	}
	if _, exists := e.find(c.ID()); exists {
		return fmt.Errorf("contract %s already tracked", c.ID())
	}
	e.offered = append(e.offered, c)
	return nil
}

// Claim pays out a completed contract once
func (e *Engine) Claim(id string) (contract.RewardBundle, error) {
	c, ok := e.find(id)
	if !ok {
		return contract.RewardBundle{}, shared.NewDomainError(shared.ErrContractNotFound, fmt.Sprintf("contract %s not found", id))
	}
	return c.Claim()
}

// UnlockSpecialContracts lets future batches include special contracts
func (e *Engine) UnlockSpecialContracts() {
	e.specialUnlocked = true
}

func (e *Engine) SpecialUnlocked() bool { return e.specialUnlocked }

// AddQuest starts tracking a quest unless one with the same (name, type) is active
func (e *Engine) AddQuest(q *quest.Quest) error {
	key := q.Key()
	for _, existing := range e.quests {
		if existing.Key() == key {
			return shared.NewDomainError(shared.ErrQuestAlreadyActive,
				fmt.Sprintf("quest %q (%s) already active", key.Name, key.Type))
		}
	}
	e.quests = append(e.quests, q)
	return nil
}

// ShouldAnnounce returns true the first time a logical quest is announced
func (e *Engine) ShouldAnnounce(key quest.Key) bool {
	if e.announced[key] {
		return false
	}
	e.announced[key] = true
	return true
}

// EvaluateQuests checks every active quest against game state. Completed
// quests carry their reward in the transition and leave the active set.
func (e *Engine) EvaluateQuests(turn int) []Transition {
	if e.state == nil || len(e.quests) == 0 {
		return nil
	}
	var out []Transition
	for _, q := range e.quests {
		if q.Evaluate(e.state) {
			out = append(out, Transition{
				ID:     q.ID(),
				Kind:   KindQuest,
				Title:  q.Name(),
				From:   QuestActive,
				To:     QuestCompleted,
				Turn:   turn,
				Reward: q.Reward(),
			})
		}
	}

	var remaining []*quest.Quest
	for _, q := range e.quests {
		if q.IsCompleted() {
			e.completedQuests = append(e.completedQuests, q)
		} else {
			remaining = append(remaining, q)
		}
	}
	e.quests = remaining
	return out
}

// Read-only views. Callers receive snapshots, never the tracked objects.

func (e *Engine) Offered() []contract.State  { return snapshots(e.offered) }
func (e *Engine) Active() []contract.State   { return snapshots(e.active) }
func (e *Engine) Finished() []contract.State { return snapshots(e.finished) }
func (e *Engine) ActiveCount() int           { return len(e.active) }

// Contract returns one contract's snapshot
func (e *Engine) Contract(id string) (contract.State, bool) {
	c, ok := e.find(id)
	if !ok {
		return contract.State{}, false
	}
	return c.Snapshot(), true
}

// PreviewReward returns the reward a claim would pay now
func (e *Engine) PreviewReward(id string) (contract.RewardBundle, contract.Bonuses, error) {
	c, ok := e.find(id)
	if !ok {
		return contract.RewardBundle{}, contract.Bonuses{}, shared.NewDomainError(shared.ErrContractNotFound, fmt.Sprintf("contract %s not found", id))
	}
	reward, bonuses := c.FinalReward()
	return reward, bonuses, nil
}

// Evaluate estimates a contract's profitability at current prices
func (e *Engine) Evaluate(id string, ctx contract.ProfitabilityContext) (*contract.ProfitabilityEvaluation, error) {
	c, ok := e.find(id)
	if !ok {
		return nil, shared.NewDomainError(shared.ErrContractNotFound, fmt.Sprintf("contract %s not found", id))
	}
	return contract.NewContractProfitabilityService().EvaluateProfitability(c, ctx)
}

func (e *Engine) Quests() []quest.State          { return questSnapshots(e.quests) }
func (e *Engine) CompletedQuests() []quest.State { return questSnapshots(e.completedQuests) }

func (e *Engine) find(id string) (*contract.Contract, bool) {
	for _, set := range [][]*contract.Contract{e.offered, e.active, e.finished} {
		for _, c := range set {
			if c.ID() == id {
				return c, true
			}
		}
	}
	return nil, false
}

func (e *Engine) retainActive() {
	var keep []*contract.Contract
	for _, c := range e.active {
		if c.Status() == contract.StatusActive {
			keep = append(keep, c)
		} else {
			e.finished = append(e.finished, c)
		}
	}
	e.active = keep
}

func contractTransition(c *contract.Contract, ch contract.Change, turn int) Transition {
	t := Transition{
		ID:    c.ID(),
		Kind:  KindContract,
		Title: c.Title(),
		From:  ch.From.String(),
		To:    ch.To.String(),
		Turn:  turn,
	}
	if ch.To == contract.StatusFailed {
		t.Penalty = c.Penalty()
	}
	return t
}

func snapshots(cs []*contract.Contract) []contract.State {
	out := make([]contract.State, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Snapshot())
	}
	return out
}

func questSnapshots(qs []*quest.Quest) []quest.State {
	out := make([]quest.State, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Snapshot())
	}
	return out
}
