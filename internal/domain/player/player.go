package player

import "sort"

// Story milestones the obligation engine listens for
const (
	MilestoneSpecialContracts = "special_contracts"
)

// Profile is the non-financial standing of the single player: reputation,
// story progress and the counters quests are evaluated against.
type Profile struct {
	Name            string          `json:"name"`
	Reputation      int             `json:"reputation"`
	PlotPoints      int             `json:"plot_points"`
	ResearchPoints  int             `json:"research_points"`
	TradeProfit     int             `json:"trade_profit"`
	CombatVictories map[string]int  `json:"combat_victories"`
	Discovered      map[string]bool `json:"discovered"`
	Milestones      map[string]bool `json:"milestones"`
}

// NewProfile creates a new profile
func NewProfile(name string) *Profile {
	return &Profile{
		Name:            name,
		CombatVictories: make(map[string]int),
		Discovered:      make(map[string]bool),
		Milestones:      make(map[string]bool),
	}
}

// Rank derives the current rank from reputation
func (p *Profile) Rank() Rank {
	return RankForReputation(p.Reputation)
}

// AdjustReputation applies a gain or loss; reputation never drops below zero
func (p *Profile) AdjustReputation(delta int) {
	p.Reputation += delta
	if p.Reputation < 0 {
		p.Reputation = 0
	}
}

func (p *Profile) AddPlotPoints(n int) {
	p.PlotPoints += n
}

// RecordVictory counts a combat win against an enemy type
func (p *Profile) RecordVictory(enemyType string) {
	p.CombatVictories[enemyType]++
}

// Discover marks a location as visited; returns true the first time
func (p *Profile) Discover(location string) bool {
	if p.Discovered[location] {
		return false
	}
	p.Discovered[location] = true
	return true
}

func (p *Profile) DiscoveredCount() int {
	return len(p.Discovered)
}

// DiscoveredLocations returns visited location names in sorted order
func (p *Profile) DiscoveredLocations() []string {
	out := make([]string, 0, len(p.Discovered))
	for name := range p.Discovered {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ReachMilestone records a story milestone; returns true the first time
func (p *Profile) ReachMilestone(name string) bool {
	if p.Milestones[name] {
		return false
	}
	p.Milestones[name] = true
	return true
}

func (p *Profile) AddResearchPoints(n int) {
	p.ResearchPoints += n
}

// AddTradeProfit accumulates realized profit; losses count against it
func (p *Profile) AddTradeProfit(profit int) {
	p.TradeProfit += profit
}

// Clone returns a deep copy for snapshots
func (p *Profile) Clone() *Profile {
	c := *p
	c.CombatVictories = make(map[string]int, len(p.CombatVictories))
	for k, v := range p.CombatVictories {
		c.CombatVictories[k] = v
	}
	c.Discovered = make(map[string]bool, len(p.Discovered))
	for k, v := range p.Discovered {
		c.Discovered[k] = v
	}
	c.Milestones = make(map[string]bool, len(p.Milestones))
	for k, v := range p.Milestones {
		c.Milestones[k] = v
	}
	return &c
}
