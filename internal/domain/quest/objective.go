package quest

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Type determines which game-state predicate drives a quest
type Type string

const (
	TypeCargo       Type = "CARGO"
	TypeCombat      Type = "COMBAT"
	TypeProfit      Type = "PROFIT"
	TypeExploration Type = "EXPLORATION"
	TypeResearch    Type = "RESEARCH"
)

// GameState is the read-only view quests are evaluated against
type GameState interface {
	CargoUnits(c shared.Commodity) int
	CombatVictories(enemyType string) int
	TradeProfit() int
	DiscoveredLocations() int
	ResearchPoints() int
}

// Objective is the closed set of quest objectives
type Objective interface {
	Type() Type
	Target() int
	Measure(s GameState) int
	Describe() string
	objective()
}

// CargoObjective: hold Units of Commodity
type CargoObjective struct {
	Commodity shared.Commodity `json:"commodity"`
	Units     int              `json:"units"`
}

func (CargoObjective) Type() Type                { return TypeCargo }
func (o CargoObjective) Target() int             { return o.Units }
func (o CargoObjective) Measure(s GameState) int { return s.CargoUnits(o.Commodity) }
func (CargoObjective) objective()                {}
func (o CargoObjective) Describe() string {
	return fmt.Sprintf("Hold %d units of %s", o.Units, o.Commodity)
}

// CombatObjective: win Victories fights against EnemyType
type CombatObjective struct {
	EnemyType string `json:"enemy_type"`
	Victories int    `json:"victories"`
}

func (CombatObjective) Type() Type                { return TypeCombat }
func (o CombatObjective) Target() int             { return o.Victories }
func (o CombatObjective) Measure(s GameState) int { return s.CombatVictories(o.EnemyType) }
func (CombatObjective) objective()                {}
func (o CombatObjective) Describe() string {
	return fmt.Sprintf("Defeat %d %s", o.Victories, o.EnemyType)
}

// ProfitObjective: accumulate Credits of trade profit
type ProfitObjective struct {
	Credits int `json:"credits"`
}

func (ProfitObjective) Type() Type                { return TypeProfit }
func (o ProfitObjective) Target() int             { return o.Credits }
func (o ProfitObjective) Measure(s GameState) int { return s.TradeProfit() }
func (ProfitObjective) objective()                {}
func (o ProfitObjective) Describe() string {
	return fmt.Sprintf("Earn %d credits of trade profit", o.Credits)
}

// ExplorationObjective: discover Locations locations
type ExplorationObjective struct {
	Locations int `json:"locations"`
}

func (ExplorationObjective) Type() Type                { return TypeExploration }
func (o ExplorationObjective) Target() int             { return o.Locations }
func (o ExplorationObjective) Measure(s GameState) int { return s.DiscoveredLocations() }
func (ExplorationObjective) objective()                {}
func (o ExplorationObjective) Describe() string {
	return fmt.Sprintf("Discover %d locations", o.Locations)
}

// ResearchObjective: accumulate Points research points
type ResearchObjective struct {
	Points int `json:"points"`
}

func (ResearchObjective) Type() Type                { return TypeResearch }
func (o ResearchObjective) Target() int             { return o.Points }
func (o ResearchObjective) Measure(s GameState) int { return s.ResearchPoints() }
func (ResearchObjective) objective()                {}
func (o ResearchObjective) Describe() string {
	return fmt.Sprintf("Collect %d research points", o.Points)
}

// ParseType parses a quest type, case-insensitive
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(s)); t {
	case TypeCargo, TypeCombat, TypeProfit, TypeExploration, TypeResearch:
		return t, nil
	}
	return "", fmt.Errorf("unknown quest type: %s", s)
}

// NewObjective builds the objective of type t. subject is the commodity for
// cargo quests and the enemy type for combat quests; other types ignore it.
func NewObjective(t Type, subject string, target int) (Objective, error) {
	if target <= 0 {
		return nil, shared.NewValidationError("target", "must be positive")
	}
	switch t {
	case TypeCargo:
		c, err := shared.ParseCommodity(subject)
		if err != nil {
			return nil, err
		}
		return CargoObjective{Commodity: c, Units: target}, nil
	case TypeCombat:
		if subject == "" {
			return nil, shared.NewValidationError("enemy_type", "cannot be empty")
		}
		return CombatObjective{EnemyType: subject, Victories: target}, nil
	case TypeProfit:
		return ProfitObjective{Credits: target}, nil
	case TypeExploration:
		return ExplorationObjective{Locations: target}, nil
	case TypeResearch:
		return ResearchObjective{Points: target}, nil
	}
	return nil, fmt.Errorf("unknown quest type: %s", t)
}
