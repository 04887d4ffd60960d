package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/obligation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/quest"
	"github.com/andrescamacho/spacetraders-economy/pkg/utils"
)

// DeliverPassengersCommand reports passengers dropped off at the docked location
type DeliverPassengersCommand struct {
	Count        int
	ClassCode    string
	Satisfaction int
}

// StartQuestCommand registers a new quest with the obligation engine.
// Subject is the commodity of a cargo quest or the enemy type of a combat quest.
type StartQuestCommand struct {
	Name       string
	Type       string
	Subject    string
	Target     int
	Money      int
	Reputation int
	PlotPoints int
}

// StartQuestResponse carries the new quest and anything it completed at once
type StartQuestResponse struct {
	QuestID     string
	Announce    bool
	Transitions []obligation.Transition
}

// RecordCombatVictoryCommand reports a won fight
type RecordCombatVictoryCommand struct {
	EnemyType string
}

// AddResearchCommand reports research progress
type AddResearchCommand struct {
	Points int
}

// ReachMilestoneCommand records a story milestone
type ReachMilestoneCommand struct {
	Name string
}

// ReachMilestoneResponse reports whether the milestone was new
type ReachMilestoneResponse struct {
	Name  string
	First bool
}

// ProgressResponse lists the obligation transitions a report caused
type ProgressResponse struct {
	Transitions []obligation.Transition
}

// ProgressHandler handles player progress reported by collaborators outside
// the economy core: passengers, quests, combat, research and milestones.
type ProgressHandler struct {
	games GameProvider
	newID func(name string) string
}

func NewProgressHandler(games GameProvider) *ProgressHandler {
	return &ProgressHandler{games: games, newID: questID}
}

func (h *ProgressHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	game := h.games.Game()
	switch cmd := request.(type) {
	case *DeliverPassengersCommand:
		transitions, err := game.DeliverPassengers(ctx, cmd.Count, cmd.ClassCode, cmd.Satisfaction)
		if err != nil {
			return nil, err
		}
		return &ProgressResponse{Transitions: transitions}, nil
	case *StartQuestCommand:
		return h.startQuest(ctx, cmd)
	case *RecordCombatVictoryCommand:
		if cmd.EnemyType == "" {
			return nil, fmt.Errorf("enemy type cannot be empty")
		}
		return &ProgressResponse{Transitions: game.RecordCombatVictory(ctx, cmd.EnemyType)}, nil
	case *AddResearchCommand:
		if cmd.Points <= 0 {
			return nil, fmt.Errorf("research points must be positive, got %d", cmd.Points)
		}
		return &ProgressResponse{Transitions: game.AddResearchPoints(ctx, cmd.Points)}, nil
	case *ReachMilestoneCommand:
		if cmd.Name == "" {
			return nil, fmt.Errorf("milestone name cannot be empty")
		}
		return &ReachMilestoneResponse{Name: cmd.Name, First: game.ReachMilestone(ctx, cmd.Name)}, nil
	}
	return nil, fmt.Errorf("invalid request type for progress handler: %T", request)
}

func (h *ProgressHandler) startQuest(ctx context.Context, cmd *StartQuestCommand) (*StartQuestResponse, error) {
	t, err := quest.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}
	objective, err := quest.NewObjective(t, cmd.Subject, cmd.Target)
	if err != nil {
		return nil, err
	}
	reward := contract.RewardBundle{Money: cmd.Money, Reputation: cmd.Reputation, PlotPoints: cmd.PlotPoints}
	q, err := quest.NewQuest(h.newID(cmd.Name), cmd.Name, objective, reward)
	if err != nil {
		return nil, err
	}

	announce, transitions, err := h.games.Game().AddQuest(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to start quest %q: %w", cmd.Name, err)
	}
	return &StartQuestResponse{QuestID: q.ID(), Announce: announce, Transitions: transitions}, nil
}

func questID(name string) string {
	return utils.GenerateID("quest", name)
}
