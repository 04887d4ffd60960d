package simulation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/obligation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/events"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/production"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/quest"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/tax"
)

// TradeResult describes a completed buy or sell
type TradeResult struct {
	Transaction *ledger.Transaction
	Commodity   shared.Commodity
	Quantity    int
	UnitPrice   int
	TaxRate     float64
	Profit      int
	Transitions []obligation.Transition
}

// TaxRate is the rate a trade at the current location would pay right now
func (g *Game) TaxRate() float64 {
	return tax.RateAt(g.profile.Rank(), g.Here())
}

// Buy purchases cargo at the current location
func (g *Game) Buy(ctx context.Context, c shared.Commodity, qty int) (*TradeResult, error) {
	return g.trade(ctx, market.SideBuy, c, qty)
}

// Sell sells cargo at the current location
func (g *Game) Sell(ctx context.Context, c shared.Commodity, qty int) (*TradeResult, error) {
	return g.trade(ctx, market.SideSell, c, qty)
}

func (g *Game) trade(ctx context.Context, side market.Side, c shared.Commodity, qty int) (*TradeResult, error) {
	loc := g.Here()
	m := loc.Market()
	if err := m.TradeCheck(c); err != nil {
		return nil, err
	}
	price, err := m.Price(c)
	if err != nil {
		return nil, err
	}
	// rank and buildings may have changed since the last trade
	rate := tax.RateAt(g.profile.Rank(), loc)

	result := &TradeResult{Commodity: c, Quantity: qty, UnitPrice: price, TaxRate: rate}
	var ev events.TradeEvent
	meta := events.Meta{Location: loc.Name(), Turn: g.turn}

	switch side {
	case market.SideBuy:
		tx, err := g.ship.Buy(c, qty, price, rate, g.turn)
		if err != nil {
			return nil, err
		}
		result.Transaction = tx
		ev = events.BuyEvent{Meta: meta, Commodity: c, Amount: qty}
		g.metrics.RecordTrade(loc.Name(), c.String(), string(side), qty, -tx.Amount())
	case market.SideSell:
		tx, profit, err := g.ship.Sell(c, qty, price, rate, g.turn)
		if err != nil {
			return nil, err
		}
		result.Transaction = tx
		result.Profit = profit
		g.profile.AddTradeProfit(profit)
		ev = events.SellEvent{Meta: meta, Commodity: c, Amount: qty}
		credits := 0
		if tx != nil {
			credits = tx.Amount()
		}
		g.metrics.RecordTrade(loc.Name(), c.String(), string(side), qty, credits)
	default:
		return nil, fmt.Errorf("unknown trade side %q", side)
	}

	g.metrics.RecordFunds(g.ship.Funds())
	result.Transitions = g.emit(ctx, ev)
	return result, nil
}

// TravelResult describes an arrival
type TravelResult struct {
	From        string
	To          string
	FirstVisit  bool
	Transitions []obligation.Transition
}

// Travel moves the ship to another location
func (g *Game) Travel(ctx context.Context, destination string) (*TravelResult, error) {
	if _, err := g.Location(destination); err != nil {
		return nil, err
	}
	if destination == g.current {
		return nil, shared.NewValidationError("destination", "already docked at "+destination)
	}
	from := g.current
	g.current = destination
	first := g.profile.Discover(destination)

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "travelled", map[string]interface{}{
		"from": from,
		"to":   destination,
		"turn": g.turn,
	})
	transitions := g.emit(ctx, events.TravelEvent{
		Meta: events.Meta{Location: destination, Turn: g.turn},
		From: from,
	})
	return &TravelResult{From: from, To: destination, FirstVisit: first, Transitions: transitions}, nil
}

// DeliverPassengers disembarks passengers at the current location
func (g *Game) DeliverPassengers(ctx context.Context, count int, classCode string, satisfaction int) ([]obligation.Transition, error) {
	ev := events.PassengerDeliveryEvent{
		Meta:         events.Meta{Location: g.current, Turn: g.turn},
		Count:        count,
		ClassCode:    classCode,
		Satisfaction: satisfaction,
	}
	if err := events.Validate(ev); err != nil {
		return nil, err
	}
	return g.emit(ctx, ev), nil
}

// Discover surveys the current location for a mined resource
func (g *Game) Discover(ctx context.Context, resource shared.Commodity) (int, error) {
	found, err := g.Here().Discover(resource, g.rng)
	if err != nil {
		return 0, err
	}
	common.LoggerFromContext(ctx).Log(common.LevelInfo, "survey finished", map[string]interface{}{
		"location": g.current,
		"resource": resource.String(),
		"found":    found,
	})
	return found, nil
}

// BuildPlatform pays for and builds an extractor on a discovered deposit
func (g *Game) BuildPlatform(ctx context.Context, resource shared.Commodity) (production.Platform, error) {
	loc := g.Here()
	if !resource.IsMined() {
		return production.Platform{}, fmt.Errorf("%w: %s cannot be mined", shared.ErrInvalidCommodity, resource)
	}
	if loc.Site().Deposit(resource) <= 0 {
		return production.Platform{}, fmt.Errorf("%w: %s at %s", shared.ErrNoDeposit, resource, loc.Name())
	}
	if g.cfg.PlatformCost > 0 {
		desc := fmt.Sprintf("%s platform at %s", resource, loc.Name())
		if _, err := g.ship.Debit(g.cfg.PlatformCost, ledger.TransactionTypePlatform, g.turn, desc); err != nil {
			return production.Platform{}, err
		}
	}
	p, err := loc.BuildPlatform(resource, g.cfg.ProductionCooldown, g.rng)
	if err != nil {
		// deposit and resource were checked above
		shared.InvariantViolation("platform build failed after payment: %v", err)
	}
	common.LoggerFromContext(ctx).Log(common.LevelInfo, "platform built", map[string]interface{}{
		"location": loc.Name(),
		"resource": resource.String(),
		"capacity": p.Capacity,
	})
	return p, nil
}

// Construct pays for and raises a building at the current location
func (g *Game) Construct(ctx context.Context, b location.BuildingType) error {
	loc := g.Here()
	if !loc.Capabilities().CanBuild(b) {
		return fmt.Errorf("%w: %s at %s (%s)", shared.ErrNotBuildable, b, loc.Name(), loc.Type())
	}
	if g.cfg.BuildingCost > 0 {
		desc := fmt.Sprintf("%s at %s", b, loc.Name())
		if _, err := g.ship.Debit(g.cfg.BuildingCost, ledger.TransactionTypeConstruction, g.turn, desc); err != nil {
			return err
		}
	}
	if err := loc.Construct(b); err != nil {
		shared.InvariantViolation("construction failed after payment: %v", err)
	}
	common.LoggerFromContext(ctx).Log(common.LevelInfo, "building constructed", map[string]interface{}{
		"location": loc.Name(),
		"building": string(b),
	})
	return nil
}

// Repair fixes up to points of hull damage
func (g *Game) Repair(ctx context.Context, points int) (int, error) {
	return g.ship.Repair(points, g.cfg.RepairCostPerPoint, g.turn)
}

// Upgrade raises a ship stat by one level
func (g *Game) Upgrade(ctx context.Context, stat ledger.Stat) error {
	return g.ship.Upgrade(stat, g.cfg.UpgradeCost, g.turn)
}

// AcceptContract accepts an offered contract
func (g *Game) AcceptContract(ctx context.Context, id string) error {
	if err := g.engine.Accept(id, g.turn); err != nil {
		return err
	}
	g.metrics.RecordObligationTransition(string(obligation.KindContract), contract.StatusOffered.String(), contract.StatusActive.String())
	return nil
}

// ClaimContract pays a completed contract's final reward into the ship and profile
func (g *Game) ClaimContract(ctx context.Context, id string) (contract.RewardBundle, error) {
	reward, err := g.engine.Claim(id)
	if err != nil {
		return contract.RewardBundle{}, err
	}
	if err := g.grant(reward, ledger.TransactionTypeContractReward, id, "contract "+id); err != nil {
		return contract.RewardBundle{}, err
	}
	g.metrics.RecordObligationTransition(string(obligation.KindContract), contract.StatusCompleted.String(), contract.StatusClaimed.String())
	common.LoggerFromContext(ctx).Log(common.LevelInfo, "contract claimed", map[string]interface{}{
		"id":         id,
		"money":      reward.Money,
		"reputation": reward.Reputation,
	})
	return reward, nil
}

// AddQuest starts a quest. announce is true the first time this logical
// quest is offered to the player.
func (g *Game) AddQuest(ctx context.Context, q *quest.Quest) (announce bool, transitions []obligation.Transition, err error) {
	if err := g.engine.AddQuest(q); err != nil {
		return false, nil, err
	}
	announce = g.engine.ShouldAnnounce(q.Key())
	transitions = g.engine.EvaluateQuests(g.turn)
	g.applyTransitions(ctx, transitions)
	return announce, transitions, nil
}

// RecordCombatVictory is how the combat collaborator reports a win
func (g *Game) RecordCombatVictory(ctx context.Context, enemyType string) []obligation.Transition {
	g.profile.RecordVictory(enemyType)
	return g.reevaluate(ctx)
}

// AddResearchPoints is how the research collaborator reports progress
func (g *Game) AddResearchPoints(ctx context.Context, points int) []obligation.Transition {
	g.profile.AddResearchPoints(points)
	return g.reevaluate(ctx)
}

// ReachMilestone records a story milestone. The special-contracts milestone
// unlocks special offers in future batches.
func (g *Game) ReachMilestone(ctx context.Context, name string) bool {
	first := g.profile.ReachMilestone(name)
	if name == player.MilestoneSpecialContracts {
		g.engine.UnlockSpecialContracts()
	}
	return first
}

func (g *Game) reevaluate(ctx context.Context) []obligation.Transition {
	transitions := g.engine.EvaluateQuests(g.turn)
	g.applyTransitions(ctx, transitions)
	return transitions
}
