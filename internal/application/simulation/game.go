// Package simulation is the explicit game context: it owns the locations,
// the ship, the player profile, the event emitter and the obligation engine,
// and runs every turn phase in a fixed order.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/obligation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/events"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/production"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/pkg/utils"
)

// Config holds the tunables of a session
type Config struct {
	Difficulty         int
	ProductionCooldown int
	PlatformCost       int
	BuildingCost       int
	RepairCostPerPoint int
	UpgradeCost        int
	EventHistory       int
	Obligations        obligation.Config
}

// DefaultConfig returns the standard session tunables
func DefaultConfig() Config {
	return Config{
		Difficulty:         1,
		ProductionCooldown: 5,
		PlatformCost:       2000,
		BuildingCost:       5000,
		RepairCostPerPoint: 10,
		UpgradeCost:        1500,
		EventHistory:       events.DefaultHistoryLimit,
		Obligations:        obligation.DefaultConfig(),
	}
}

// Setup is what a new or restored session starts from
type Setup struct {
	ID        string
	Turn      int
	Locations []*location.Location
	Current   string
	Ship      *ledger.Ship
	Profile   *player.Profile
	Random    shared.RandomSource
	Clock     shared.Clock
	Metrics   common.MetricsRecorder
}

// Game is one single-player session. It is not safe for concurrent use;
// every mutation happens inside AdvanceTurn or a player action.
type Game struct {
	id        string
	turn      int
	cfg       Config
	rng       shared.RandomSource
	clock     shared.Clock
	order     []string
	locations map[string]*location.Location
	current   string
	ship      *ledger.Ship
	profile   *player.Profile
	emitter   *events.Emitter
	engine    *obligation.Engine
	metrics   common.MetricsRecorder
}

// NewGame creates a session and generates the first batch of offers
func NewGame(cfg Config, setup Setup) (*Game, error) {
	g, err := newGame(cfg, setup)
	if err != nil {
		return nil, err
	}
	g.engine = obligation.NewEngine(cfg.Obligations, g.rng, g)
	g.profile.Discover(g.current)
	g.engine.RegenerateOffers(g.turn, g.Board())
	return g, nil
}

func newGame(cfg Config, setup Setup) (*Game, error) {
	if len(setup.Locations) == 0 {
		return nil, fmt.Errorf("a game needs at least one location")
	}
	if setup.Ship == nil {
		return nil, fmt.Errorf("a game needs a ship")
	}
	if setup.Random == nil {
		return nil, fmt.Errorf("a game needs a random source")
	}
	if cfg.Difficulty < market.MinDifficulty || cfg.Difficulty > market.MaxDifficulty {
		return nil, shared.NewValidationError("difficulty", fmt.Sprintf("must be within [%d,%d]", market.MinDifficulty, market.MaxDifficulty))
	}
	if cfg.ProductionCooldown <= 0 {
		return nil, shared.NewValidationError("production_cooldown", "must be positive")
	}

	g := &Game{
		id:        setup.ID,
		turn:      setup.Turn,
		cfg:       cfg,
		rng:       setup.Random,
		clock:     setup.Clock,
		locations: make(map[string]*location.Location, len(setup.Locations)),
		ship:      setup.Ship,
		profile:   setup.Profile,
		emitter:   events.NewEmitter(cfg.EventHistory),
		metrics:   setup.Metrics,
	}
	if g.clock == nil {
		g.clock = shared.NewRealClock()
	}
	if g.profile == nil {
		g.profile = player.NewProfile("Captain")
	}
	if g.id == "" {
		g.id = utils.GenerateID("game", g.profile.Name)
	}
	if g.metrics == nil {
		g.metrics = common.NoOpMetrics{}
	}

	for _, loc := range setup.Locations {
		if _, dup := g.locations[loc.Name()]; dup {
			return nil, fmt.Errorf("duplicate location %q", loc.Name())
		}
		g.locations[loc.Name()] = loc
		g.order = append(g.order, loc.Name())
	}
	slices.Sort(g.order)

	g.current = setup.Current
	if g.current == "" {
		g.current = g.order[0]
	}
	if _, ok := g.locations[g.current]; !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownLocation, g.current)
	}

	g.emitter.Subscribe(g.recordMarketTrade)
	return g, nil
}

func (g *Game) ID() string                    { return g.id }
func (g *Game) Turn() int                     { return g.turn }
func (g *Game) Config() Config                { return g.cfg }
func (g *Game) Ship() *ledger.Ship            { return g.ship }
func (g *Game) Profile() *player.Profile      { return g.profile }
func (g *Game) Engine() *obligation.Engine    { return g.engine }
func (g *Game) Emitter() *events.Emitter      { return g.emitter }
func (g *Game) CurrentLocation() string       { return g.current }
func (g *Game) LocationNames() []string       { return slices.Clone(g.order) }
func (g *Game) Subscribe(s events.Subscriber) { g.emitter.Subscribe(s) }

// Location looks up a location by name
func (g *Game) Location(name string) (*location.Location, error) {
	loc, ok := g.locations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownLocation, name)
	}
	return loc, nil
}

// Here returns the location the ship is docked at
func (g *Game) Here() *location.Location {
	return g.locations[g.current]
}

// Board lists what contracts can currently be routed through
func (g *Game) Board() contract.Board {
	board := contract.Board{
		Locations:   slices.Clone(g.order),
		Commodities: make(map[string][]shared.Commodity, len(g.order)),
	}
	for _, name := range g.order {
		m := g.locations[name].Market()
		for _, c := range shared.AllCommodities() {
			if m.CanTrade(c) {
				board.Commodities[name] = append(board.Commodities[name], c)
			}
		}
	}
	return board
}

// LocationReport is what one location did during a turn
type LocationReport struct {
	Name         string
	PriceChanges []market.PriceChange
	Output       []production.Output
	LiftedBans   []shared.Commodity
	Err          error
}

// TurnReport summarizes one AdvanceTurn
type TurnReport struct {
	Turn        int
	Locations   []LocationReport
	Transitions []obligation.Transition
}

// AdvanceTurn runs one turn. Phases are applied across all locations in this
// order: market prices, production, ban and cooldown decay, obligation sweep.
// A location whose market update fails is skipped for the remaining phases;
// other locations still update. The joined per-location errors are returned
// alongside the report.
func (g *Game) AdvanceTurn(ctx context.Context) (*TurnReport, error) {
	logger := common.LoggerFromContext(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.turn++
	report := &TurnReport{Turn: g.turn, Locations: make([]LocationReport, len(g.order))}

	for i, name := range g.order {
		report.Locations[i].Name = name
		changes, err := g.locations[name].UpdatePrices(g.cfg.Difficulty, g.rng)
		if err != nil {
			report.Locations[i].Err = err
			continue
		}
		report.Locations[i].PriceChanges = changes
	}

	for i, name := range g.order {
		if report.Locations[i].Err != nil {
			continue
		}
		report.Locations[i].Output = g.locations[name].Produce(g.cfg.ProductionCooldown, g.rng)
	}

	for i, name := range g.order {
		if report.Locations[i].Err != nil {
			continue
		}
		report.Locations[i].LiftedBans = g.locations[name].Decay()
	}

	report.Transitions = g.engine.AdvanceTurn(g.turn, g.Board())
	g.applyTransitions(ctx, report.Transitions)

	var errs []error
	for _, lr := range report.Locations {
		if lr.Err != nil {
			errs = append(errs, lr.Err)
			logger.Log(common.LevelError, "location update failed", map[string]interface{}{
				"turn":     g.turn,
				"location": lr.Name,
				"error":    lr.Err.Error(),
			})
			continue
		}
		g.recordLocationMetrics(lr)
	}
	g.metrics.RecordTurn(g.turn)
	g.metrics.RecordFunds(g.ship.Funds())

	logger.Log(common.LevelInfo, "turn advanced", map[string]interface{}{
		"turn":        g.turn,
		"transitions": len(report.Transitions),
		"funds":       g.ship.Funds(),
	})
	return report, errors.Join(errs...)
}

func (g *Game) recordLocationMetrics(lr LocationReport) {
	m := g.locations[lr.Name].Market()
	for _, c := range shared.AllCommodities() {
		if !m.IsListed(c) {
			continue
		}
		price, err := m.Price(c)
		if err != nil {
			price = 0
		}
		g.metrics.RecordPrice(lr.Name, c.String(), price, m.IsBanned(c))
	}
	for _, pc := range lr.PriceChanges {
		if pc.Banned {
			g.metrics.RecordBan(lr.Name, pc.Commodity.String(), pc.BanTurns)
		}
	}
	for _, out := range lr.Output {
		g.metrics.RecordProduction(lr.Name, out.Resource.String(), out.Units)
	}
}

// recordMarketTrade keeps each market's volume bookkeeping in step with the
// event stream
func (g *Game) recordMarketTrade(rec events.Record) {
	switch ev := rec.Event.(type) {
	case events.BuyEvent:
		if loc, ok := g.locations[ev.Location]; ok {
			loc.Market().RecordTrade(market.SideBuy, ev.Commodity, ev.Amount, ev.Turn)
		}
	case events.SellEvent:
		if loc, ok := g.locations[ev.Location]; ok {
			loc.Market().RecordTrade(market.SideSell, ev.Commodity, ev.Amount, ev.Turn)
		}
	case events.PassengerDeliveryEvent, events.TravelEvent:
	}
}

// emit publishes an event and feeds it to the obligation engine
func (g *Game) emit(ctx context.Context, ev events.TradeEvent) []obligation.Transition {
	g.emitter.Emit(ev)
	transitions := g.engine.SubmitEvent(ev)
	g.applyTransitions(ctx, transitions)
	return transitions
}

// applyTransitions settles the side effects of obligation state changes:
// failure penalties and immediate quest rewards
func (g *Game) applyTransitions(ctx context.Context, transitions []obligation.Transition) {
	logger := common.LoggerFromContext(ctx)
	for _, t := range transitions {
		g.metrics.RecordObligationTransition(string(t.Kind), t.From, t.To)
		logger.Log(common.LevelInfo, "obligation transition", map[string]interface{}{
			"id":    t.ID,
			"kind":  string(t.Kind),
			"title": t.Title,
			"from":  t.From,
			"to":    t.To,
			"turn":  t.Turn,
		})
		if t.Penalty > 0 {
			g.profile.AdjustReputation(-t.Penalty)
		}
		if t.Kind == obligation.KindQuest && !t.Reward.IsZero() {
			if err := g.grant(t.Reward, ledger.TransactionTypeQuestReward, t.ID, t.Title); err != nil {
				logger.Log(common.LevelError, "failed to grant quest reward", map[string]interface{}{
					"id":    t.ID,
					"error": err.Error(),
				})
			}
		}
	}
}

func (g *Game) grant(reward contract.RewardBundle, kind ledger.TransactionType, relatedID, title string) error {
	if reward.Money > 0 {
		if _, err := g.ship.Credit(reward.Money, kind, g.turn, title, relatedID); err != nil {
			return err
		}
	}
	g.profile.AdjustReputation(reward.Reputation)
	g.profile.AddPlotPoints(reward.PlotPoints)
	return nil
}

// quest.GameState

func (g *Game) CargoUnits(c shared.Commodity) int    { return g.ship.Cargo(c) }
func (g *Game) CombatVictories(enemyType string) int { return g.profile.CombatVictories[enemyType] }
func (g *Game) TradeProfit() int                     { return g.profile.TradeProfit }
func (g *Game) DiscoveredLocations() int             { return g.profile.DiscoveredCount() }
func (g *Game) ResearchPoints() int                  { return g.profile.ResearchPoints }

// PriceRecords lists the turn's new prices for every location that updated
func (r *TurnReport) PriceRecords() ([]*market.PriceRecord, error) {
	var records []*market.PriceRecord
	for _, lr := range r.Locations {
		if lr.Err != nil {
			continue
		}
		for _, pc := range lr.PriceChanges {
			rec, err := market.NewPriceRecord(r.Turn, lr.Name, pc.Commodity, pc.New, pc.Banned)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}
