package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacetraders-economy/internal/adapters/logging"
	"github.com/andrescamacho/spacetraders-economy/internal/adapters/metrics"
	"github.com/andrescamacho/spacetraders-economy/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	ledgerCmd "github.com/andrescamacho/spacetraders-economy/internal/application/ledger/commands"
	ledgerQuery "github.com/andrescamacho/spacetraders-economy/internal/application/ledger/queries"
	"github.com/andrescamacho/spacetraders-economy/internal/application/obligation"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	simCmd "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
	simQuery "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/queries"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/internal/infrastructure/config"
	"github.com/andrescamacho/spacetraders-economy/internal/infrastructure/database"
)

// session is everything one CLI invocation needs: configuration, storage,
// the mediator and, once loaded, the game
type session struct {
	cfg      *config.Config
	db       *gorm.DB
	logger   *logging.SlogLogger
	closer   io.Closer
	mediator common.Mediator
	provider *simCmd.StaticProvider
	games    simulation.Repository
	journal  *persistence.GormTransactionRepository
	prices   *persistence.GormPriceHistoryRepository
	recorder common.MetricsRecorder
}

// openSession loads configuration, connects to the database and wires every
// handler. No game is loaded yet.
func openSession() (*session, context.Context, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		closer.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		closer.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	s := &session{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		closer:   closer,
		mediator: common.NewMediator(),
		provider: &simCmd.StaticProvider{},
		games:    persistence.NewGormGameRepository(db),
		journal:  persistence.NewGormTransactionRepository(db),
		prices:   persistence.NewGormPriceHistoryRepository(db),
		recorder: common.NoOpMetrics{},
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewSimulationMetricsCollector()
		if err := collector.Register(); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		s.recorder = collector
	}

	s.mediator.Use(common.LoggingMiddleware)
	if err := errors.Join(
		simCmd.RegisterHandlers(s.mediator, s.provider),
		simQuery.RegisterHandlers(s.mediator, s.provider),
		ledgerCmd.RegisterHandlers(s.mediator, s.journal),
		ledgerQuery.RegisterHandlers(s.mediator, s.journal),
	); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	ctx := common.WithLogger(context.Background(), logger)
	return s, ctx, nil
}

// openGameSession opens a session and loads the selected game
func openGameSession() (*session, context.Context, error) {
	s, ctx, err := openSession()
	if err != nil {
		return nil, nil, err
	}
	id, err := resolveGameID()
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	if err := s.load(ctx, id); err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, ctx, nil
}

func (s *session) Close() {
	if err := database.Close(s.db); err != nil {
		s.logger.Log(common.LevelWarning, "failed to close database", map[string]interface{}{"error": err.Error()})
	}
	s.closer.Close()
}

// Game returns the loaded game, or nil before load
func (s *session) Game() *simulation.Game {
	return s.provider.G
}

// send dispatches a request and asserts the response type
func send[T any](ctx context.Context, s *session, request common.Request) (T, error) {
	var zero T
	resp, err := s.mediator.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", resp)
	}
	return typed, nil
}

func (s *session) load(ctx context.Context, id string) error {
	snap, err := s.games.Load(ctx, id)
	if err != nil {
		return err
	}
	return s.restore(snap)
}

// restore resumes a snapshot with the configured rules. The random source is
// repositioned from the snapshot, so the seed it starts from does not matter.
func (s *session) restore(snap simulation.Snapshot) error {
	game, err := simulation.Restore(
		gameConfig(s.cfg.Simulation),
		snap,
		shared.NewSeededRandom(uint64(s.cfg.Simulation.Seed)),
		shared.NewRealClock(),
		s.recorder,
	)
	if err != nil {
		return fmt.Errorf("failed to restore game %s: %w", snap.ID, err)
	}
	s.provider.G = game
	return nil
}

// save stores the snapshot, then appends any journal entries not yet persisted
func (s *session) save(ctx context.Context) error {
	game := s.Game()
	snap, err := game.Snapshot()
	if err != nil {
		return err
	}
	if err := s.games.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	_, err = send[*ledgerCmd.RecordJournalResponse](ctx, s, &ledgerCmd.RecordJournalCommand{
		GameID:       game.ID(),
		Transactions: game.Ship().Journal(),
	})
	if err != nil {
		return fmt.Errorf("failed to record journal: %w", err)
	}
	s.logger.Log(common.LevelDebug, "game saved", map[string]interface{}{
		"game_id": game.ID(),
		"turn":    game.Turn(),
	})
	return nil
}

// act loads the game, runs fn and saves the result. Nothing is saved when fn fails.
func act(fn func(ctx context.Context, s *session) error) error {
	s, ctx, err := openGameSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := fn(ctx, s); err != nil {
		return err
	}
	return s.save(ctx)
}

// view loads the game and runs fn without saving
func view(fn func(ctx context.Context, s *session) error) error {
	s, ctx, err := openGameSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

// resolveGameID picks --game, then the user's default game
func resolveGameID() (string, error) {
	if gameID != "" {
		return gameID, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no game specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no game specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultGameID != "" {
		return userCfg.DefaultGameID, nil
	}

	return "", fmt.Errorf("no game specified: use --game, or start one with 'spacetraders-sim new'")
}

// gameConfig maps configuration onto session rules
func gameConfig(sc config.SimulationConfig) simulation.Config {
	gen := contract.DefaultGeneratorConfig()
	gen.SpecialChance = sc.SpecialContractChance
	return simulation.Config{
		Difficulty:         sc.Difficulty,
		ProductionCooldown: sc.ProductionCooldown,
		PlatformCost:       sc.PlatformCost,
		BuildingCost:       sc.BuildingCost,
		RepairCostPerPoint: sc.RepairCostPerPoint,
		UpgradeCost:        sc.UpgradeCost,
		EventHistory:       sc.EventHistory,
		Obligations: obligation.Config{
			ActiveCap:       sc.ActiveContractCap,
			RefreshInterval: sc.ContractRefreshInterval,
			Generator:       gen,
		},
	}
}
