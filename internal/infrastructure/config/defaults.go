package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Simulation defaults
	if cfg.Simulation.PlayerName == "" {
		cfg.Simulation.PlayerName = "Captain"
	}
	if cfg.Simulation.StartingFunds == 0 {
		cfg.Simulation.StartingFunds = 5000
	}
	if cfg.Simulation.CargoCapacity == 0 {
		cfg.Simulation.CargoCapacity = 100
	}
	if cfg.Simulation.ProductionCooldown == 0 {
		cfg.Simulation.ProductionCooldown = 5
	}
	if cfg.Simulation.ActiveContractCap == 0 {
		cfg.Simulation.ActiveContractCap = 3
	}
	if cfg.Simulation.ContractRefreshInterval == 0 {
		cfg.Simulation.ContractRefreshInterval = 5
	}
	if cfg.Simulation.SpecialContractChance == 0 {
		cfg.Simulation.SpecialContractChance = 0.3
	}
	if cfg.Simulation.PlatformCost == 0 {
		cfg.Simulation.PlatformCost = 2000
	}
	if cfg.Simulation.BuildingCost == 0 {
		cfg.Simulation.BuildingCost = 5000
	}
	if cfg.Simulation.RepairCostPerPoint == 0 {
		cfg.Simulation.RepairCostPerPoint = 10
	}
	if cfg.Simulation.UpgradeCost == 0 {
		cfg.Simulation.UpgradeCost = 1500
	}
	if cfg.Simulation.EventHistory == 0 {
		cfg.Simulation.EventHistory = 256
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "spacetraders-sim.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "spacetraders"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "spacetraders"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
