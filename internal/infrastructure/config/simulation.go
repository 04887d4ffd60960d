package config

// SimulationConfig holds the rules and starting conditions of a new game
type SimulationConfig struct {
	// Seed for world generation and every random draw; 0 picks one at startup
	Seed int64 `mapstructure:"seed"`

	// Difficulty widens the random walk: 0 easy, 1 normal, 2 hard
	Difficulty int `mapstructure:"difficulty" validate:"min=0,max=2"`

	PlayerName string `mapstructure:"player_name"`

	// YAML universe catalog; empty uses the built-in one
	UniverseFile string `mapstructure:"universe_file"`

	StartingFunds int `mapstructure:"starting_funds" validate:"min=0"`
	CargoCapacity int `mapstructure:"cargo_capacity" validate:"min=1"`

	// Turns between two outputs of the same resource at one location
	ProductionCooldown int `mapstructure:"production_cooldown" validate:"min=1"`

	ActiveContractCap       int     `mapstructure:"active_contract_cap" validate:"min=1"`
	ContractRefreshInterval int     `mapstructure:"contract_refresh_interval" validate:"min=1"`
	SpecialContractChance   float64 `mapstructure:"special_contract_chance" validate:"min=0,max=1"`

	PlatformCost       int `mapstructure:"platform_cost" validate:"min=0"`
	BuildingCost       int `mapstructure:"building_cost" validate:"min=0"`
	RepairCostPerPoint int `mapstructure:"repair_cost_per_point" validate:"min=0"`
	UpgradeCost        int `mapstructure:"upgrade_cost" validate:"min=0"`

	// Trade events kept in memory for inspection
	EventHistory int `mapstructure:"event_history" validate:"min=1"`

	// Pacing of the run command; 0 runs turns back to back
	TurnsPerSecond float64 `mapstructure:"turns_per_second" validate:"min=0"`
}
