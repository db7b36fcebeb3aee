// Package config loads the simulator configuration from a YAML file,
// with environment-variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tuckinterrors/terrors-sim/internal/agent"
)

// Config is the root configuration for the simulator.
type Config struct {
	Definitions DefinitionsConfig `mapstructure:"definitions"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Weights     agent.Weights     `mapstructure:"weights"`
}

// DefinitionsConfig points at the card and objective definition files.
type DefinitionsConfig struct {
	CardsPath      string `mapstructure:"cards_path"`
	ObjectivesPath string `mapstructure:"objectives_path"`
}

// SimulationConfig controls one simulation batch.
type SimulationConfig struct {
	ObjectiveID string `mapstructure:"objective_id"`
	Agent       string `mapstructure:"agent"`
	Games       int    `mapstructure:"games"`
	Seed        int64  `mapstructure:"seed"`
	Workers     int    `mapstructure:"workers"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig controls the optional results store.
type DatabaseConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	URL            string        `mapstructure:"url"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Load reads configuration from the given path, applying defaults and
// TERRORS_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("definitions.cards_path", "data/cards.yaml")
	v.SetDefault("definitions.objectives_path", "data/objectives.yaml")
	v.SetDefault("simulation.objective_id", "")
	v.SetDefault("simulation.agent", "RANDOM")
	v.SetDefault("simulation.games", 1000)
	v.SetDefault("simulation.seed", 1)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.connect_timeout", 5*time.Second)

	v.SetEnvPrefix("TERRORS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation.games must be at least 1, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation.workers must be at least 1, got %d", c.Simulation.Workers)
	}
	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("database.url is required when database.enabled is true")
	}
	return nil
}
