// Package config loads the settings of the demonstration command from
// defaults, an optional configuration file, and PARDEMO_* environment
// variables, in increasing order of precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// BlackScholes configures the option pricing demonstration.
type BlackScholes struct {
	Spot       float64 `mapstructure:"spot"`
	Rate       float64 `mapstructure:"rate"`
	Volatility float64 `mapstructure:"volatility"`
	Time       float64 `mapstructure:"time"`
	Strikes    int     `mapstructure:"strikes"`
	StrikeLow  float64 `mapstructure:"strike_low"`
	StrikeHigh float64 `mapstructure:"strike_high"`
}

// Pi configures the Monte Carlo pi demonstrations.
type Pi struct {
	Trials    int `mapstructure:"trials"`
	Runs      int `mapstructure:"runs"`
	RunTrials int `mapstructure:"run_trials"`
	Batches   int `mapstructure:"batches"`
}

// Walk configures the random walk demonstration.
type Walk struct {
	Steps   int    `mapstructure:"steps"`
	Walkers int    `mapstructure:"walkers"`
	Image   string `mapstructure:"image"`
	HTML    string `mapstructure:"html"`
}

// Config holds all settings.
type Config struct {
	Seed         uint64       `mapstructure:"seed"`
	Workers      int          `mapstructure:"workers"`
	BlackScholes BlackScholes `mapstructure:"blackscholes"`
	Pi           Pi           `mapstructure:"pi"`
	Walk         Walk         `mapstructure:"walk"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 20240331)
	v.SetDefault("workers", runtime.GOMAXPROCS(0))

	v.SetDefault("blackscholes.spot", 42.0)
	v.SetDefault("blackscholes.rate", 0.5)
	v.SetDefault("blackscholes.volatility", 0.2)
	v.SetDefault("blackscholes.time", 0.5)
	v.SetDefault("blackscholes.strikes", 1000000)
	v.SetDefault("blackscholes.strike_low", 40.0)
	v.SetDefault("blackscholes.strike_high", 44.0)

	v.SetDefault("pi.trials", 100000000)
	v.SetDefault("pi.runs", 10000)
	v.SetDefault("pi.run_trials", 10000)
	v.SetDefault("pi.batches", 0)

	v.SetDefault("walk.steps", 1000)
	v.SetDefault("walk.walkers", 8)
	v.SetDefault("walk.image", "")
	v.SetDefault("walk.html", "")
}

// Load reads the configuration. If path is empty, only defaults and the
// environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PARDEMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Workers < 1:
		return fmt.Errorf("config: workers must be positive, got %d", cfg.Workers)
	case cfg.BlackScholes.Strikes < 0:
		return fmt.Errorf("config: blackscholes.strikes must not be negative, got %d", cfg.BlackScholes.Strikes)
	case cfg.Pi.Trials < 0 || cfg.Pi.Runs < 0 || cfg.Pi.RunTrials < 0:
		return fmt.Errorf("config: pi trial counts must not be negative")
	case cfg.Walk.Steps < 0 || cfg.Walk.Walkers < 0:
		return fmt.Errorf("config: walk sizes must not be negative")
	}
	return nil
}
