package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"agelife/src/universe"
)

// Config holds the startup configuration for the simulator
type Config struct {
	Width           int           `json:"width"`
	Height          int           `json:"height"`
	Interval        time.Duration `json:"interval"`
	MaxSteps        int           `json:"max_steps"`
	SeedProbability float64       `json:"seed_probability"`
	Toroidal        bool          `json:"toroidal"`
	Engine          string        `json:"engine"`
	Interactive     bool          `json:"interactive"`
	Random          bool          `json:"random"`
	RandSeed        int64         `json:"rand_seed"`
}

// Default returns sensible defaults
func Default() Config {
	return Config{
		Width:           universe.DefWidth,
		Height:          universe.DefHeight,
		Interval:        universe.DefSimulationInterval,
		MaxSteps:        universe.DefMaxSteps,
		SeedProbability: universe.DefSeedProbability,
		Toroidal:        false,
		Engine:          "base",
		Interactive:     false,
		Random:          false,
	}
}

// Load loads configuration from a JSON file, starting from the defaults
func Load(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, errors.Wrapf(err, "[Load] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "[Load] failed to unmarshal data from file: %+v", filename)
	}

	return cfg, nil
}

// UniverseOptions converts the configuration to engine options
func (c Config) UniverseOptions() *universe.Options {
	o := universe.DefaultUniverseOptions
	o.Width = c.Width
	o.Height = c.Height
	o.Interval = c.Interval
	o.MaxSteps = c.MaxSteps
	o.SeedProbability = c.SeedProbability
	o.RandSeed = c.RandSeed
	if c.Toroidal {
		o.Edge = universe.EdgeToroidal
	}
	return &o
}
