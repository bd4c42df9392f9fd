// Package config loads the application configuration from defaults, an
// optional kineograph.toml, KINEOGRAPH_* environment variables and
// command-line flags, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/flowmatic/kineograph/physics"
)

// Config holds all settings for the layout driver.
type Config struct {
	Data       string  `koanf:"data"`
	Output     string  `koanf:"output"`
	Format     string  `koanf:"format"`
	Width      float64 `koanf:"width"`
	Height     float64 `koanf:"height"`
	Iterations int     `koanf:"iterations"`
	Threshold  float64 `koanf:"threshold"`
	Noise      float64 `koanf:"noise"`
	Seed       int64   `koanf:"seed"`
	Debug      bool    `koanf:"debug"`

	Damping    float64 `koanf:"damping"`
	Repulsion  float64 `koanf:"repulsion"`
	Attraction float64 `koanf:"attraction"`
	Grouping   float64 `koanf:"grouping"`
	TimeStep   float64 `koanf:"timestep"`
}

// Physics returns the engine tunables carried by this configuration.
func (c *Config) Physics() physics.Config {
	return physics.Config{
		Damping:    c.Damping,
		Repulsion:  c.Repulsion,
		Attraction: c.Attraction,
		Grouping:   c.Grouping,
		TimeStep:   c.TimeStep,
	}
}

// Load loads configuration with priority: flags > env > config file >
// defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := physics.DefaultConfig()
	defaultMap := map[string]interface{}{
		"data":       "",
		"output":     "",
		"format":     "json",
		"width":      800.0,
		"height":     600.0,
		"iterations": 1000,
		"threshold":  0.001,
		"noise":      0.0,
		"seed":       int64(0),
		"debug":      false,
		"damping":    defaults.Damping,
		"repulsion":  defaults.Repulsion,
		"attraction": defaults.Attraction,
		"grouping":   defaults.Grouping,
		"timestep":   defaults.TimeStep,
	}
	if err := k.Load(makeMapProvider(defaultMap), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Optional config file; absence is not an error.
	_ = k.Load(file.Provider("kineograph.toml"), toml.Parser())

	// Environment variables, e.g. KINEOGRAPH_DAMPING=0.9.
	if err := k.Load(env.Provider("KINEOGRAPH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "KINEOGRAPH_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Helper to use a map as a provider.
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
