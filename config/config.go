// Package config provides the configuration of a fabricdb run: which chip
// description to load, how to build the architecture from it, and how to
// log.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/fabricdb/arch"
)

// Environment variables that override values read from the file.
const (
	EnvChipDB   = "FABRICDB_CHIPDB"
	EnvFamily   = "FABRICDB_FAMILY"
	EnvPlacer   = "FABRICDB_PLACER"
	EnvRouter   = "FABRICDB_ROUTER"
	EnvLogLevel = "FABRICDB_LOG_LEVEL"
	EnvStore    = "FABRICDB_STORE"
)

// Delay holds the coefficients of the linear delay model.
type Delay struct {
	Scale  float64 `yaml:"scale"`
	Offset float64 `yaml:"offset"`
}

// Config is the configuration of a run.
type Config struct {
	Family   string `yaml:"family"`
	Device   string `yaml:"device"`
	ChipDB   string `yaml:"chipdb"` // .yaml and .yml are YAML, anything else binary
	Placer   string `yaml:"placer"`
	Router   string `yaml:"router"`
	Delay    Delay  `yaml:"delay"`
	LogLevel string `yaml:"log_level"`
	Store    string `yaml:"store"` // SQLite export path
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		Family:   arch.DefaultFamily,
		Placer:   arch.DefaultPlacer,
		Router:   arch.DefaultRouter,
		Delay:    Delay{Scale: 0.1},
		LogLevel: "info",
		Store:    "fabric.db",
	}
}

// Load reads the configuration. An empty path skips the file and starts from
// the defaults. A .env file in the working directory, if any, is loaded
// first; environment variables override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}

		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields with the FABRICDB_* environment variables that
// are set.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{EnvChipDB, &c.ChipDB},
		{EnvFamily, &c.Family},
		{EnvPlacer, &c.Placer},
		{EnvRouter, &c.Router},
		{EnvLogLevel, &c.LogLevel},
		{EnvStore, &c.Store},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

func oneOf(name string, known []string) bool {
	for _, k := range known {
		if k == name {
			return true
		}
	}

	return false
}

// Validate reports the first value the architecture would refuse.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Family) == "" {
		return errors.New("family must not be empty")
	}

	if !oneOf(c.Placer, arch.AvailablePlacers) {
		return errors.Errorf("unknown placer %q, want one of %s",
			c.Placer, strings.Join(arch.AvailablePlacers, ", "))
	}

	if !oneOf(c.Router, arch.AvailableRouters) {
		return errors.Errorf("unknown router %q, want one of %s",
			c.Router, strings.Join(arch.AvailableRouters, ", "))
	}

	if c.Delay.Scale < 0 {
		return errors.Errorf("delay scale %g is negative", c.Delay.Scale)
	}

	return nil
}
