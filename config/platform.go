package config

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/chipdb"
)

// Builder returns an architecture builder set up from the configuration.
func (c *Config) Builder() arch.Builder {
	return arch.NewBuilder().
		WithFamily(c.Family).
		WithDelayScaling(c.Delay.Scale, c.Delay.Offset).
		WithPlacerName(c.Placer).
		WithRouterName(c.Router)
}

// LoadChipDB reads the chip description named by the configuration.
func (c *Config) LoadChipDB() (*chipdb.Database, error) {
	if c.ChipDB == "" {
		return nil, errors.Errorf("no chip description given; set chipdb or %s", EnvChipDB)
	}

	db, err := chipdb.Load(c.ChipDB)
	if err != nil {
		return nil, err
	}

	if c.Device != "" && db.Device != c.Device {
		return nil, errors.Errorf("chip description %s is for device %q, not %q",
			c.ChipDB, db.Device, c.Device)
	}

	return db, nil
}

// BuildArch loads the chip description and builds the architecture from it.
func (c *Config) BuildArch() (*arch.Arch, error) {
	db, err := c.LoadChipDB()
	if err != nil {
		return nil, err
	}

	return c.Builder().Build(db)
}
