// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/units"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/transfercoin/codec"
	"github.com/ava-labs/transfercoin/consts"
	"github.com/ava-labs/transfercoin/pebble"
	"github.com/ava-labs/transfercoin/runtime"
	"github.com/ava-labs/transfercoin/trace"
	"github.com/ava-labs/transfercoin/utils"
)

const (
	AppName            = "transfercoin"
	DefaultDataDir     = ".transfercoin"
	DefaultSeed        = "transfer"
	DefaultProgramSeed = "transfercoin"
	historyFile        = "history.db"
)

// Config is read from YAML. Zero values fall back to the defaults returned
// by the getters.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	LogDir   string `yaml:"log_dir"`

	// Ledger
	PebbleCacheSize      int64 `yaml:"pebble_cache_size"`
	DisablePebbleSync    bool  `yaml:"disable_pebble_sync"`
	MaxRecentBlockhashes int   `yaml:"max_recent_blockhashes"`

	// Client
	ProgramSeed     string `yaml:"program_seed"`
	Seed            string `yaml:"seed"`
	PayerLamports   uint64 `yaml:"payer_lamports"`
	CounterLamports uint64 `yaml:"counter_lamports"`

	DisableHistory bool `yaml:"disable_history"`

	Trace trace.Config `yaml:"trace"`
}

// Load reads the config at [path]. An empty [path] returns the defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if len(path) == 0 {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) GetDataDir() string {
	if len(c.DataDir) > 0 {
		return c.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	if len(c.LogLevel) == 0 {
		return logging.Info, nil
	}
	return logging.ToLevel(c.LogLevel)
}

func (c *Config) GetLogDir() string {
	if len(c.LogDir) > 0 {
		return c.LogDir
	}
	return filepath.Join(c.GetDataDir(), "logs")
}

func (c *Config) GetHistoryPath() string {
	return filepath.Join(c.GetDataDir(), historyFile)
}

func (c *Config) GetPebbleConfig() pebble.Config {
	cfg := pebble.NewDefaultConfig()
	if c.PebbleCacheSize > 0 {
		cfg.CacheSize = c.PebbleCacheSize
	}
	if c.DisablePebbleSync {
		cfg.Sync = false
	}
	return cfg
}

func (c *Config) GetRuntimeConfig() runtime.Config {
	cfg := runtime.NewDefaultConfig()
	if c.MaxRecentBlockhashes > 0 {
		cfg.MaxRecentBlockhashes = c.MaxRecentBlockhashes
	}
	return cfg
}

// GetProgramID is the address the transfercoin program is deployed at.
func (c *Config) GetProgramID() codec.Address {
	seed := c.ProgramSeed
	if len(seed) == 0 {
		seed = DefaultProgramSeed
	}
	return codec.CreateAddress(consts.ProgramID, utils.ToID([]byte(seed)))
}

func (c *Config) GetSeed() string {
	if len(c.Seed) > 0 {
		return c.Seed
	}
	return DefaultSeed
}

func (c *Config) GetPayerLamports() uint64 {
	if c.PayerLamports > 0 {
		return c.PayerLamports
	}
	return consts.LamportsPerCoin
}

func (c *Config) GetCounterLamports() uint64 {
	if c.CounterLamports > 0 {
		return c.CounterLamports
	}
	return units.KiB
}

func (c *Config) GetHistoryEnabled() bool { return !c.DisableHistory }

func (c *Config) GetTraceConfig() *trace.Config {
	cfg := c.Trace
	if len(cfg.AppName) == 0 {
		cfg.AppName = AppName
	}
	return &cfg
}
