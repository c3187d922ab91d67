// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/counterprogram/consts"
	"github.com/ava-labs/counterprogram/pebble"
	"github.com/ava-labs/counterprogram/trace"
)

const (
	defaultDataDir   = ".counter-simulator"
	defaultNamespace = "counter"
)

type Config struct {
	LogLevel        logging.Level `json:"logLevel"`
	LogDisplayLevel logging.Level `json:"logDisplayLevel"`

	// DataDir holds the database and log files. Relative paths are resolved
	// against the user's home directory.
	DataDir string `json:"dataDir"`
	// InMemory keeps accounts in memory only; nothing survives the process.
	InMemory bool `json:"inMemory"`

	Pebble pebble.Config `json:"pebble"`
	Trace  trace.Config  `json:"trace"`

	MetricsNamespace string `json:"metricsNamespace"`
}

func NewDefault() *Config {
	return &Config{
		LogLevel:        logging.Info,
		LogDisplayLevel: logging.Info,
		DataDir:         defaultDataDir,
		Pebble:          pebble.NewDefaultConfig(),
		Trace: trace.Config{
			Enabled: false,
			AppName: consts.Name,
			Agent:   consts.Name + "-simulator",
		},
		MetricsNamespace: defaultNamespace,
	}
}

// Load returns the defaults overridden by the JSON file at [path]. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	c := NewDefault()
	if len(path) == 0 {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}
