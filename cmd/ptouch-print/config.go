package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ptouch-protocol/ptouch-go/pkg/transport"
)

// Config holds the command configuration, merged from flags and an
// optional YAML file. Flags win over file values.
type Config struct {
	List        bool
	Status      bool
	Image       string
	Chain       bool
	NoPrecut    bool
	Feed        int
	Cut         bool
	ConfigFile  string
	LogFile     string
	LogLevel    string
	Interactive bool

	// Threshold is the grayscale cutoff for PNG conversion; pixels
	// darker than this print black.
	Threshold uint8

	// Transport tuning.
	PollIntervalMS int
	MaxAttempts    int
}

// fileConfig is the YAML schema.
type fileConfig struct {
	Chain          *bool   `yaml:"chain"`
	Precut         *bool   `yaml:"precut"`
	Threshold      *uint8  `yaml:"threshold"`
	LogFile        *string `yaml:"log_file"`
	LogLevel       *string `yaml:"log_level"`
	PollIntervalMS *int    `yaml:"poll_interval_ms"`
	MaxAttempts    *int    `yaml:"max_attempts"`
}

// LoadFile merges settings from a YAML file into fields the flags left
// at their defaults. A missing path is not an error.
func (c *Config) LoadFile(path string) error {
	if c.Threshold == 0 {
		c.Threshold = 128
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Chain != nil && !c.Chain {
		c.Chain = *fc.Chain
	}
	if fc.Precut != nil && !c.NoPrecut {
		c.NoPrecut = !*fc.Precut
	}
	if fc.Threshold != nil {
		c.Threshold = *fc.Threshold
	}
	if fc.LogFile != nil && c.LogFile == "" {
		c.LogFile = *fc.LogFile
	}
	if fc.LogLevel != nil && c.LogLevel == "info" {
		c.LogLevel = *fc.LogLevel
	}
	if fc.PollIntervalMS != nil {
		c.PollIntervalMS = *fc.PollIntervalMS
	}
	if fc.MaxAttempts != nil {
		c.MaxAttempts = *fc.MaxAttempts
	}
	return nil
}

// TransportConfig translates the tuning knobs into a transport.Config,
// falling back to the transport defaults when unset.
func (c *Config) TransportConfig() transport.Config {
	cfg := transport.DefaultConfig()
	if c.PollIntervalMS > 0 {
		cfg.PollInterval = time.Duration(c.PollIntervalMS) * time.Millisecond
	}
	if c.MaxAttempts > 0 {
		cfg.MaxAttempts = c.MaxAttempts
	}
	return cfg
}
