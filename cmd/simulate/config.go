package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the root of a simulation config file.
type Config struct {
	Tables []TableConfig `hcl:"table,block"`
}

// TableConfig defines one simulated table.
type TableConfig struct {
	Name       string `hcl:"name,label"`
	Variant    string `hcl:"variant,optional"` // holdem, omaha, omaha-hilo
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	PotLimit   bool   `hcl:"pot_limit,optional"`
	Players    int    `hcl:"players,optional"`
	Stack      int    `hcl:"stack,optional"`
	Hands      int    `hcl:"hands,optional"`
}

// DefaultConfig returns a single no-limit hold'em table.
func DefaultConfig() *Config {
	return &Config{
		Tables: []TableConfig{
			{
				Name:       "main",
				Variant:    "holdem",
				SmallBlind: 5,
				BigBlind:   10,
				Players:    6,
				Stack:      1000,
				Hands:      10000,
			},
		},
	}
}

// LoadConfig parses an HCL config file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	return &config, nil
}

// Validate checks config values
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("config must define at least one table")
	}

	for _, t := range c.Tables {
		if t.SmallBlind <= 0 || t.BigBlind <= 0 {
			return fmt.Errorf("table %s: blinds must be positive", t.Name)
		}
		if t.SmallBlind > t.BigBlind {
			return fmt.Errorf("table %s: small blind %d exceeds big blind %d", t.Name, t.SmallBlind, t.BigBlind)
		}
		switch t.Variant {
		case "", "holdem", "omaha", "omaha-hilo":
		default:
			return fmt.Errorf("table %s: unknown variant %q", t.Name, t.Variant)
		}
		if t.Players != 0 && (t.Players < 2 || t.Players > 10) {
			return fmt.Errorf("table %s: players must be between 2 and 10", t.Name)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Variant == "" {
			t.Variant = "holdem"
		}
		if t.Players == 0 {
			t.Players = 6
		}
		if t.Stack == 0 {
			t.Stack = 100 * t.BigBlind
		}
		if t.Hands == 0 {
			t.Hands = 10000
		}
	}
}
