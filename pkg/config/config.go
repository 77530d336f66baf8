// Package config loads cache tuning and workload settings for the bench tool.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults.
const (
	DefaultMaxDepth = 1
	DefaultSites    = 64
	DefaultRounds   = 10000
	DefaultWorkers  = 4
)

// Config is the resolved bench configuration.
type Config struct {
	MaxDepth  int  `koanf:"max_depth"`
	Strict    bool `koanf:"strict"`
	DefineOwn bool `koanf:"define_own"`

	Bench BenchConfig `koanf:"bench"`
}

// BenchConfig shapes the synthetic workload.
type BenchConfig struct {
	Sites     int      `koanf:"sites"`
	Rounds    int      `koanf:"rounds"`
	Workers   int      `koanf:"workers"`
	Workloads []string `koanf:"workloads"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > propcache.yaml > propcache.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("propcache.yaml"); err == nil {
		return "propcache.yaml"
	}
	if _, err := os.Stat("propcache.yml"); err == nil {
		return "propcache.yml"
	}
	return ""
}

// Load resolves configuration from defaults, an optional yaml file and
// PROPCACHE_* environment variables, lowest to highest precedence.
func Load(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"max_depth":       DefaultMaxDepth,
		"strict":          false,
		"define_own":      false,
		"bench.sites":     DefaultSites,
		"bench.rounds":    DefaultRounds,
		"bench.workers":   DefaultWorkers,
		"bench.workloads": []string{"monomorphic", "index", "proxy", "megamorphic"},
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file if present
	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Load environment variables (PROPCACHE_ prefix)
	// Transform: PROPCACHE_MAX_DEPTH -> max_depth, PROPCACHE_BENCH_ROUNDS -> bench.rounds
	if err := k.Load(env.Provider("PROPCACHE_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "PROPCACHE_"))
		if rest, ok := strings.CutPrefix(s, "bench_"); ok {
			return "bench." + rest
		}
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
