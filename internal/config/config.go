package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "SPYPARSEY"

// Output modes, in the order they win when more than one is asked for.
const (
	OutputCount   = "count"
	OutputPaths   = "paths"
	OutputCSV     = "csv"
	OutputTable   = "table"
	OutputJSON    = "json"
	OutputYAML    = "yaml"
	OutputSummary = "summary"
)

var ErrNoReplayDir = errors.New("no replay directory given and LOCALAPPDATA is not set")

// Filters holds the raw filter values as typed by the user. They're only turned into
// spyparty values when the filters get built.
type Filters struct {
	Players     []string `mapstructure:"players"`
	Pair        []string `mapstructure:"pair"`
	Spies       []string `mapstructure:"spies"`
	Snipers     []string `mapstructure:"snipers"`
	Maps        []string `mapstructure:"maps"`
	Modes       []string `mapstructure:"modes"`
	Results     []string `mapstructure:"results"`
	Missions    []string `mapstructure:"missions"`
	MissionsAll []string `mapstructure:"missionsAll"`
	Countdown   bool     `mapstructure:"countdown"`
	SpyWin      bool     `mapstructure:"spyWin"`
	SniperWin   bool     `mapstructure:"sniperWin"`
}

type Config struct {
	Paths     []string `mapstructure:"paths"`
	Workers   int      `mapstructure:"workers"`
	LogLevel  string   `mapstructure:"logLevel"`
	Verbosity int      `mapstructure:"verbose"`
	DB        string   `mapstructure:"db"`

	Count     bool   `mapstructure:"count"`
	ShowPaths bool   `mapstructure:"showPaths"`
	CSV       bool   `mapstructure:"csv"`
	Table     bool   `mapstructure:"table"`
	Format    string `mapstructure:"format"`

	Filters Filters `mapstructure:",squash"`
}

// SetDefaults registers every key so env variables and Unmarshal see them even when no
// config file or flag mentions them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("paths", []string{})
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("logLevel", "warn")
	v.SetDefault("verbose", 0)
	v.SetDefault("db", "")

	v.SetDefault("count", false)
	v.SetDefault("showPaths", false)
	v.SetDefault("csv", false)
	v.SetDefault("table", false)
	v.SetDefault("format", OutputSummary)

	for _, key := range []string{"players", "pair", "spies", "snipers", "maps", "modes", "results", "missions", "missionsAll"} {
		v.SetDefault(key, []string{})
	}
	v.SetDefault("countdown", false)
	v.SetDefault("spyWin", false)
	v.SetDefault("sniperWin", false)
}

// Load sets defaults, reads the config file if one is given and pulls in SPYPARSEY_*
// environment variables. Flags are expected to be bound to v already.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	cfg.Format = strings.ToLower(cfg.Format)
	switch cfg.Format {
	case OutputSummary, OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	return cfg, nil
}

// Output picks the output mode. Count beats paths beats csv beats table beats the
// format setting.
func (c *Config) Output() string {
	switch {
	case c.Count:
		return OutputCount
	case c.ShowPaths:
		return OutputPaths
	case c.CSV:
		return OutputCSV
	case c.Table:
		return OutputTable
	default:
		return c.Format
	}
}

// DefaultReplayDir is where SpyParty keeps its replays on Windows.
func DefaultReplayDir() (string, error) {
	appData := os.Getenv("LOCALAPPDATA")
	if appData == "" {
		return "", ErrNoReplayDir
	}
	return filepath.Join(appData, "SpyParty", "replays"), nil
}

// ReplayPaths returns the configured paths, falling back to DefaultReplayDir.
func (c *Config) ReplayPaths() ([]string, error) {
	if len(c.Paths) > 0 {
		return c.Paths, nil
	}
	dir, err := DefaultReplayDir()
	if err != nil {
		return nil, err
	}
	return []string{dir}, nil
}

// UsesPlayerFilters tells whether any of the player filters were given, in which case the
// summary shows win/loss stats.
func (f *Filters) UsesPlayerFilters() bool {
	return len(f.Players) > 0 || len(f.Pair) > 0 || len(f.Spies) > 0 || len(f.Snipers) > 0
}
