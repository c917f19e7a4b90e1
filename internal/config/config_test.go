package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Empty(t, cfg.Paths)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 0, cfg.Verbosity)
	assert.Equal(t, "", cfg.DB)
	assert.Equal(t, OutputSummary, cfg.Output())
	assert.Empty(t, cfg.Filters.Players)
	assert.False(t, cfg.Filters.Countdown)
	assert.False(t, cfg.Filters.UsesPlayerFilters())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "spyparsey.yaml")
	cfg := `
workers: 3
logLevel: debug
db: replays.db
format: JSON
players: [plastikqs, lthummus]
maps: [balcony]
spyWin: true
`
	require.NoError(t, os.WriteFile(file, []byte(cfg), 0644))

	c, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "replays.db", c.DB)
	assert.Equal(t, OutputJSON, c.Output())
	assert.Equal(t, []string{"plastikqs", "lthummus"}, c.Filters.Players)
	assert.Equal(t, []string{"balcony"}, c.Filters.Maps)
	assert.True(t, c.Filters.SpyWin)
	assert.True(t, c.Filters.UsesPlayerFilters())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SPYPARSEY_WORKERS", "7")
	t.Setenv("SPYPARSEY_SNIPERS", "a,b")
	t.Setenv("SPYPARSEY_COUNTDOWN", "true")

	c, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 7, c.Workers)
	assert.Equal(t, []string{"a", "b"}, c.Filters.Snipers)
	assert.True(t, c.Filters.Countdown)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), "/nonexistent/path/spyparsey.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_BadFormat(t *testing.T) {
	v := viper.New()
	v.Set("format", "xml")

	_, err := Load(v, "")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestLoad_WorkersFallBack(t *testing.T) {
	v := viper.New()
	v.Set("workers", 0)

	c, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
}

func TestConfig_Output(t *testing.T) {
	c := &Config{Format: OutputYAML}
	assert.Equal(t, OutputYAML, c.Output())

	c.Table = true
	assert.Equal(t, OutputTable, c.Output())
	c.CSV = true
	assert.Equal(t, OutputCSV, c.Output())
	c.ShowPaths = true
	assert.Equal(t, OutputPaths, c.Output())
	c.Count = true
	assert.Equal(t, OutputCount, c.Output())
}

func TestReplayPaths(t *testing.T) {
	t.Setenv("LOCALAPPDATA", "")
	_, err := (&Config{}).ReplayPaths()
	assert.ErrorIs(t, err, ErrNoReplayDir)

	appData := t.TempDir()
	t.Setenv("LOCALAPPDATA", appData)
	paths, err := (&Config{}).ReplayPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(appData, "SpyParty", "replays")}, paths)

	paths, err = (&Config{Paths: []string{"a", "b"}}).ReplayPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, paths)
}
