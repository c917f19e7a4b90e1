package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LtHummus/spyparsey/internal/output"
	"github.com/LtHummus/spyparsey/spyparty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReplay(t *testing.T, dir, name string, id uint64, spy, sniper string, m spyparty.Map, res spyparty.GameResult) {
	t.Helper()
	simple := false
	h := &spyparty.Header{
		ReplayVersion:   4,
		ProtocolVersion: 23,
		SpyPartyVersion: 6134,
		Duration:        120,
		GameID:          spyparty.NewGameID(0, id),
		StartTime:       uint32(1534431600 + id),
		Latency:         0.75,
		SpyUserName:     spy,
		SniperUserName:  sniper,
		Result: spyparty.ResultData{
			Version:              1,
			SimpleRules:          &simple,
			GameResult:           res,
			GameMode:             spyparty.AnyMode(4, 7),
			Map:                  m,
			SelectedMissions:     spyparty.UnpackMissions(0x7f),
			PickedMissions:       spyparty.UnpackMissions(0),
			CompletedMissions:    spyparty.UnpackMissions(0x0f),
			CompletedMissionsRaw: 0x0f,
		},
	}
	b, err := h.MarshalBinary()
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, b, 0644))
}

func fixtures(t *testing.T) string {
	dir := t.TempDir()
	writeReplay(t, dir, "a.replay", 1, "plastikqs", "lthummus", spyparty.Balcony, spyparty.MissionsWin)
	writeReplay(t, dir, "2018/b.replay", 2, "lthummus", "plastikqs", spyparty.Pub, spyparty.SpyShot)
	writeReplay(t, dir, "2018/c.replay", 3, "someone", "other", spyparty.Pub, spyparty.SpyTimeout)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.replay"), []byte("not a replay"), 0644))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_Count(t *testing.T) {
	dir := fixtures(t)

	out, _, err := execute(t, dir, "--count")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, _, err = execute(t, dir, "--count", "--players", "plastikqs")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, _, err = execute(t, dir, "--count", "--maps", "pub", "--sniper-win")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestRoot_ShowPathsSortedByStart(t *testing.T) {
	dir := fixtures(t)

	out, _, err := execute(t, dir, "--show-paths", "--maps", "pub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2018", "b.replay")+"\n"+filepath.Join(dir, "2018", "c.replay")+"\n", out)
}

func TestRoot_Summary(t *testing.T) {
	dir := fixtures(t)

	out, _, err := execute(t, dir, "--spies", "plastikqs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Total Replays:\n    1\n"))
	assert.Contains(t, out, "Player Stats:\n    plastikqs: 1W 0L (100.0%)\n")
	assert.Contains(t, out, "Maps Played:\n    Balcony: 1 (100.0%)\n")
}

func TestRoot_JSON(t *testing.T) {
	dir := fixtures(t)

	out, _, err := execute(t, dir, "--format", "json", "--results", "spyshot")
	require.NoError(t, err)

	var got []output.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "lthummus", got[0].Spy)
	assert.Equal(t, "plastikqs", got[0].Winner)
}

func TestRoot_Table(t *testing.T) {
	dir := fixtures(t)

	out, _, err := execute(t, dir, "--table", "--pair", "plastikqs,lthummus")
	require.NoError(t, err)
	assert.Contains(t, out, "plastikqs as spy\n")
	assert.Contains(t, out, "lthummus as sniper\n")

	_, _, err = execute(t, dir, "--table")
	assert.ErrorIs(t, err, output.ErrNoPlayers)
}

func TestRoot_DB(t *testing.T) {
	dir := fixtures(t)
	db := filepath.Join(t.TempDir(), "replays.db")

	_, _, err := execute(t, dir, "--count", "--db", db)
	require.NoError(t, err)
	assert.FileExists(t, db)
}

func TestRoot_LogsBrokenReplays(t *testing.T) {
	dir := fixtures(t)

	_, stderr, err := execute(t, dir, "--count", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "junk.replay")
	assert.Contains(t, stderr, "Parsed 3 out of 4 replays, 3 matched")
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := fixtures(t)
	cfg := filepath.Join(t.TempDir(), "spyparsey.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("count: true\nmaps: [balcony]\n"), 0644))

	out, _, err := execute(t, dir, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestRoot_BadFlags(t *testing.T) {
	dir := fixtures(t)

	_, _, err := execute(t, dir, "--players", "a", "--pair", "b")
	assert.Error(t, err)

	_, _, err = execute(t, dir, "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
