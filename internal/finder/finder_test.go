package finder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.replay"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "2018", "08", "b.replay"))
	touch(t, filepath.Join(dir, "2018", "c.replay.bak"))

	got := Find([]string{dir}, zerolog.Nop())
	assert.Equal(t, []string{
		filepath.Join(dir, "2018", "08", "b.replay"),
		filepath.Join(dir, "a.replay"),
	}, got)
}

func TestFind_FileAndMissingPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "single.replay")
	touch(t, file)

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	got := Find([]string{filepath.Join(dir, "missing"), file}, log)
	assert.Equal(t, []string{file}, got)
	assert.Contains(t, buf.String(), "Failed to read path")
}

func TestFind_Nothing(t *testing.T) {
	assert.Empty(t, Find(nil, zerolog.Nop()))
	assert.Empty(t, Find([]string{t.TempDir()}, zerolog.Nop()))
}
