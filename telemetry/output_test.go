package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/concrete/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	require.Nil(t, om)

	// Nil manager is a no-op
	assert.NoError(t, om.WriteWindow(WindowStats{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, "x", 1))
	assert.NoError(t, om.WriteConfig(nil))
	assert.NoError(t, om.Close())
	assert.Empty(t, om.Dir())
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, om.Dir())

	runID := NewRunID()
	require.NoError(t, om.WriteWindow(WindowStats{RunID: runID, WindowEndFrame: 100, Policy: "heartbeat"}))
	require.NoError(t, om.WriteWindow(WindowStats{RunID: runID, WindowEndFrame: 200, Policy: "escape"}))
	require.NoError(t, om.WritePerf(PerfStats{}, runID, 100))

	cfg, err := config.Defaults()
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "one header and two records")
	assert.True(t, strings.HasPrefix(lines[0], "run_id,window_end,"))
	assert.Contains(t, lines[2], "escape")

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
