package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCommandReportsCounters(t *testing.T) {
	topoPath := writeTempTopology(t, sourceTopologyYAML)
	dbPath := filepath.Join(t.TempDir(), "ctrlgraph.db")

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"stats", "--db", dbPath, topoPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "iterations: 1")
	assert.Contains(t, out.String(), "tracked_rows")
	assert.Contains(t, out.String(), "derived")
}

func TestStatsCommandJSONOutput(t *testing.T) {
	topoPath := writeTempTopology(t, sourceTopologyYAML)
	dbPath := filepath.Join(t.TempDir(), "ctrlgraph.db")

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--format", "json", "stats", "--db", dbPath, topoPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"nodes"`)
}
