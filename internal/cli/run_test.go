package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceTopologyYAML = `
nodes:
  - name: tracked_rows
    kind: table_source
  - name: derived
    kind: derived
    inputs:
      - node: tracked_rows
        handler: absorb
`

func TestRunCommandExecutesIterations(t *testing.T) {
	topoPath := writeTempTopology(t, sourceTopologyYAML)
	dbPath := filepath.Join(t.TempDir(), "ctrlgraph.db")

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"run", "--db", dbPath, "--iterations", "2", topoPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "iteration 0")
	assert.Contains(t, out.String(), "iteration 1")
}

func TestRunCommandRequiresDatabaseFlag(t *testing.T) {
	topoPath := writeTempTopology(t, sourceTopologyYAML)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", topoPath})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestRunCommandRejectsMissingTopology(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ctrlgraph.db")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"run", "--db", dbPath, "/nonexistent/topology.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
