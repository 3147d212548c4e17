package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempTopology(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const validTopologyYAML = `
nodes:
  - name: source
    kind: table_source
  - name: derived
    kind: derived
    inputs:
      - node: source
        handler: absorb
`

func TestValidateCommandAcceptsValidTopology(t *testing.T) {
	path := writeTempTopology(t, validTopologyYAML)

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"validate", path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "valid")
}

func TestValidateCommandRejectsDuplicateNames(t *testing.T) {
	path := writeTempTopology(t, `
nodes:
  - name: a
    kind: k1
  - name: a
    kind: k2
`)

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"validate", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidateCommandRejectsMissingFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"validate", "/nonexistent/topology.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateCommandJSONOutput(t *testing.T) {
	path := writeTempTopology(t, validTopologyYAML)

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--format", "json", "validate", path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"valid"`)
}
