package dot

import (
	"context"
	"testing"

	"github.com/netfab/ctrlgraph/internal/engine"
	"github.com/netfab/ctrlgraph/internal/ir"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIncludesNodesAndEdges(t *testing.T) {
	e := engine.New()
	source, err := e.AddNode("source", func(n *engine.Node, data any) ir.NodeState { return ir.Updated })
	require.NoError(t, err)
	dependent, err := e.AddNode("dependent", func(n *engine.Node, data any) ir.NodeState { return ir.Updated })
	require.NoError(t, err)
	require.NoError(t, e.AddInput(dependent, source, nil))

	require.NoError(t, e.Init(nil))
	require.NoError(t, e.Run(context.Background(), true))

	out := Render(e, "topology")
	assert.Contains(t, out, `digraph "topology"`)
	assert.Contains(t, out, `"source"`)
	assert.Contains(t, out, `"dependent"`)
	assert.Contains(t, out, `"source" -> "dependent"`)
}

// TestRenderGolden pins the exact DOT rendering of a small fanned-in DAG
// so a change to node/edge formatting is visible in the diff. Run with
// `go test ./internal/dot -update` to regenerate after an intentional
// rendering change.
func TestRenderGolden(t *testing.T) {
	e := engine.New()
	a, err := e.AddNode("a", func(n *engine.Node, data any) ir.NodeState { return ir.Updated })
	require.NoError(t, err)
	b, err := e.AddNode("b", func(n *engine.Node, data any) ir.NodeState { return ir.Updated })
	require.NoError(t, err)
	c, err := e.AddNode("c", func(n *engine.Node, data any) ir.NodeState { return ir.Updated })
	require.NoError(t, err)
	require.NoError(t, e.AddInput(c, a, nil))
	require.NoError(t, e.AddInput(c, b, nil))

	require.NoError(t, e.Init(nil))
	require.NoError(t, e.Run(context.Background(), true))

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "fanin_dag", []byte(Render(e, "fanin")))
}
