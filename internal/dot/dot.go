// Package dot renders a constructed node DAG as Graphviz DOT source,
// for the CLI's graph subcommand.
package dot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/netfab/ctrlgraph/internal/engine"
	"github.com/netfab/ctrlgraph/internal/ir"
)

// stateColors maps a node's last-iteration state to the fill color used
// when rendering it, so a freshly-run engine's graph visually surfaces
// what changed.
var stateColors = map[ir.NodeState]string{
	ir.Stale:     "lightgray",
	ir.Updated:   "palegreen",
	ir.Unchanged: "white",
	ir.Canceled:  "lightcoral",
}

// Render returns the DOT source for e's node DAG: one node per
// registered node, one edge per declared input, colored by the node's
// last-iteration state.
func Render(e *engine.Engine, graphName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %s {\n", quoteID(graphName))
	b.WriteString("  rankdir=BT;\n")

	names := e.NodeNames()
	sortedNames := make([]string, len(names))
	copy(sortedNames, names)
	sort.Strings(sortedNames)

	for _, name := range sortedNames {
		n := e.Node(name)
		color := stateColors[n.State()]
		fmt.Fprintf(&b, "  %s [label=%q, style=filled, fillcolor=%s];\n",
			quoteID(name), fmt.Sprintf("%s\\n(%s)", name, n.State()), color)
	}

	for _, name := range names {
		for _, input := range e.NodeInputNames(name) {
			fmt.Fprintf(&b, "  %s -> %s;\n", quoteID(input), quoteID(name))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func quoteID(s string) string {
	return fmt.Sprintf("%q", s)
}
