package engine

// dagValidator tracks the input-edge adjacency of the DAG under
// construction and answers reachability queries used to reject edges
// that would introduce a cycle.
//
// Edges run "node -> input": node depends on input. Adding an edge
// from -> to creates a cycle exactly when to can already reach from
// through existing edges, i.e. to (transitively) depends on from.
//
// dagValidator is only consulted during construction (AddInput); once
// Init has run the DAG is frozen and no further cycle checks occur.
type dagValidator struct {
	adjacency map[string][]string // node name -> its declared input names
}

func newDAGValidator() *dagValidator {
	return &dagValidator{adjacency: make(map[string][]string)}
}

// wouldCycle reports whether adding the edge from -> to would create a
// cycle, i.e. whether to can already reach from via existing edges.
func (d *dagValidator) wouldCycle(from, to string) bool {
	if from == to {
		return true
	}
	visited := make(map[string]bool)
	return d.reaches(to, from, visited)
}

func (d *dagValidator) reaches(start, target string, visited map[string]bool) bool {
	if start == target {
		return true
	}
	if visited[start] {
		return false
	}
	visited[start] = true
	for _, next := range d.adjacency[start] {
		if d.reaches(next, target, visited) {
			return true
		}
	}
	return false
}

// addEdge records that node depends on input. Callers must have already
// verified wouldCycle(node, input) is false.
func (d *dagValidator) addEdge(node, input string) {
	d.adjacency[node] = append(d.adjacency[node], input)
}

// topoOrder returns node names in reverse topological order (inputs
// before dependents), rooted at the given root names. Each name appears
// at most once, the first time it becomes reachable by a DFS that
// visits a node's inputs before the node itself.
func topoOrder(adjacency map[string][]string, roots []string) []string {
	var order []string
	visited := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, input := range adjacency[name] {
			visit(input)
		}
		order = append(order, name)
	}
	for _, root := range roots {
		visit(root)
	}
	return order
}
