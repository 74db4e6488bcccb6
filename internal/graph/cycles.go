package graph

// Cycles returns every directed cycle in the graph as a node sequence that
// starts and ends at the same node. Strongly connected components are
// found with Tarjan's algorithm (the spec mandates only the result
// semantics, not the algorithm); any SCC larger than one node, or a single
// node with a self-edge, is a cycle.
func (g *DependencyGraph) Cycles() [][]NodeID {
	t := &tarjan{
		graph:   g,
		index:   map[NodeID]int{},
		lowlink: map[NodeID]int{},
		onStack: map[NodeID]bool{},
	}
	for _, id := range g.GetNodes() {
		if _, visited := t.index[id]; !visited {
			t.strongConnect(id)
		}
	}

	var cycles [][]NodeID
	for _, scc := range t.sccs {
		if len(scc) > 1 {
			cycles = append(cycles, closeCycle(g, scc))
			continue
		}
		n := scc[0]
		if g.ContainsEdge(n, n) {
			cycles = append(cycles, []NodeID{n, n})
		}
	}
	return cycles
}

type tarjan struct {
	graph   *DependencyGraph
	index   map[NodeID]int
	lowlink map[NodeID]int
	onStack map[NodeID]bool
	stack   []NodeID
	counter int
	sccs    [][]NodeID
}

func (t *tarjan) strongConnect(v NodeID) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	out, _ := t.graph.OutgoingEdges(v)
	for _, w := range out {
		if _, visited := t.index[w]; !visited {
			t.strongConnect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] == t.index[v] {
		var scc []NodeID
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// closeCycle orders an SCC's members into a single path from an arbitrary
// entry node back to itself, following outgoing edges that stay within the
// SCC — giving callers a concrete witness cycle rather than just the
// unordered component.
func closeCycle(g *DependencyGraph, scc []NodeID) []NodeID {
	inSCC := make(map[NodeID]bool, len(scc))
	for _, n := range scc {
		inSCC[n] = true
	}
	start := scc[0]
	path := []NodeID{start}
	visited := map[NodeID]bool{start: true}
	cur := start
	for {
		out, _ := g.OutgoingEdges(cur)
		var next NodeID
		found := false
		for _, to := range out {
			if inSCC[to] && (!visited[to] || to == start) {
				next = to
				found = true
				break
			}
		}
		if !found {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		visited[next] = true
		cur = next
	}
	if path[len(path)-1] != start {
		path = append(path, start)
	}
	return path
}
