package graph

import (
	"maps"
	"slices"
)

// DependencyGraph is a directed adjacency-list graph. It is adapted from
// this pipeline's probabilistic graph model with the probability and
// property-bag machinery stripped out: an edge either exists or it
// doesn't, which is all §4.4's dependency queries need.
type DependencyGraph struct {
	nodeMap map[NodeID]struct{}
	order   []NodeID // insertion order, kept for deterministic iteration
	edgeMap map[EdgeID]*Edge
	out     map[NodeID]map[NodeID]*Edge
	in      map[NodeID]map[NodeID]*Edge
}

func CreateDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodeMap: make(map[NodeID]struct{}),
		edgeMap: make(map[EdgeID]*Edge),
		out:     make(map[NodeID]map[NodeID]*Edge),
		in:      make(map[NodeID]map[NodeID]*Edge),
	}
}

func (g *DependencyGraph) AddNode(id NodeID) error {
	if g.ContainsNode(id) {
		return NodeAlreadyExists(id)
	}
	g.nodeMap[id] = struct{}{}
	g.order = append(g.order, id)
	g.out[id] = make(map[NodeID]*Edge)
	g.in[id] = make(map[NodeID]*Edge)
	return nil
}

// EnsureNode adds id if absent, without erroring. The Query Engine uses
// this when indexing a document: a `depends` reference may name a feature
// that was never declared, which is a diagnostic concern (MBEL-LINK
// undefined reference), not a reason to refuse building the graph.
func (g *DependencyGraph) EnsureNode(id NodeID) {
	if !g.ContainsNode(id) {
		_ = g.AddNode(id)
	}
}

func (g *DependencyGraph) ContainsNode(id NodeID) bool {
	_, ok := g.nodeMap[id]
	return ok
}

func (g *DependencyGraph) GetNodes() []NodeID {
	return slices.Clone(g.order)
}

func (g *DependencyGraph) RemoveNode(id NodeID) error {
	if !g.ContainsNode(id) {
		return NodeDoesNotExist(id)
	}
	for to, edge := range g.out[id] {
		delete(g.in[to], id)
		delete(g.edgeMap, edge.ID)
	}
	for from, edge := range g.in[id] {
		delete(g.out[from], id)
		delete(g.edgeMap, edge.ID)
	}
	delete(g.out, id)
	delete(g.in, id)
	delete(g.nodeMap, id)
	g.order = slices.DeleteFunc(g.order, func(n NodeID) bool { return n == id })
	return nil
}

func edgeID(from, to NodeID) EdgeID {
	return EdgeID(string(from) + "->" + string(to))
}

func (g *DependencyGraph) AddEdge(from, to NodeID) error {
	if !g.ContainsNode(from) {
		return NodeDoesNotExist(from)
	}
	if !g.ContainsNode(to) {
		return NodeDoesNotExist(to)
	}
	if g.ContainsEdge(from, to) {
		return EdgeAlreadyExists(edgeID(from, to))
	}
	e := &Edge{ID: edgeID(from, to), From: from, To: to}
	g.out[from][to] = e
	g.in[to][from] = e
	g.edgeMap[e.ID] = e
	return nil
}

// EnsureEdge adds both endpoints (if absent) and the edge itself (if
// absent), silently — the document-indexing counterpart to EnsureNode.
func (g *DependencyGraph) EnsureEdge(from, to NodeID) {
	g.EnsureNode(from)
	g.EnsureNode(to)
	if !g.ContainsEdge(from, to) {
		_ = g.AddEdge(from, to)
	}
}

func (g *DependencyGraph) RemoveEdge(from, to NodeID) error {
	if !g.ContainsNode(from) {
		return NodeDoesNotExist(from)
	}
	if !g.ContainsNode(to) {
		return NodeDoesNotExist(to)
	}
	if !g.ContainsEdge(from, to) {
		return EdgeDoesNotExist(from, to)
	}
	id := g.out[from][to].ID
	delete(g.out[from], to)
	delete(g.in[to], from)
	delete(g.edgeMap, id)
	return nil
}

func (g *DependencyGraph) ContainsEdge(from, to NodeID) bool {
	targets, ok := g.out[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// OutgoingEdges returns id's direct dependencies: the nodes it depends on.
func (g *DependencyGraph) OutgoingEdges(id NodeID) ([]NodeID, error) {
	if !g.ContainsNode(id) {
		return nil, NodeDoesNotExist(id)
	}
	return orderedKeys(g.out[id]), nil
}

// IncomingEdges returns id's direct dependents: the nodes that depend on it.
func (g *DependencyGraph) IncomingEdges(id NodeID) ([]NodeID, error) {
	if !g.ContainsNode(id) {
		return nil, NodeDoesNotExist(id)
	}
	return orderedKeys(g.in[id]), nil
}

// orderedKeys returns m's keys in a stable order (lexical by NodeID), since
// Go map iteration order is randomized and the query engine's results must
// be deterministic (§8 "Determinism").
func orderedKeys(m map[NodeID]*Edge) []NodeID {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

// Clone returns a deep copy independent of the original, used by
// simulate() so a hypothetical edit never touches the stored document's
// derived graph.
func (g *DependencyGraph) Clone() *DependencyGraph {
	clone := CreateDependencyGraph()
	for _, id := range g.order {
		_ = clone.AddNode(id)
	}
	for _, edge := range g.edgeMap {
		_ = clone.AddEdge(edge.From, edge.To)
	}
	return clone
}
