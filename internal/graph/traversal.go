package graph

// TransitiveDependencies performs a cycle-safe depth-first traversal
// forward from id, returning every reachable node (not including id
// itself) in first-visit order.
func (g *DependencyGraph) TransitiveDependencies(id NodeID) []NodeID {
	return g.transitiveWalk(id, func(n NodeID) []NodeID {
		out, _ := g.OutgoingEdges(n)
		return out
	})
}

// TransitiveDependents mirrors TransitiveDependencies over incoming edges.
func (g *DependencyGraph) TransitiveDependents(id NodeID) []NodeID {
	return g.transitiveWalk(id, func(n NodeID) []NodeID {
		in, _ := g.IncomingEdges(n)
		return in
	})
}

func (g *DependencyGraph) transitiveWalk(id NodeID, neighbors func(NodeID) []NodeID) []NodeID {
	if !g.ContainsNode(id) {
		return nil
	}
	visited := map[NodeID]bool{id: true}
	var order []NodeID
	var visit func(NodeID)
	visit = func(n NodeID) {
		for _, next := range neighbors(n) {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			visit(next)
		}
	}
	visit(id)
	return order
}

// Reaches reports whether to is reachable from from via outgoing edges.
// simulate()'s add-dep cycle check is exactly "would this new edge make
// `to` reach back to `from`".
func (g *DependencyGraph) Reaches(from, to NodeID) bool {
	if from == to {
		return true
	}
	if !g.ContainsNode(from) {
		return false
	}
	visited := map[NodeID]bool{from: true}
	var visit func(NodeID) bool
	visit = func(n NodeID) bool {
		out, _ := g.OutgoingEdges(n)
		for _, next := range out {
			if next == to {
				return true
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			if visit(next) {
				return true
			}
		}
		return false
	}
	return visit(from)
}
