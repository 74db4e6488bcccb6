package query

import (
	"context"
	"sort"

	"github.com/LoryBug/mbel/internal/graph"
	"github.com/LoryBug/mbel/internal/result"
)

// FeatureFilesQuery is getFeatureFiles(name): the files/tests/docs/entry
// point of one feature or task, or a nil Result if name is unknown.
type FeatureFilesQuery struct {
	Name string
}

func (q FeatureFilesQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	l, ok := e.features[q.Name]
	if !ok {
		return nil, nil
	}
	return result.FeatureFiles{
		Name:       l.Name,
		LinkType:   l.LinkType,
		Files:      l.Files,
		Tests:      l.Tests,
		Docs:       l.Docs,
		EntryPoint: l.EntryPoint,
	}, nil
}

func unknownFeature(name string) error {
	return QueryError{Kind: "UnknownFeature", Message: "no feature or task named " + name}
}

// FeatureDependenciesQuery is getFeatureDependencies(name): direct
// dependencies, the full transitive closure, and the closure's BFS depth.
type FeatureDependenciesQuery struct {
	Name string
}

func (q FeatureDependenciesQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if !e.depGraph.ContainsNode(graph.NodeID(q.Name)) {
		return nil, unknownFeature(q.Name)
	}

	direct, _ := e.depGraph.OutgoingEdges(graph.NodeID(q.Name))
	transitive := e.depGraph.TransitiveDependencies(graph.NodeID(q.Name))
	depth := bfsDepth(e.depGraph, graph.NodeID(q.Name))

	return result.Dependencies{
		Name:       q.Name,
		Direct:     sortedStrings(nodeIDsToStrings(direct)),
		Transitive: sortedStrings(nodeIDsToStrings(transitive)),
		Depth:      depth,
	}, nil
}

// bfsDepth returns the number of hops to the farthest node reachable from
// start, 0 if start has no outgoing edges.
func bfsDepth(g *graph.DependencyGraph, start graph.NodeID) int {
	visited := map[graph.NodeID]bool{start: true}
	frontier := []graph.NodeID{start}
	depth := 0
	for len(frontier) > 0 {
		var next []graph.NodeID
		for _, n := range frontier {
			out, _ := g.OutgoingEdges(n)
			for _, to := range out {
				if !visited[to] {
					visited[to] = true
					next = append(next, to)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		depth++
		frontier = next
	}
	return depth
}

// DependentsQuery is findDependents(name): the direct-only reverse
// adjacency set.
type DependentsQuery struct {
	Name string
}

func (q DependentsQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if !e.depGraph.ContainsNode(graph.NodeID(q.Name)) {
		return nil, unknownFeature(q.Name)
	}
	in, _ := e.depGraph.IncomingEdges(graph.NodeID(q.Name))
	return result.Dependents{
		Name:       q.Name,
		Dependents: sortedStrings(nodeIDsToStrings(in)),
	}, nil
}

// TransitiveDependenciesQuery is getTransitiveDependencies(name): the full
// cycle-safe forward closure.
type TransitiveDependenciesQuery struct {
	Name string
}

func (q TransitiveDependenciesQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	if !e.depGraph.ContainsNode(graph.NodeID(q.Name)) {
		return nil, unknownFeature(q.Name)
	}
	return result.TransitiveDependencies{
		Name:         q.Name,
		Dependencies: sortedStrings(nodeIDsToStrings(e.depGraph.TransitiveDependencies(graph.NodeID(q.Name)))),
	}, nil
}

// CircularDependenciesQuery is detectCircularDependencies(): every
// dependency cycle in the graph, in a stable order.
type CircularDependenciesQuery struct{}

func (q CircularDependenciesQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	cycles := e.depGraph.Cycles()
	out := make([][]string, len(cycles))
	for i, cycle := range cycles {
		out[i] = nodeIDsToStrings(cycle)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return result.CircularDependencies{Cycles: out}, nil
}
