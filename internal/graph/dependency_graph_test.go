package graph

import "testing"

func TestAddNodeRejectsDuplicate(t *testing.T) {
	g := CreateDependencyGraph()
	if err := g.AddNode("a"); err != nil {
		t.Fatalf("AddNode(a) = %v, want nil", err)
	}
	if err := g.AddNode("a"); err == nil {
		t.Error("AddNode(a) a second time should fail")
	}
}

func TestEnsureNodeIsIdempotent(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureNode("a")
	g.EnsureNode("a")
	if !g.ContainsNode("a") {
		t.Fatal("expected node a to exist")
	}
	if len(g.GetNodes()) != 1 {
		t.Errorf("got %d nodes, want 1", len(g.GetNodes()))
	}
}

func TestEnsureEdgeCreatesMissingEndpoints(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "b")
	if !g.ContainsNode("a") || !g.ContainsNode("b") {
		t.Fatal("EnsureEdge should create both endpoints")
	}
	if !g.ContainsEdge("a", "b") {
		t.Error("expected edge a->b")
	}

	g.EnsureEdge("a", "b")
	out, _ := g.OutgoingEdges("a")
	if len(out) != 1 {
		t.Errorf("EnsureEdge should not duplicate an existing edge, got %v", out)
	}
}

func TestOutgoingAndIncomingEdges(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "b")
	g.EnsureEdge("a", "c")

	out, err := g.OutgoingEdges("a")
	if err != nil {
		t.Fatalf("OutgoingEdges(a) error: %v", err)
	}
	if len(out) != 2 || out[0] != "b" || out[1] != "c" {
		t.Errorf("OutgoingEdges(a) = %v, want [b c]", out)
	}

	in, err := g.IncomingEdges("b")
	if err != nil {
		t.Fatalf("IncomingEdges(b) error: %v", err)
	}
	if len(in) != 1 || in[0] != "a" {
		t.Errorf("IncomingEdges(b) = %v, want [a]", in)
	}

	if _, err := g.OutgoingEdges("ghost"); err == nil {
		t.Error("OutgoingEdges on an unknown node should error")
	}
}

func TestRemoveNodeClearsEdges(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "b")
	g.EnsureEdge("b", "c")

	if err := g.RemoveNode("b"); err != nil {
		t.Fatalf("RemoveNode(b) = %v", err)
	}
	if g.ContainsNode("b") {
		t.Error("b should no longer exist")
	}
	out, _ := g.OutgoingEdges("a")
	if len(out) != 0 {
		t.Errorf("a's edge to removed node b should be gone, got %v", out)
	}
	if !g.ContainsNode("c") {
		t.Error("c should survive removal of b")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "b")

	if err := g.RemoveEdge("a", "b"); err != nil {
		t.Fatalf("RemoveEdge(a,b) = %v", err)
	}
	if g.ContainsEdge("a", "b") {
		t.Error("edge a->b should be gone")
	}
	if err := g.RemoveEdge("a", "b"); err == nil {
		t.Error("removing an already-removed edge should error")
	}
}

func TestTransitiveDependenciesAndDependents(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("api", "auth")
	g.EnsureEdge("auth", "core")

	deps := g.TransitiveDependencies("api")
	if !containsNode(deps, "auth") || !containsNode(deps, "core") {
		t.Errorf("TransitiveDependencies(api) = %v, want both auth and core", deps)
	}

	dependents := g.TransitiveDependents("core")
	if !containsNode(dependents, "auth") || !containsNode(dependents, "api") {
		t.Errorf("TransitiveDependents(core) = %v, want both auth and api", dependents)
	}
}

func TestReaches(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("api", "auth")
	g.EnsureEdge("auth", "core")

	if !g.Reaches("api", "core") {
		t.Error("api should reach core transitively")
	}
	if g.Reaches("core", "api") {
		t.Error("core should not reach api")
	}
}

func TestCyclesDetectsSelfLoop(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "a")

	cycles := g.Cycles()
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1", len(cycles))
	}
}

func TestCyclesDetectsMutualDependency(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "b")
	g.EnsureEdge("b", "a")

	cycles := g.Cycles()
	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1: %v", len(cycles), cycles)
	}
	if len(cycles[0]) < 2 {
		t.Errorf("cycle witness too short: %v", cycles[0])
	}
}

func TestCyclesEmptyOnAcyclicGraph(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "b")
	g.EnsureEdge("b", "c")

	if cycles := g.Cycles(); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := CreateDependencyGraph()
	g.EnsureEdge("a", "b")

	clone := g.Clone()
	if !clone.ContainsNode("a") || !clone.ContainsEdge("a", "b") {
		t.Fatal("clone should carry over nodes and edges")
	}

	clone.EnsureEdge("b", "c")
	if g.ContainsNode("c") {
		t.Error("mutating the clone must not affect the original graph")
	}

	if err := clone.RemoveNode("a"); err != nil {
		t.Fatalf("RemoveNode on clone failed: %v", err)
	}
	if !g.ContainsNode("a") {
		t.Error("removing a node from the clone must not affect the original graph")
	}
}

func containsNode(nodes []NodeID, id NodeID) bool {
	for _, n := range nodes {
		if n == id {
			return true
		}
	}
	return false
}
