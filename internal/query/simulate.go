package query

import (
	"context"
	"fmt"

	"github.com/LoryBug/mbel/internal/graph"
	"github.com/LoryBug/mbel/internal/result"
)

// SimulationOp is the closed set of hypothetical edits simulate() can
// apply to a copy of the dependency graph (§4.4).
type SimulationOp int

const (
	SimAddDependency SimulationOp = iota
	SimRemoveDependency
	SimAddFeature
	SimRemoveFeature
)

// SimulateQuery is simulate(op): From/To identify the dependency edge for
// add-dep/remove-dep; Feature identifies the node for add-feature/
// remove-feature. It never mutates the Engine's own graph.
type SimulateQuery struct {
	Op      SimulationOp
	From    string
	To      string
	Feature string
}

func (q SimulateQuery) action() string {
	switch q.Op {
	case SimAddDependency:
		return fmt.Sprintf("add-dep %s -> %s", q.From, q.To)
	case SimRemoveDependency:
		return fmt.Sprintf("remove-dep %s -> %s", q.From, q.To)
	case SimAddFeature:
		return fmt.Sprintf("add-feature %s", q.Feature)
	case SimRemoveFeature:
		return fmt.Sprintf("remove-feature %s", q.Feature)
	default:
		return "unknown"
	}
}

func (q SimulateQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	clone := e.depGraph.Clone()
	totalBefore := len(clone.GetNodes())

	switch q.Op {
	case SimAddDependency:
		from, to := graph.NodeID(q.From), graph.NodeID(q.To)
		if clone.Reaches(to, from) {
			return result.Simulation{
				Action:   q.action(),
				Circular: true,
			}, nil
		}
		clone.EnsureEdge(from, to)
		return e.simulationResult(q.action(), clone, totalBefore, []string{q.From, q.To}, nil), nil

	case SimRemoveDependency:
		from, to := graph.NodeID(q.From), graph.NodeID(q.To)
		_ = clone.RemoveEdge(from, to)
		return e.simulationResult(q.action(), clone, totalBefore, []string{q.From, q.To}, nil), nil

	case SimAddFeature:
		clone.EnsureNode(graph.NodeID(q.Feature))
		return e.simulationResult(q.action(), clone, totalBefore, []string{q.Feature}, nil), nil

	case SimRemoveFeature:
		in, _ := clone.IncomingEdges(graph.NodeID(q.Feature))
		breaking := nodeIDsToStrings(in)
		_ = clone.RemoveNode(graph.NodeID(q.Feature))
		return e.simulationResult(q.action(), clone, totalBefore, []string{q.Feature}, breaking), nil

	default:
		return nil, QueryError{Kind: "InvalidOp", Message: "simulate: unrecognized operation"}
	}
}

// simulationResult computes the shared fields (impact level, affected
// features, graph position, suggested tests) for every op shape.
func (e *Engine) simulationResult(action string, clone *graph.DependencyGraph, totalBefore int, touched []string, breaking []string) result.Simulation {
	affected := map[string]bool{}
	for _, node := range touched {
		affected[node] = true
		for _, dep := range clone.TransitiveDependents(graph.NodeID(node)) {
			affected[string(dep)] = true
		}
	}
	for _, b := range breaking {
		affected[b] = true
	}

	total := totalBefore
	if total == 0 {
		total = 1
	}
	fraction := float64(len(affected)) / float64(total)
	level := result.ImpactLow
	switch {
	case fraction > 0.5:
		level = result.ImpactHigh
	case fraction > 0.2:
		level = result.ImpactMedium
	}

	var tests []string
	for feature := range affected {
		if l, ok := e.features[feature]; ok {
			for _, t := range l.Tests {
				tests = append(tests, t.Path)
			}
		}
	}

	return result.Simulation{
		Action:             action,
		Circular:           false,
		NewDependencies:    touched,
		AffectedFeatures:   sortedStrings(keysOf(affected)),
		ImpactLevel:        level,
		BreakingDependents: sortedStrings(breaking),
		GraphPosition:      fmt.Sprintf("%d node(s), %d affected", total, len(affected)),
		SuggestedTests:     sortedStrings(tests),
	}
}
