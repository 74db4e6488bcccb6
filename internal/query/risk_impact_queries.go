package query

import (
	"context"
	"fmt"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/globsyntax"
	"github.com/LoryBug/mbel/internal/graph"
	"github.com/LoryBug/mbel/internal/result"
)

// heatForPath returns the heat entry that covers path: an exact path
// match wins, otherwise the first glob entry (in document order) whose
// pattern matches.
func (e *Engine) heatForPath(path string) *ast.HeatDeclaration {
	if h, ok := e.heat[path]; ok && !h.IsGlob {
		return h
	}
	for _, h := range e.heatGlobs {
		if globsyntax.Match(h.Path, path) {
			return h
		}
	}
	if h, ok := e.heat[path]; ok {
		return h
	}
	return nil
}

// hotspotCoversPath reports whether any hotspot anchor names path
// exactly or via a matching glob.
func (e *Engine) hotspotCoversPath(path string) bool {
	for _, a := range e.anchorsByType[ast.AnchorHotspot] {
		if a.Path == path {
			return true
		}
		if a.IsGlob && globsyntax.Match(a.Path, path) {
			return true
		}
	}
	return false
}

// featuresContainingPath returns the features that mention path as a
// file, test, or doc.
func (e *Engine) featuresContainingPath(path string) []string {
	mentions := e.fileIndex[path]
	seen := map[string]bool{}
	var out []string
	for _, m := range mentions {
		if !seen[m.Feature] {
			seen[m.Feature] = true
			out = append(out, m.Feature)
		}
	}
	return sortedStrings(out)
}

// EditRiskQuery is getEditRisk(path).
type EditRiskQuery struct {
	Path string
}

func (q EditRiskQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	return e.editRisk(q.Path), nil
}

func (e *Engine) editRisk(path string) result.RiskAssessment {
	features := e.featuresContainingPath(path)
	heat := e.heatForPath(path)

	if len(features) == 0 && heat == nil {
		return result.RiskAssessment{Path: path, Level: result.RiskUnknown}
	}

	var reasons []string
	level := result.RiskLow

	if heat != nil {
		switch heat.HeatType {
		case ast.HeatCritical:
			reasons = append(reasons, "critical heat level")
			level = result.RiskHigh
		case ast.HeatHot:
			reasons = append(reasons, "hot heat level")
			level = result.RiskHigh
		case ast.HeatVolatile:
			reasons = append(reasons, "volatile heat level")
			if level != result.RiskHigh {
				level = result.RiskMedium
			}
		case ast.HeatStable:
			reasons = append(reasons, "stable")
		}
	}

	if e.hotspotCoversPath(path) {
		reasons = append(reasons, "hotspot area")
		level = result.RiskHigh
	}

	stable := heat != nil && heat.HeatType == ast.HeatStable
	maxDependents := 0
	for _, feature := range features {
		in, _ := e.depGraph.IncomingEdges(graph.NodeID(feature))
		if len(in) > maxDependents {
			maxDependents = len(in)
		}
	}
	if maxDependents > 0 && !stable {
		reasons = append(reasons, fmt.Sprintf("has %d dependent(s)", maxDependents))
		if level != result.RiskHigh {
			level = result.RiskMedium
		}
	}

	var recommendations []string
	if level != result.RiskLow {
		recommendations = append(recommendations, "run affected tests")
		if maxDependents > 0 {
			recommendations = append(recommendations, "review dependents before merging")
		}
	}

	return result.RiskAssessment{
		Path:            path,
		Level:           level,
		Reasons:         reasons,
		Recommendations: recommendations,
	}
}

// ImpactAnalysisQuery is getImpactAnalysis(files).
type ImpactAnalysisQuery struct {
	Files []string
}

func (q ImpactAnalysisQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	return e.impactAnalysis(q.Files), nil
}

func (e *Engine) impactAnalysis(files []string) result.Impact {
	affected := map[string]bool{}
	for _, f := range files {
		for _, feature := range e.featuresContainingPath(f) {
			affected[feature] = true
		}
	}

	dependents := map[string]bool{}
	for feature := range affected {
		for _, dep := range e.depGraph.TransitiveDependents(graph.NodeID(feature)) {
			dependents[string(dep)] = true
		}
	}

	tests := map[string]bool{}
	for feature := range unionSets(affected, dependents) {
		if l, ok := e.features[feature]; ok {
			for _, t := range l.Tests {
				tests[t.Path] = true
			}
		}
	}

	affectedFiles := map[string]bool{}
	for _, f := range files {
		if h := e.heatForPath(f); h != nil {
			for _, dep := range h.Dependents {
				affectedFiles[dep] = true
			}
		}
	}

	return result.Impact{
		InputFiles:        files,
		AffectedFeatures:  sortedStrings(keysOf(affected)),
		DependentFeatures: sortedStrings(keysOf(dependents)),
		TransitiveImpact:  sortedStrings(keysOf(unionSets(affected, dependents))),
		AffectedTests:     sortedStrings(keysOf(tests)),
		AffectedFiles:     sortedStrings(keysOf(affectedFiles)),
	}
}

func unionSets(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// WorkContextQuery is getWorkContext(feature): the feature's files/tests,
// its direct+transitive dependencies and dependents, the decisions
// reachable by following `related` links, the anchors and heat entries
// covering its files, and an overall risk assessment — composed entirely
// from the other indices, no new storage.
type WorkContextQuery struct {
	Feature string
}

func (q WorkContextQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	l, ok := e.features[q.Feature]
	if !ok {
		return nil, unknownFeature(q.Feature)
	}

	deps := e.depGraph.TransitiveDependencies(graph.NodeID(q.Feature))
	dependents := e.depGraph.TransitiveDependents(graph.NodeID(q.Feature))

	decisions := e.decisionsReachableViaRelated(q.Feature)

	var anchors []ast.AnchorDeclaration
	for _, f := range l.Files {
		if a, ok := e.anchors[f.Path]; ok {
			anchors = append(anchors, *a)
		}
	}

	var heat []ast.HeatDeclaration
	for _, f := range l.Files {
		if h := e.heatForPath(f.Path); h != nil {
			heat = append(heat, *h)
		}
	}

	risk := result.RiskAssessment{Path: q.Feature, Level: result.RiskLow}
	if len(l.Files) > 0 {
		risk = e.editRisk(l.Files[0].Path)
		risk.Path = q.Feature
	}

	return result.WorkContext{
		Feature:      q.Feature,
		Files:        l.Files,
		Tests:        l.Tests,
		EntryPoint:   l.EntryPoint,
		Dependencies: sortedStrings(nodeIDsToStrings(deps)),
		Dependents:   sortedStrings(nodeIDsToStrings(dependents)),
		Decisions:    decisions,
		Anchors:      anchors,
		Heat:         heat,
		Risk:         risk,
	}, nil
}

// decisionsReachableViaRelated walks the `related` feature graph breadth
// first starting at feature (feature itself included), collecting each
// visited link's named `decisions` by decisionsByName, per SPEC_FULL.md's
// "decisions reachable via related" contract. A link referencing an
// undefined or duplicate decision name is skipped rather than erroring
// here — that's the analyzer's job (MBEL-DECISION-xxx).
func (e *Engine) decisionsReachableViaRelated(feature string) []ast.DecisionDeclaration {
	visited := map[string]bool{}
	seenDecision := map[string]bool{}
	var decisions []ast.DecisionDeclaration

	queue := []string{feature}
	visited[feature] = true
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		l, ok := e.features[name]
		if !ok {
			continue
		}
		for _, dn := range l.Decisions {
			if seenDecision[dn] {
				continue
			}
			if d, ok := e.decisionsByName[dn]; ok {
				seenDecision[dn] = true
				decisions = append(decisions, *d)
			}
		}
		for _, rel := range l.Related {
			if !visited[rel] {
				visited[rel] = true
				queue = append(queue, rel)
			}
		}
	}
	return decisions
}
