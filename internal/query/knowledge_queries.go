package query

import (
	"context"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/result"
)

func anchorTypeName(t ast.AnchorType) string {
	switch t {
	case ast.AnchorEntry:
		return "entry"
	case ast.AnchorHotspot:
		return "hotspot"
	case ast.AnchorBoundary:
		return "boundary"
	default:
		return ""
	}
}

func (e *Engine) orderedAnchors() []*ast.AnchorDeclaration {
	out := make([]*ast.AnchorDeclaration, 0, len(e.anchorOrder))
	for _, path := range e.anchorOrder {
		out = append(out, e.anchors[path])
	}
	return out
}

// AnchorSearchQuery is findAnchor(concept): anchors whose path or type
// name contains concept, case-insensitively.
type AnchorSearchQuery struct {
	Concept string
}

func (q AnchorSearchQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	var matches []ast.AnchorDeclaration
	for _, a := range e.orderedAnchors() {
		if containsFold(a.Path, q.Concept) || containsFold(anchorTypeName(a.AnchorType), q.Concept) {
			matches = append(matches, *a)
		}
	}
	return result.Anchors{Anchors: matches}, nil
}

// AnchorsByTypeQuery is findAnchorsByType(type).
type AnchorsByTypeQuery struct {
	Type ast.AnchorType
}

func (q AnchorsByTypeQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	var matches []ast.AnchorDeclaration
	for _, a := range e.anchorsByType[q.Type] {
		matches = append(matches, *a)
	}
	return result.Anchors{Anchors: matches}, nil
}

// DecisionSearchQuery is findDecisions(pattern): decisions whose name
// contains pattern.
type DecisionSearchQuery struct {
	Pattern string
}

func (q DecisionSearchQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	var matches []ast.DecisionDeclaration
	for _, d := range e.decisions {
		if containsFold(d.Name, q.Pattern) {
			matches = append(matches, *d)
		}
	}
	return result.Decisions{Decisions: matches}, nil
}

// DecisionsByStatusQuery is findDecisionsByStatus(status).
type DecisionsByStatusQuery struct {
	Status ast.DecisionStatus
}

func (q DecisionsByStatusQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	var matches []ast.DecisionDeclaration
	for _, d := range e.decisionsByStatus[q.Status] {
		matches = append(matches, *d)
	}
	return result.Decisions{Decisions: matches}, nil
}

// DecisionsByContextQuery is findDecisionsByContext(file): decisions
// whose context list contains file verbatim.
type DecisionsByContextQuery struct {
	File string
}

func (q DecisionsByContextQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	var matches []ast.DecisionDeclaration
	for _, d := range e.decisionsByContext[q.File] {
		matches = append(matches, *d)
	}
	return result.Decisions{Decisions: matches}, nil
}

// IntentQuery is findIntent(module, component): a single match or
// Found=false.
type IntentQuery struct {
	Module, Component string
}

func (q IntentQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	in, ok := e.intents[q.Module+"::"+q.Component]
	if !ok {
		return result.Intent{Found: false}, nil
	}
	return result.Intent{Found: true, Intent: *in}, nil
}

// IntentsByModuleQuery is findIntentsByModule(module).
type IntentsByModuleQuery struct {
	Module string
}

func (q IntentsByModuleQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	var matches []ast.IntentDeclaration
	for _, in := range e.intentsByModule[q.Module] {
		matches = append(matches, *in)
	}
	return result.Intents{Module: q.Module, Intents: matches}, nil
}

// SemanticSearchQuery is semanticSearch(query): the substring-matched
// union across anchors, decisions, intents, and features.
type SemanticSearchQuery struct {
	Query string
}

func (q SemanticSearchQuery) Execute(ctx context.Context, e *Engine) (result.Result, error) {
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	out := result.SemanticSearch{Query: q.Query}

	for _, a := range e.orderedAnchors() {
		if containsFold(a.Path, q.Query) || containsFold(a.Description, q.Query) {
			out.Anchors = append(out.Anchors, *a)
		}
	}
	for _, d := range e.decisions {
		if containsFold(d.Name, q.Query) || containsFold(d.Reason, q.Query) {
			out.Decisions = append(out.Decisions, *d)
		}
	}
	for _, module := range sortedIntentModules(e) {
		for _, in := range e.intentsByModule[module] {
			if containsFold(in.Module, q.Query) || containsFold(in.Component, q.Query) || containsFold(in.Does, q.Query) {
				out.Intents = append(out.Intents, *in)
			}
		}
	}
	for _, name := range e.featureOrder {
		if containsFold(name, q.Query) {
			out.Features = append(out.Features, *e.features[name])
		}
	}

	return out, nil
}

func sortedIntentModules(e *Engine) []string {
	modules := make([]string, 0, len(e.intentsByModule))
	for m := range e.intentsByModule {
		modules = append(modules, m)
	}
	return sortedStrings(modules)
}
