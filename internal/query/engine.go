// Package query implements the MBEL Query Engine (§4.4): a set of
// indices built once from a parsed Document, and a closed family of
// Query implementations that read them. Indices hold non-owning
// references into the Document's statement slice — the Document must
// outlive the Engine, per §5's memory-ownership note.
package query

import (
	"context"
	"sort"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/graph"
	"github.com/LoryBug/mbel/internal/result"
)

// fileMention records that a feature named a path as a file, test, or doc.
type fileMention struct {
	Feature  string
	Relation string // "file", "test", or "doc"
}

// Engine holds every index built from one Document. It is immutable once
// built: simulate() works against graph clones, never against Engine
// state directly.
type Engine struct {
	doc *ast.Document

	featureOrder []string
	features     map[string]*ast.LinkDeclaration

	fileIndex map[string][]fileMention

	depGraph *graph.DependencyGraph

	anchorOrder   []string
	anchors       map[string]*ast.AnchorDeclaration
	anchorsByType map[ast.AnchorType][]*ast.AnchorDeclaration

	decisions          []*ast.DecisionDeclaration
	decisionsByName    map[string]*ast.DecisionDeclaration
	decisionsByStatus  map[ast.DecisionStatus][]*ast.DecisionDeclaration
	decisionsByContext map[string][]*ast.DecisionDeclaration

	heat      map[string]*ast.HeatDeclaration
	heatGlobs []*ast.HeatDeclaration

	intents         map[string]*ast.IntentDeclaration
	intentsByModule map[string][]*ast.IntentDeclaration
}

// BuildFromDocument constructs every index from doc's statements, per
// §4.4: one pass over the statements, then a pass over the features that
// adds the dependency edges.
func BuildFromDocument(doc *ast.Document) *Engine {
	e := &Engine{
		doc:                doc,
		features:           map[string]*ast.LinkDeclaration{},
		fileIndex:          map[string][]fileMention{},
		depGraph:           graph.CreateDependencyGraph(),
		anchors:            map[string]*ast.AnchorDeclaration{},
		anchorsByType:      map[ast.AnchorType][]*ast.AnchorDeclaration{},
		decisionsByName:    map[string]*ast.DecisionDeclaration{},
		decisionsByStatus:  map[ast.DecisionStatus][]*ast.DecisionDeclaration{},
		decisionsByContext: map[string][]*ast.DecisionDeclaration{},
		heat:               map[string]*ast.HeatDeclaration{},
		intents:            map[string]*ast.IntentDeclaration{},
		intentsByModule:    map[string][]*ast.IntentDeclaration{},
	}

	for i := range doc.Statements {
		s := &doc.Statements[i]
		switch s.Kind {
		case ast.StatementLink:
			e.indexLink(s.Link)
		case ast.StatementAnchor:
			e.indexAnchor(s.Anchor)
		case ast.StatementDecision:
			e.indexDecision(s.Decision)
		case ast.StatementHeat:
			e.indexHeat(s.Heat)
		case ast.StatementIntent:
			e.indexIntent(s.Intent)
		}
	}

	// Second pass: dependency edges need every feature node to exist
	// first, so a `depends` reference to a feature declared later in the
	// document still resolves.
	for _, name := range e.featureOrder {
		for _, dep := range e.features[name].Depends {
			if _, ok := e.features[dep]; ok {
				e.depGraph.EnsureEdge(graph.NodeID(name), graph.NodeID(dep))
			}
		}
	}

	return e
}

func (e *Engine) indexLink(l *ast.LinkDeclaration) {
	if l.Name == "" {
		return
	}
	if _, exists := e.features[l.Name]; !exists {
		e.featureOrder = append(e.featureOrder, l.Name)
	}
	e.features[l.Name] = l
	e.depGraph.EnsureNode(graph.NodeID(l.Name))

	index := func(refs []ast.FileRef, relation string) {
		for _, ref := range refs {
			e.fileIndex[ref.Path] = append(e.fileIndex[ref.Path], fileMention{Feature: l.Name, Relation: relation})
		}
	}
	index(l.Files, "file")
	index(l.Tests, "test")
	index(l.Docs, "doc")
}

func (e *Engine) indexAnchor(a *ast.AnchorDeclaration) {
	if a.Path == "" {
		return
	}
	if _, exists := e.anchors[a.Path]; !exists {
		e.anchorOrder = append(e.anchorOrder, a.Path)
	}
	e.anchors[a.Path] = a
	e.anchorsByType[a.AnchorType] = append(e.anchorsByType[a.AnchorType], a)
}

func (e *Engine) indexDecision(d *ast.DecisionDeclaration) {
	e.decisions = append(e.decisions, d)
	if d.Name != "" {
		e.decisionsByName[d.Name] = d
	}
	e.decisionsByStatus[d.Status] = append(e.decisionsByStatus[d.Status], d)
	for _, path := range d.Context {
		e.decisionsByContext[path] = append(e.decisionsByContext[path], d)
	}
}

func (e *Engine) indexHeat(h *ast.HeatDeclaration) {
	if h.Path == "" {
		return
	}
	e.heat[h.Path] = h
	if h.IsGlob {
		e.heatGlobs = append(e.heatGlobs, h)
	}
}

func (e *Engine) indexIntent(in *ast.IntentDeclaration) {
	key := in.Module + "::" + in.Component
	e.intents[key] = in
	e.intentsByModule[in.Module] = append(e.intentsByModule[in.Module], in)
}

// Execute runs q against e with a background context, mirroring the
// inference engine's two-method shape: most callers don't need
// cancellation, but it stays available via ExecuteWithContext.
func (e *Engine) Execute(q Query) (result.Result, error) {
	return q.Execute(context.Background(), e)
}

func (e *Engine) ExecuteWithContext(ctx context.Context, q Query) (result.Result, error) {
	return q.Execute(ctx, e)
}

func sortedStrings(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

func nodeIDsToStrings(ids []graph.NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
