// Package mbel is the public façade over the Memory Bank Encoding
// Language core: parse a document, analyze it for diagnostics, and run
// Query Engine queries against it, without callers needing to reach into
// internal/*.
package mbel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/LoryBug/mbel/internal/analyzer"
	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
	"github.com/LoryBug/mbel/internal/lexer"
	"github.com/LoryBug/mbel/internal/merge"
	"github.com/LoryBug/mbel/internal/parser"
	"github.com/LoryBug/mbel/internal/query"
	"github.com/LoryBug/mbel/internal/result"
	"github.com/LoryBug/mbel/internal/token"
)

type (
	Result                = result.Result
	FeatureFiles          = result.FeatureFiles
	Dependencies          = result.Dependencies
	Dependents            = result.Dependents
	CircularDependencies  = result.CircularDependencies
	RiskAssessment        = result.RiskAssessment
	Impact                = result.Impact
	WorkContext           = result.WorkContext
	Simulation            = result.Simulation

	Diagnostic = diagnostic.Diagnostic
	QuickFix   = diagnostic.QuickFix
	Severity   = diagnostic.Severity

	Checks = analyzer.Checks
	Query  = query.Query
)

// DefaultChecks enables every analyzer check family.
func DefaultChecks() Checks { return analyzer.DefaultChecks() }

// Document is a parsed MBEL source file: the AST, its parse errors, and
// (built lazily on first use) the Query Engine indices over it.
type Document struct {
	Source string
	AST    *ast.Document
	Errors []parser.Error

	tokens []token.Token
	engine *query.Engine
}

// Parse lexes and parses source into a Document. Parse errors are
// collected in Document.Errors rather than returned as a Go error — a
// malformed document still yields a best-effort AST, matching the
// parser's own recovery behavior (§4.2 "error recovery").
func Parse(source string) *Document {
	toks, _ := lexer.Lex(source)
	res := parser.Parse(source)
	return &Document{
		Source: source,
		AST:    res.Document,
		Errors: res.Errors,
		tokens: toks,
	}
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mbel: read %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Analyze runs checks over the document, returning diagnostics and their
// quick fixes.
func (d *Document) Analyze(checks Checks) analyzer.Result {
	return analyzer.New(checks).AnalyzeDocument(d.Source, d.tokens, d.Errors, d.AST)
}

// AnalyzeDefault runs every check family.
func (d *Document) AnalyzeDefault() analyzer.Result {
	return d.Analyze(DefaultChecks())
}

// Engine returns the document's Query Engine, building it on first call.
func (d *Document) Engine() *query.Engine {
	if d.engine == nil {
		d.engine = query.BuildFromDocument(d.AST)
	}
	return d.engine
}

// Query runs q against the document's Query Engine.
func (d *Document) Query(q Query) (Result, error) {
	return d.Engine().Execute(q)
}

// FindInsertionPoint, IsDuplicate, and DetectConflicts expose the delta
// aggregator (§4.5) at the façade level.
func FindInsertionPoint(content string, delta merge.Delta) merge.InsertionPoint {
	return merge.FindInsertionPoint(content, delta)
}

func IsDuplicate(content, delta string) bool {
	return merge.IsDuplicate(content, delta)
}

func DetectConflicts(deltas []string) []merge.TaskConflict {
	return merge.DetectConflicts(deltas)
}

// MarshalResultJSON serializes a query Result by its dynamic kind, in the
// {"kind": ..., "data": ...} envelope shape this pipeline's result
// marshaling already uses.
func MarshalResultJSON(r Result) ([]byte, error) {
	if r == nil {
		return json.Marshal(map[string]any{"kind": "null", "data": nil})
	}
	return json.Marshal(map[string]any{"kind": r.Kind().String(), "data": r})
}
