// Package analyzer implements MBEL's diagnostic-producing analyzer
// (§4.3): a set of independently toggleable checks over the source text
// (grammar checks), the token stream (bracket-closure checks), and the
// parsed AST (semantic checks).
//
// An Analyzer carries no state beyond its Checks configuration; each call
// to AnalyzeText/AnalyzeDocument builds a fresh context for the duration
// of that one analysis, per §9's "stateful only per-analysis" note.
package analyzer

import (
	"sort"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
	"github.com/LoryBug/mbel/internal/lexer"
	"github.com/LoryBug/mbel/internal/parser"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// Checks toggles each independently specified check family (§4.3). All
// default to enabled.
type Checks struct {
	ArticleUsage       bool
	NonCamelCase       bool
	UnicodeTypography  bool
	MissingVersion     bool
	UnusedSection      bool
	DuplicateSection   bool
	DuplicateAttribute bool
	LinkValidation     bool
	AnchorValidation   bool
	DecisionValidation bool
	HeatValidation     bool
	IntentValidation   bool
	UnclosedBrackets   bool
}

// DefaultChecks enables every check, matching §4.3's "enabled by default"
// framing for the grammar and semantic families.
func DefaultChecks() Checks {
	return Checks{
		ArticleUsage:       true,
		NonCamelCase:       true,
		UnicodeTypography:  true,
		MissingVersion:     true,
		UnusedSection:      true,
		DuplicateSection:   true,
		DuplicateAttribute: true,
		LinkValidation:     true,
		AnchorValidation:   true,
		DecisionValidation: true,
		HeatValidation:     true,
		IntentValidation:   true,
		UnclosedBrackets:   true,
	}
}

// Analyzer runs the configured checks against one source+tokens+AST triple
// at a time.
type Analyzer struct {
	checks Checks
}

func New(checks Checks) *Analyzer {
	return &Analyzer{checks: checks}
}

// findingKey identifies a diagnostic for the GetQuickFixes lookup:
// position + code is unique enough within one analysis, and matches §3's
// "statement identity for diagnostics is by position, not pointer
// equality".
type findingKey struct {
	offset int
	code   string
}

// Result is the output of one analysis: the diagnostics in discovery
// order (§4.3 "Ordering"), plus their associated quick fixes.
type Result struct {
	Diagnostics []diagnostic.Diagnostic
	fixes       map[findingKey][]diagnostic.QuickFix
}

// GetQuickFixes returns the quick fixes recorded for d, or nil.
func (r Result) GetQuickFixes(d diagnostic.Diagnostic) []diagnostic.QuickFix {
	return r.fixes[findingKey{offset: d.Range.Start.Offset, code: d.Code}]
}

// context carries the per-analysis inputs and the accumulating output; it
// is never retained past one Analyze call. runes/lineStarts let the
// text-level grammar checks translate raw string offsets into positions
// without re-scanning the source for every match.
type context struct {
	source     string
	runes      []rune
	lineStarts []int
	tokens     []token.Token
	doc        *ast.Document
	result     Result
}

func newContext(source string, toks []token.Token, doc *ast.Document) *context {
	runes := []rune(source)
	lineStarts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &context{source: source, runes: runes, lineStarts: lineStarts, tokens: toks, doc: doc}
}

// positionAt converts a rune offset into source to a line/column position.
func (c *context) positionAt(offset int) position.Position {
	line := sort.Search(len(c.lineStarts), func(i int) bool { return c.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return position.Position{Line: line + 1, Column: offset - c.lineStarts[line] + 1, Offset: offset}
}

func (c *context) rangeAt(start, end int) position.Range {
	return position.Range{Start: c.positionAt(start), End: c.positionAt(end)}
}

func (c *context) add(d diagnostic.Diagnostic, fixes ...diagnostic.QuickFix) {
	c.result.Diagnostics = append(c.result.Diagnostics, d)
	if len(fixes) > 0 {
		if c.result.fixes == nil {
			c.result.fixes = map[findingKey][]diagnostic.QuickFix{}
		}
		key := findingKey{offset: d.Range.Start.Offset, code: d.Code}
		c.result.fixes[key] = append(c.result.fixes[key], fixes...)
	}
}

// AnalyzeText lexes, parses, and analyzes source in one call. Parse errors
// already carry the lexical errors re-emitted alongside them (§4.2), so
// the lexer is only run a second time to get the token stream the
// text/bracket checks need, never to re-collect its errors.
func (a *Analyzer) AnalyzeText(source string) Result {
	toks, _ := lexer.Lex(source)
	parseResult := parser.Parse(source)
	return a.analyze(source, toks, parseResult.Errors, parseResult.Document)
}

// AnalyzeDocument analyzes an already-parsed document: source and tokens
// are still required since grammar checks work over text and bracket
// checks work over tokens, and errs is the lex+parse error list from the
// same parse.Parse call that produced doc.
func (a *Analyzer) AnalyzeDocument(source string, toks []token.Token, errs []parser.Error, doc *ast.Document) Result {
	return a.analyze(source, toks, errs, doc)
}

func (a *Analyzer) analyze(source string, toks []token.Token, errs []parser.Error, doc *ast.Document) Result {
	source = lexer.NormalizeNewlines(source)
	ctx := newContext(source, toks, doc)

	for _, e := range errs {
		ctx.add(diagnostic.New(
			position.RangeAt(e.Position),
			diagnostic.SeverityError,
			lexicalCode(e.Kind, e.Message),
			e.Message,
		))
	}

	if a.checks.ArticleUsage {
		checkArticleUsage(ctx)
	}
	if a.checks.NonCamelCase {
		checkNonCamelCase(ctx)
	}
	if a.checks.UnicodeTypography {
		checkUnicodeTypography(ctx)
	}
	if a.checks.UnclosedBrackets {
		checkUnclosedBrackets(ctx)
	}
	if doc != nil {
		if a.checks.MissingVersion {
			checkMissingVersion(ctx)
		}
		if a.checks.UnusedSection || a.checks.DuplicateSection {
			checkSections(ctx, a.checks.UnusedSection, a.checks.DuplicateSection)
		}
		if a.checks.DuplicateAttribute {
			checkDuplicateAttributes(ctx)
		}
		if a.checks.LinkValidation {
			checkLinks(ctx)
		}
		if a.checks.AnchorValidation {
			checkAnchors(ctx)
		}
		if a.checks.DecisionValidation {
			checkDecisions(ctx)
		}
		if a.checks.HeatValidation {
			checkHeat(ctx)
		}
		if a.checks.IntentValidation {
			checkIntents(ctx)
		}
	}

	return ctx.result
}

// lexicalCode maps a parser.Error back to a diagnostic code. kind is
// empty for a genuine syntax error (CodeUnexpectedToken); "UnknownCharacter"
// and "Unclosed" are re-emitted lexical errors, the latter disambiguated by
// which bracket character the message names, since "Unclosed" alone
// doesn't say whether it was a `[`, `{`, `(`, `<`, or a code fence.
func lexicalCode(kind, message string) string {
	switch kind {
	case "UnknownCharacter":
		return diagnostic.CodeUnknownCharacter
	case "Unclosed":
		switch {
		case strings.HasSuffix(message, "["):
			return diagnostic.CodeUnclosedSection
		case strings.HasSuffix(message, "{"):
			return diagnostic.CodeUnclosedMetadata
		case strings.HasSuffix(message, "("):
			return diagnostic.CodeUnclosedNote
		case strings.HasSuffix(message, "<"):
			return diagnostic.CodeUnclosedVariant
		default:
			// Unclosed code fence: no dedicated code, section is the
			// closest existing "unclosed block" diagnostic.
			return diagnostic.CodeUnclosedSection
		}
	default:
		return diagnostic.CodeUnexpectedToken
	}
}
