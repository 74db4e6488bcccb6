// Package token defines the closed set of lexical token kinds the MBEL
// lexer produces, and the Token value itself.
package token

import "github.com/LoryBug/mbel/internal/position"

// Kind is a closed enumeration of token kinds.
type Kind int

const (
	// Structural
	EOF Kind = iota
	NEWLINE
	UNKNOWN

	// Literals
	IDENTIFIER
	NUMBER
	CODE_FENCE

	// Temporal operators
	TEMPORAL_PAST    // >
	TEMPORAL_PRESENT // @
	TEMPORAL_FUTURE  // ?
	TEMPORAL_APPROX  // ≈

	// State operators
	STATE_COMPLETE // ✓
	STATE_FAILED   // ✗
	STATE_CRITICAL // !
	STATE_ACTIVE   // ⚡

	// Relation operators
	RELATION_DEFINES  // :: or :
	RELATION_LEADS_TO // →
	RELATION_FROM     // ←
	RELATION_MUTUAL   // ↔
	RELATION_AND      // +
	RELATION_REMOVE   // -

	// Structure brackets (verbatim text includes delimiters)
	STRUCT_SECTION // [...] when not in list context
	STRUCT_LIST    // [...] right after an ARROW_KEYWORD token
	STRUCT_META    // {...}
	STRUCT_NOTE    // (...)
	STRUCT_VARIANT // <...>
	STRUCT_OR      // |

	// Quantification
	QUANT_HASH    // #
	QUANT_PERCENT // %
	QUANT_TILDE   // ~

	// Logic
	LOGIC_AND // &
	LOGIC_OR  // ||
	LOGIC_NOT // ¬

	// Meta
	META_SOURCE  // ©
	META_VERSION // §

	// Arrow
	ARROW         // ->
	ARROW_KEYWORD // a recognized identifier immediately following "->"; emitted instead of ARROW

	// Link markers
	LINK_FEATURE // @feature
	LINK_TASK    // @task

	// Anchor prefixes
	ANCHOR_ENTRY    // @entry::
	ANCHOR_HOTSPOT  // @hotspot::
	ANCHOR_BOUNDARY // @boundary::

	// Heat prefixes
	HEAT_CRITICAL // @critical::
	HEAT_STABLE   // @stable::
	HEAT_VOLATILE // @volatile::
	HEAT_HOT      // @hot::

	// Decision date prefix: @YYYY-MM-DD::
	DECISION_DATE

	// Intent module prefix: @Upper::Ident
	INTENT_MODULE

	// Punctuation
	COMMA // ,
)

// arrowKeywords is the closed set recognized immediately after an ARROW
// token with no intervening whitespace (whitespace disqualifies the match).
var arrowKeywords = map[string]struct{}{
	"files": {}, "tests": {}, "docs": {}, "decisions": {}, "related": {},
	"entryPoint": {}, "blueprint": {}, "depends": {}, "deps": {}, "features": {},
	"why": {}, "descrizione": {}, "description": {}, "alternatives": {},
	"reason": {}, "tradeoff": {}, "context": {}, "status": {}, "revisit": {},
	"supersededBy": {}, "dependents": {}, "untouched": {}, "changes": {},
	"coverage": {}, "confidence": {}, "impact": {}, "caution": {}, "does": {},
	"doesNot": {}, "contract": {}, "singleResponsibility": {}, "antiPattern": {},
	"extends": {},
}

// IsArrowKeyword reports whether ident is a recognized arrow-clause keyword.
// Case is significant, matching §4.1.
func IsArrowKeyword(ident string) bool {
	_, ok := arrowKeywords[ident]
	return ok
}

// ListValuedKeywords is the subset of arrow keywords whose value is always a
// `[...]` list rather than a scalar.
var ListValuedKeywords = map[string]bool{
	"files": true, "tests": true, "docs": true, "decisions": true,
	"related": true, "depends": true, "deps": true, "blueprint": true,
	"features": true, "alternatives": true, "context": true,
	"dependents": true, "extends": true,
}

// Token is one lexical unit: its kind, verbatim source text, and half-open
// source range.
type Token struct {
	Kind  Kind
	Text  string
	Range position.Range
}

func (t Token) String() string {
	return t.Text
}

// Names maps each Kind to a human-readable name, used in diagnostics and
// tests.
var Names = map[Kind]string{
	EOF: "EOF", NEWLINE: "NEWLINE", UNKNOWN: "UNKNOWN",
	IDENTIFIER: "IDENTIFIER", NUMBER: "NUMBER", CODE_FENCE: "CODE_FENCE",
	TEMPORAL_PAST: "TEMPORAL_PAST", TEMPORAL_PRESENT: "TEMPORAL_PRESENT",
	TEMPORAL_FUTURE: "TEMPORAL_FUTURE", TEMPORAL_APPROX: "TEMPORAL_APPROX",
	STATE_COMPLETE: "STATE_COMPLETE", STATE_FAILED: "STATE_FAILED",
	STATE_CRITICAL: "STATE_CRITICAL", STATE_ACTIVE: "STATE_ACTIVE",
	RELATION_DEFINES: "RELATION_DEFINES", RELATION_LEADS_TO: "RELATION_LEADS_TO",
	RELATION_FROM: "RELATION_FROM", RELATION_MUTUAL: "RELATION_MUTUAL",
	RELATION_AND: "RELATION_AND", RELATION_REMOVE: "RELATION_REMOVE",
	STRUCT_SECTION: "STRUCT_SECTION", STRUCT_LIST: "STRUCT_LIST",
	STRUCT_META: "STRUCT_META", STRUCT_NOTE: "STRUCT_NOTE",
	STRUCT_VARIANT: "STRUCT_VARIANT", STRUCT_OR: "STRUCT_OR",
	QUANT_HASH: "QUANT_HASH", QUANT_PERCENT: "QUANT_PERCENT", QUANT_TILDE: "QUANT_TILDE",
	LOGIC_AND: "LOGIC_AND", LOGIC_OR: "LOGIC_OR", LOGIC_NOT: "LOGIC_NOT",
	META_SOURCE: "META_SOURCE", META_VERSION: "META_VERSION",
	ARROW: "ARROW", ARROW_KEYWORD: "ARROW_KEYWORD",
	LINK_FEATURE: "LINK_FEATURE", LINK_TASK: "LINK_TASK",
	ANCHOR_ENTRY: "ANCHOR_ENTRY", ANCHOR_HOTSPOT: "ANCHOR_HOTSPOT", ANCHOR_BOUNDARY: "ANCHOR_BOUNDARY",
	HEAT_CRITICAL: "HEAT_CRITICAL", HEAT_STABLE: "HEAT_STABLE",
	HEAT_VOLATILE: "HEAT_VOLATILE", HEAT_HOT: "HEAT_HOT",
	DECISION_DATE: "DECISION_DATE", INTENT_MODULE: "INTENT_MODULE",
	COMMA: "COMMA",
}

func (k Kind) String() string {
	if name, ok := Names[k]; ok {
		return name
	}
	return "INVALID"
}
