package parser

import (
	"strconv"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/token"
)

// consumeArrowClauses repeatedly looks for an arrow-keyword token, possibly
// preceded by blank/continuation newlines, and hands the keyword text to
// apply. It stops as soon as the next non-newline token is neither an
// ARROW_KEYWORD nor a bare (unrecognized-keyword) ARROW — that token then
// starts the next top-level statement, per §4.2's "first non-arrow
// statement closes the declaration".
func (p *Parser) consumeArrowClauses(apply func(keyword string)) {
	for {
		if p.skipNewlinesPeek(token.ARROW_KEYWORD) {
			kw := p.advance()
			apply(kw.Text)
			continue
		}
		if p.skipNewlinesPeek(token.ARROW) {
			p.errorf("unrecognized arrow keyword after '->'")
			p.advance()
			p.synchronize()
			continue
		}
		return
	}
}

// readScalarValue implements the three scalar forms from §4.2: a `{...}`
// metadata block, a `::value` suffix, or the rest of the line verbatim.
func (p *Parser) readScalarValue() string {
	switch p.curKind() {
	case token.STRUCT_META:
		tok := p.advance()
		return strings.TrimSpace(stripBrackets(tok.Text, '{', '}'))
	case token.RELATION_DEFINES:
		p.advance()
		return p.readRestOfLine()
	default:
		return p.readRestOfLine()
	}
}

func (p *Parser) readEntryPoint() *ast.EntryPoint {
	raw := strings.TrimSpace(p.readScalarValue())
	if raw == "" {
		p.errorf("empty entryPoint value")
		return nil
	}
	parts := strings.SplitN(raw, ":", 3)
	ep := &ast.EntryPoint{File: parts[0]}
	if len(parts) >= 2 {
		ep.Symbol = parts[1]
	}
	if len(parts) >= 3 {
		if n, err := strconv.Atoi(parts[2]); err == nil {
			ep.Line = &n
		}
	}
	return ep
}

// readListItems expects the cursor at a STRUCT_LIST token and returns its
// comma-separated items, split at top-level (bracket-nesting-aware) commas
// with surrounding quotes stripped.
func (p *Parser) readListItems() []string {
	if p.curKind() != token.STRUCT_LIST {
		p.errorf("expected '[' list after arrow keyword")
		return nil
	}
	tok := p.advance()
	body := stripBrackets(tok.Text, '[', ']')
	items := splitTopLevel(body)
	for i, item := range items {
		items[i] = unquote(strings.TrimSpace(item))
	}
	return items
}

// readFileRefs is readListItems plus the per-item FileRef grammar: an
// optional trailing {TO-CREATE}/{TO-MODIFY} marker and/or trailing
// :start-end line range.
func (p *Parser) readFileRefs() []ast.FileRef {
	raw := p.readRawListItems()
	refs := make([]ast.FileRef, 0, len(raw))
	for _, item := range raw {
		refs = append(refs, parseFileRefItem(item))
	}
	return refs
}

// readRawListItems is readListItems without the unquote/trim pass, used by
// readFileRefs, whose parseFileRefItem trims and unquotes each item itself.
func (p *Parser) readRawListItems() []string {
	if p.curKind() != token.STRUCT_LIST {
		p.errorf("expected '[' list after arrow keyword")
		return nil
	}
	tok := p.advance()
	body := stripBrackets(tok.Text, '[', ']')
	return splitTopLevel(body)
}

func stripBrackets(text string, open, close byte) string {
	if len(text) == 0 {
		return text
	}
	s := text
	if s[0] == open {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == close {
		s = s[:len(s)-1]
	}
	return s
}

// splitTopLevel splits s on commas that sit at bracket depth zero, so that
// a `{...}` marker or `<...>` variant embedded in an item doesn't get torn
// apart by a comma inside it. Empty (whitespace-only) segments — the
// trailing-comma case — are dropped.
func splitTopLevel(s string) []string {
	var items []string
	depth := 0
	var cur strings.Builder
	for _, r := range s {
		switch r {
		case '{', '(', '<', '[':
			depth++
		case '}', ')', '>', ']':
			if depth > 0 {
				depth--
			}
		}
		if r == ',' && depth == 0 {
			items = append(items, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if strings.TrimSpace(cur.String()) != "" || len(items) > 0 {
		items = append(items, cur.String())
	}
	trimmed := items[:0]
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		trimmed = append(trimmed, it)
	}
	return trimmed
}

func unquote(s string) string {
	r := []rune(s)
	if len(r) < 2 {
		return s
	}
	pairs := [][2]rune{{'"', '"'}, {'\'', '\''}, {'“', '”'}}
	for _, pair := range pairs {
		if r[0] == pair[0] && r[len(r)-1] == pair[1] {
			return string(r[1 : len(r)-1])
		}
	}
	return s
}

func parseFileRefItem(raw string) ast.FileRef {
	s := unquote(strings.TrimSpace(raw))

	ref := ast.FileRef{}
	if idx := strings.LastIndex(s, "{"); idx >= 0 && strings.HasSuffix(s, "}") {
		marker := s[idx+1 : len(s)-1]
		switch marker {
		case "TO-CREATE":
			ref.Marker = ast.MarkerToCreate
			s = strings.TrimSpace(s[:idx])
		case "TO-MODIFY":
			ref.Marker = ast.MarkerToModify
			s = strings.TrimSpace(s[:idx])
		}
	}

	if start, end, rest, ok := parseLineRangeSuffix(s); ok {
		ref.LineRange = &ast.LineRange{Start: start, End: end}
		s = rest
	}

	ref.Path = s
	ref.IsGlob = isGlobPath(s)
	return ref
}

// parseLineRangeSuffix peels a trailing ":start-end" off s, where start and
// end are both plain decimal integers.
func parseLineRangeSuffix(s string) (start, end int, rest string, ok bool) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return 0, 0, s, false
	}
	suffix := s[idx+1:]
	dash := strings.Index(suffix, "-")
	if dash < 0 {
		return 0, 0, s, false
	}
	startN, err1 := strconv.Atoi(suffix[:dash])
	endN, err2 := strconv.Atoi(suffix[dash+1:])
	if err1 != nil || err2 != nil {
		return 0, 0, s, false
	}
	return startN, endN, s[:idx], true
}
