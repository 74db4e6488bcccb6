// Package lexer implements MBEL's hand-written scanner: it turns source
// text into a stream of token.Token values plus a list of non-fatal
// lexical errors. It never panics on malformed input.
//
// The scanner carries exactly one piece of contextual state (§4.1 of the
// language spec): immediately after emitting an ARROW_KEYWORD token, the
// next `[...]` is classified STRUCT_LIST instead of STRUCT_SECTION. That
// flag is named and reset explicitly below rather than left as hidden
// context.
package lexer

import (
	"strings"
	"unicode"

	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// Lexer scans one source string into tokens. It owns its buffer for the
// duration of scanning; callers use Lex for a one-shot run.
type Lexer struct {
	src  []rune
	pos  int // index into src, the next rune to consume
	line int
	col  int

	// afterArrowKeyword is the single deliberate piece of contextual state
	// described in the package doc: true for exactly the token immediately
	// following an ARROW_KEYWORD.
	afterArrowKeyword bool

	errs []Error
}

// Lex scans source into a token stream terminated by a single EOF token,
// plus any lexical errors encountered along the way. It never fails: a
// fully malformed input still produces a token stream (mostly UNKNOWN) and
// a non-empty error list.
func Lex(source string) ([]token.Token, []Error) {
	normalized := NormalizeNewlines(source)
	l := &Lexer{
		src:  []rune(normalized),
		pos:  0,
		line: 1,
		col:  1,
	}
	var toks []token.Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, l.errs
}

// NormalizeNewlines collapses CRLF and bare CR into LF. The parser applies
// the same normalization to its own copy of the source so that token
// offsets and raw-span reads (see parser.readRawSpan) stay aligned.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

func (l *Lexer) here() position.Position {
	return position.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	i := l.pos + offset
	if i < 0 || i >= len(l.src) {
		return 0, false
	}
	return l.src[i], true
}

func (l *Lexer) peek() (rune, bool) {
	return l.peekAt(0)
}

// advance consumes and returns the current rune, updating line/col.
func (l *Lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) emit(kind token.Kind, text string, start position.Position) token.Token {
	tok := token.Token{
		Kind:  kind,
		Text:  text,
		Range: position.Range{Start: start, End: l.here()},
	}
	// Only ARROW_KEYWORD extends the contextual flag; every other token
	// clears it so the special classification applies to exactly the next
	// bracket.
	if kind != token.ARROW_KEYWORD {
		l.afterArrowKeyword = false
	}
	return tok
}

func (l *Lexer) errorf(e Error) {
	l.errs = append(l.errs, e)
}

// next scans and returns exactly one token, skipping inert whitespace.
func (l *Lexer) next() token.Token {
	l.skipInlineWhitespace()

	start := l.here()
	if l.eof() {
		return l.emit(token.EOF, "", start)
	}

	ch, _ := l.peek()

	switch {
	case ch == '\n':
		l.advance()
		return l.emit(token.NEWLINE, "\n", start)

	case ch == '`' && l.matchAt(0, "```"):
		return l.scanCodeFence(start)

	case ch == '[':
		kind := token.STRUCT_SECTION
		if l.afterArrowKeyword {
			kind = token.STRUCT_LIST
		}
		return l.scanBracket(start, '[', ']', kind, "[")

	case ch == '{':
		return l.scanBracket(start, '{', '}', token.STRUCT_META, "{")

	case ch == '(':
		return l.scanBracket(start, '(', ')', token.STRUCT_NOTE, "(")

	case ch == '<':
		return l.scanBracket(start, '<', '>', token.STRUCT_VARIANT, "<")

	case ch == '@':
		return l.scanAt(start)

	case ch == '-':
		return l.scanMinusOrArrow(start)

	case ch == ':':
		return l.scanColon(start)

	case ch == '|':
		return l.scanPipe(start)

	case ch == '>':
		l.advance()
		return l.emit(token.TEMPORAL_PAST, ">", start)

	case ch == '?':
		l.advance()
		return l.emit(token.TEMPORAL_FUTURE, "?", start)

	case ch == '≈': // ≈
		l.advance()
		return l.emit(token.TEMPORAL_APPROX, "≈", start)

	case ch == '✓': // ✓
		l.advance()
		return l.emit(token.STATE_COMPLETE, "✓", start)

	case ch == '✗': // ✗
		l.advance()
		return l.emit(token.STATE_FAILED, "✗", start)

	case ch == '!':
		l.advance()
		return l.emit(token.STATE_CRITICAL, "!", start)

	case ch == '⚡': // ⚡
		l.advance()
		return l.emit(token.STATE_ACTIVE, "⚡", start)

	case ch == '→': // →
		l.advance()
		return l.emit(token.RELATION_LEADS_TO, "→", start)

	case ch == '←': // ←
		l.advance()
		return l.emit(token.RELATION_FROM, "←", start)

	case ch == '↔': // ↔
		l.advance()
		return l.emit(token.RELATION_MUTUAL, "↔", start)

	case ch == '+':
		l.advance()
		return l.emit(token.RELATION_AND, "+", start)

	case ch == '#':
		l.advance()
		return l.emit(token.QUANT_HASH, "#", start)

	case ch == '%':
		l.advance()
		return l.emit(token.QUANT_PERCENT, "%", start)

	case ch == '~':
		l.advance()
		return l.emit(token.QUANT_TILDE, "~", start)

	case ch == '&':
		l.advance()
		return l.emit(token.LOGIC_AND, "&", start)

	case ch == '¬': // ¬
		l.advance()
		return l.emit(token.LOGIC_NOT, "¬", start)

	case ch == '©': // ©
		l.advance()
		return l.emit(token.META_SOURCE, "©", start)

	case ch == '§': // §
		l.advance()
		return l.emit(token.META_VERSION, "§", start)

	case ch == ',':
		l.advance()
		return l.emit(token.COMMA, ",", start)

	case unicode.IsDigit(ch):
		return l.scanNumber(start)

	case isIdentifierStart(ch):
		return l.scanIdentifier(start)

	default:
		l.advance()
		l.errorf(unknownCharacter(ch, start))
		return l.emit(token.UNKNOWN, string(ch), start)
	}
}

func (l *Lexer) skipInlineWhitespace() {
	for {
		ch, ok := l.peek()
		if !ok {
			return
		}
		if ch == ' ' || ch == '\t' {
			l.advance()
			continue
		}
		return
	}
}

// matchAt reports whether s occurs starting at src[pos+offset].
func (l *Lexer) matchAt(offset int, s string) bool {
	runes := []rune(s)
	for i, r := range runes {
		ch, ok := l.peekAt(offset + i)
		if !ok || ch != r {
			return false
		}
	}
	return true
}

func (l *Lexer) scanCodeFence(start position.Position) token.Token {
	var b strings.Builder
	b.WriteString("```")
	l.advance()
	l.advance()
	l.advance()
	for {
		if l.eof() {
			l.errorf(unclosed("code fence", start))
			return l.emit(token.CODE_FENCE, b.String(), start)
		}
		if l.matchAt(0, "```") {
			b.WriteString("```")
			l.advance()
			l.advance()
			l.advance()
			return l.emit(token.CODE_FENCE, b.String(), start)
		}
		b.WriteRune(l.advance())
	}
}

// scanBracket performs balanced, depth-tracking bracket scanning within a
// single line. Nested same-kind openers/closers are included verbatim in
// the token text. A bracket never closes across a NEWLINE: hitting one
// first ends the token right there (the newline itself is left unconsumed
// for the next call to next() to tokenize normally) plus an "Unclosed"
// lexical error, so a missing closer can never swallow the rest of the
// document as a nested opener of the same kind (§8 recovery completeness).
func (l *Lexer) scanBracket(start position.Position, open, close rune, kind token.Kind, label string) token.Token {
	var b strings.Builder
	depth := 0
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			l.errorf(unclosed(label, start))
			return l.emit(kind, b.String(), start)
		}
		b.WriteRune(l.advance())
		if ch == open {
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return l.emit(kind, b.String(), start)
			}
		}
	}
}

func (l *Lexer) scanAt(start position.Position) token.Token {
	// Literal word markers: @feature, @task.
	if ident, end := l.matchWord(1, "feature"); ident && !l.identifierContinues(end) {
		l.consumeN(end)
		return l.emit(token.LINK_FEATURE, "@feature", start)
	}
	if ident, end := l.matchWord(1, "task"); ident && !l.identifierContinues(end) {
		l.consumeN(end)
		return l.emit(token.LINK_TASK, "@task", start)
	}

	// Anchor / heat prefixes: @keyword::
	prefixes := []struct {
		word string
		kind token.Kind
	}{
		{"entry", token.ANCHOR_ENTRY},
		{"hotspot", token.ANCHOR_HOTSPOT},
		{"boundary", token.ANCHOR_BOUNDARY},
		{"critical", token.HEAT_CRITICAL},
		{"stable", token.HEAT_STABLE},
		{"volatile", token.HEAT_VOLATILE},
		{"hot", token.HEAT_HOT},
	}
	for _, p := range prefixes {
		if l.matchAt(1, p.word+"::") {
			n := 1 + len(p.word) + 2
			text := "@" + p.word + "::"
			l.consumeN(n)
			return l.emit(p.kind, text, start)
		}
	}

	// Decision date prefix: @YYYY-MM-DD::
	if date, ok := l.matchDate(1); ok {
		text := "@" + date + "::"
		l.consumeN(1 + len(date) + 2)
		return l.emit(token.DECISION_DATE, text, start)
	}

	// Intent module prefix: @UpperIdent::Ident (the first identifier must
	// start with an uppercase letter, distinguishing it from temporal `@`).
	if mod, ok := l.matchUpperIdentDoubleColon(1); ok {
		text := "@" + mod + "::"
		l.consumeN(1 + len(mod) + 2)
		return l.emit(token.INTENT_MODULE, text, start)
	}

	l.advance()
	return l.emit(token.TEMPORAL_PRESENT, "@", start)
}

// matchWord reports whether word appears starting at offset, returning the
// offset just past it.
func (l *Lexer) matchWord(offset int, word string) (bool, int) {
	if l.matchAt(offset, word) {
		return true, offset + len([]rune(word))
	}
	return false, offset
}

// identifierContinues reports whether an identifier-continuation rune sits
// at the given offset (used to require a whole-word match, e.g. "@feature"
// must not match inside "@featurex").
func (l *Lexer) identifierContinues(offset int) bool {
	ch, ok := l.peekAt(offset)
	if !ok {
		return false
	}
	return isIdentifierContinue(ch)
}

func (l *Lexer) consumeN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// matchDate matches YYYY-MM-DD starting at offset and returns its text.
func (l *Lexer) matchDate(offset int) (string, bool) {
	digits := func(o, n int) (string, bool) {
		var b strings.Builder
		for i := 0; i < n; i++ {
			ch, ok := l.peekAt(o + i)
			if !ok || !unicode.IsDigit(ch) {
				return "", false
			}
			b.WriteRune(ch)
		}
		return b.String(), true
	}

	y, ok := digits(offset, 4)
	if !ok {
		return "", false
	}
	dash1, ok := l.peekAt(offset + 4)
	if !ok || dash1 != '-' {
		return "", false
	}
	m, ok := digits(offset+5, 2)
	if !ok {
		return "", false
	}
	dash2, ok := l.peekAt(offset + 7)
	if !ok || dash2 != '-' {
		return "", false
	}
	d, ok := digits(offset+8, 2)
	if !ok {
		return "", false
	}
	if !l.matchAt(offset+10, "::") {
		return "", false
	}
	return y + "-" + m + "-" + d, true
}

// matchUpperIdentDoubleColon matches UpperIdent "::" at offset, without
// consuming, returning the matched identifier text.
func (l *Lexer) matchUpperIdentDoubleColon(offset int) (string, bool) {
	first, ok := l.peekAt(offset)
	if !ok || !unicode.IsUpper(first) {
		return "", false
	}
	var b strings.Builder
	b.WriteRune(first)
	i := offset + 1
	for {
		ch, ok := l.peekAt(i)
		if !ok {
			return "", false
		}
		if isIdentifierStart(ch) || unicode.IsDigit(ch) {
			b.WriteRune(ch)
			i++
			continue
		}
		break
	}
	if !l.matchAt(i, "::") {
		return "", false
	}
	return b.String(), true
}

func (l *Lexer) scanMinusOrArrow(start position.Position) token.Token {
	l.advance() // consume '-'
	if ch, ok := l.peek(); ok && ch == '>' {
		l.advance()
		tok := l.emit(token.ARROW, "->", start)
		// If an arrow keyword (no intervening whitespace) follows, scan it
		// as a single ARROW_KEYWORD token instead of a plain identifier.
		if kw, ok2 := l.tryScanArrowKeyword(); ok2 {
			return kw
		}
		return tok
	}
	return l.emit(token.RELATION_REMOVE, "-", start)
}

// tryScanArrowKeyword scans an immediately-following (no whitespace)
// identifier and, if it is a recognized arrow keyword, returns an
// ARROW_KEYWORD token for it. Otherwise it leaves the lexer position
// unchanged so normal scanning can proceed (whitespace before the keyword
// disqualifies the match, per §4.1).
func (l *Lexer) tryScanArrowKeyword() (token.Token, bool) {
	ch, ok := l.peek()
	if !ok || !isIdentifierStart(ch) {
		return token.Token{}, false
	}
	start := l.here()
	savedPos, savedLine, savedCol := l.pos, l.line, l.col

	var b strings.Builder
	b.WriteRune(l.advance())
	for {
		ch, ok := l.peek()
		if !ok || !(isIdentifierStart(ch) || unicode.IsDigit(ch)) {
			break
		}
		b.WriteRune(l.advance())
	}

	ident := b.String()
	if !token.IsArrowKeyword(ident) {
		// Not a keyword: rewind and let normal scanning emit an IDENTIFIER.
		l.pos, l.line, l.col = savedPos, savedLine, savedCol
		return token.Token{}, false
	}

	l.afterArrowKeyword = true
	tok := token.Token{
		Kind:  token.ARROW_KEYWORD,
		Text:  ident,
		Range: position.Range{Start: start, End: l.here()},
	}
	return tok, true
}

func (l *Lexer) scanColon(start position.Position) token.Token {
	l.advance()
	if ch, ok := l.peek(); ok && ch == ':' {
		l.advance()
		return l.emit(token.RELATION_DEFINES, "::", start)
	}
	return l.emit(token.RELATION_DEFINES, ":", start)
}

func (l *Lexer) scanPipe(start position.Position) token.Token {
	l.advance()
	if ch, ok := l.peek(); ok && ch == '|' {
		l.advance()
		return l.emit(token.LOGIC_OR, "||", start)
	}
	return l.emit(token.STRUCT_OR, "|", start)
}

func (l *Lexer) scanNumber(start position.Position) token.Token {
	var b strings.Builder
	for {
		ch, ok := l.peek()
		if !ok || !unicode.IsDigit(ch) {
			break
		}
		b.WriteRune(l.advance())
	}
	if ch, ok := l.peek(); ok && ch == '.' {
		if next, ok2 := l.peekAt(1); ok2 && unicode.IsDigit(next) {
			b.WriteRune(l.advance()) // '.'
			for {
				ch, ok := l.peek()
				if !ok || !unicode.IsDigit(ch) {
					break
				}
				b.WriteRune(l.advance())
			}
		}
	}
	return l.emit(token.NUMBER, b.String(), start)
}

func (l *Lexer) scanIdentifier(start position.Position) token.Token {
	var b strings.Builder
	b.WriteRune(l.advance())
	for {
		ch, ok := l.peek()
		if !ok || !isIdentifierContinue(ch) {
			break
		}
		b.WriteRune(l.advance())
	}
	return l.emit(token.IDENTIFIER, b.String(), start)
}

// isIdentifierContinue additionally allows '.', '/', and '*' so that file
// paths ("src/a.ts", "src/*.go") lex as one IDENTIFIER token instead of
// fragmenting on every separator. Characters that double as operators
// elsewhere in the grammar (notably '-', '?', '[') are deliberately left
// out; path-valued fields fall back to reading the raw source span (see
// parser.readRawSpan) when a path happens to contain one of those.
func isIdentifierContinue(ch rune) bool {
	return isIdentifierStart(ch) || unicode.IsDigit(ch) || ch == '.' || ch == '/' || ch == '*'
}

// operatorRunes is the closed set of Unicode code points reserved as
// operators; any such rune above U+007F cannot begin an identifier.
var operatorRunes = map[rune]bool{
	'≈': true, // ≈
	'✓': true, // ✓
	'✗': true, // ✗
	'⚡': true, // ⚡
	'→': true, // →
	'←': true, // ←
	'↔': true, // ↔
	'¬': true, // ¬
	'©': true, // ©
	'§': true, // §
	'—': true, // — em-dash (typography, not identifier)
	'‘': true, '’': true, // ‘ ’
	'“': true, '”': true, // “ ”
	'…': true, // …
	'⇒': true, // ⇒
}

func isIdentifierStart(ch rune) bool {
	if ch == '_' || (ch <= unicode.MaxASCII && unicode.IsLetter(ch)) {
		return true
	}
	if ch > unicode.MaxASCII {
		return !operatorRunes[ch]
	}
	return false
}
