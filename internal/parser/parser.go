// Package parser implements MBEL's hand-written, error-recovering,
// top-down parser (§4.2 of the language spec): it consumes the token
// stream produced by internal/lexer and builds an internal/ast.Document.
//
// A parse never aborts on malformed input. On a failure inside a
// statement the parser records an Error, discards tokens until the next
// NEWLINE or recognized statement-starter, and resumes at the top level —
// one bad line never takes the rest of the document down with it.
package parser

import (
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/lexer"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// Parser walks a fixed token slice with a movable cursor; random-access
// rewinding (used by the arrow-clause lookahead and by readRawSpan's
// resynchronization) is just saving and restoring an index.
type Parser struct {
	toks []token.Token
	pos  int
	src  []rune

	errs []Error
}

// Result is the output of a single Parse call.
type Result struct {
	Document *ast.Document
	Errors   []Error
}

// Parse tokenizes and parses source in one call. Lexical errors are
// reported alongside syntactic ones in Result.Errors.
func Parse(source string) Result {
	normalized := lexer.NormalizeNewlines(source)
	toks, lexErrs := lexer.Lex(source)

	p := &Parser{
		toks: toks,
		src:  []rune(normalized),
	}
	for _, e := range lexErrs {
		p.errs = append(p.errs, Error{Kind: e.Kind, Message: e.Message, Position: e.Position})
	}

	doc := &ast.Document{}
	p.skipNewlines()
	for !p.atEOF() {
		before := p.pos
		stmt, ok := p.parseStatement()
		if ok {
			doc.Statements = append(doc.Statements, stmt)
		}
		if p.pos == before {
			// Safety valve: parseStatement must always make progress.
			p.advance()
		}
		p.skipNewlines()
	}
	return Result{Document: doc, Errors: p.errs}
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) curKind() token.Kind {
	return p.toks[p.pos].Kind
}

func (p *Parser) atEOF() bool {
	return p.curKind() == token.EOF
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) peekKindAt(offset int) token.Kind {
	i := p.pos + offset
	if i < 0 || i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

func (p *Parser) skipNewlines() {
	for p.curKind() == token.NEWLINE {
		p.advance()
	}
}

// skipNewlinesPeek reports whether, after skipping zero or more NEWLINE
// tokens, the token at the cursor has the given kind, WITHOUT committing
// the skip unless the lookahead succeeds. Used by arrow-clause chaining,
// where a run of blank/continuation lines should only be consumed when
// another arrow clause actually follows.
func (p *Parser) skipNewlinesPeek(kind token.Kind) bool {
	saved := p.pos
	for p.curKind() == token.NEWLINE {
		p.advance()
	}
	if p.curKind() == kind {
		return true
	}
	p.pos = saved
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, errAt(p.cur().Range.Start, format, args...))
}

// synchronize discards tokens until the next NEWLINE or a token that is
// recognized as a statement-starter, so a single malformed line never
// prevents the rest of the document from parsing.
func (p *Parser) synchronize() {
	for {
		switch p.curKind() {
		case token.EOF, token.NEWLINE:
			return
		case token.META_VERSION, token.STRUCT_SECTION,
			token.LINK_FEATURE, token.LINK_TASK,
			token.ANCHOR_ENTRY, token.ANCHOR_HOTSPOT, token.ANCHOR_BOUNDARY,
			token.DECISION_DATE, token.INTENT_MODULE,
			token.HEAT_CRITICAL, token.HEAT_STABLE, token.HEAT_VOLATILE, token.HEAT_HOT:
			return
		}
		p.advance()
	}
}

// currentOffset is the rune offset into the normalized source at which the
// current token begins.
func (p *Parser) currentOffset() int {
	return p.cur().Range.Start.Offset
}

// syncToOffset advances the token cursor to the first token starting at or
// after offset, used after a raw-span read to resume ordinary token-based
// parsing.
func (p *Parser) syncToOffset(offset int) {
	for p.curKind() != token.EOF && p.cur().Range.Start.Offset < offset {
		p.pos++
	}
}

// readRawSpan reads source text verbatim, starting at the current token,
// up to (not including) the first rune for which stop returns true (or
// end of source), then resynchronizes the token cursor past whatever
// tokens that span consumed.
//
// This is the escape hatch described in the lexer's isIdentifierContinue
// doc: PATH-valued
// fields may contain characters ('-', '?', '[') that are meaningful
// operators elsewhere in the grammar and so do not lex as part of a single
// IDENTIFIER. Reading the original source string directly sidesteps that
// without complicating the lexer's token classification.
func (p *Parser) readRawSpan(stop func(rune) bool) string {
	start := p.currentOffset()
	i := start
	for i < len(p.src) && !stop(p.src[i]) {
		i++
	}
	text := string(p.src[start:i])
	p.syncToOffset(i)
	return text
}

// readRestOfLine reads the remainder of the current line verbatim and
// trims surrounding whitespace.
func (p *Parser) readRestOfLine() string {
	text := p.readRawSpan(func(r rune) bool { return r == '\n' })
	return strings.TrimSpace(text)
}

// readPathRun reads a bare path or glob, which may contain characters the
// lexer treats as operators: the raw run up to the next whitespace or the
// next "->" that starts an arrow clause on the same line.
func (p *Parser) readPathRun() string {
	start := p.currentOffset()
	i := start
	for i < len(p.src) {
		r := p.src[i]
		if r == ' ' || r == '\t' || r == '\n' {
			break
		}
		if r == '-' && i+1 < len(p.src) && p.src[i+1] == '>' {
			break
		}
		i++
	}
	p.syncToOffset(i)
	return strings.TrimSpace(string(p.src[start:i]))
}

func isGlobPath(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

func posOf(tok token.Token) position.Range {
	return tok.Range
}
