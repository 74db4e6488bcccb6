package parser

import (
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// parseStatement dispatches on the current token per the priority order in
// §4.2 and returns the parsed statement, or ok=false if recovery discarded
// the line without producing one.
func (p *Parser) parseStatement() (ast.Statement, bool) {
	switch p.curKind() {
	case token.META_VERSION:
		return p.parseVersion()
	case token.STRUCT_SECTION:
		return p.parseSection()
	case token.LINK_FEATURE, token.LINK_TASK:
		return p.parseLink()
	case token.ANCHOR_ENTRY, token.ANCHOR_HOTSPOT, token.ANCHOR_BOUNDARY:
		return p.parseAnchor()
	case token.DECISION_DATE:
		return p.parseDecision()
	case token.HEAT_CRITICAL, token.HEAT_STABLE, token.HEAT_VOLATILE, token.HEAT_HOT:
		return p.parseHeat()
	case token.INTENT_MODULE:
		return p.parseIntent()
	case token.TEMPORAL_PAST, token.TEMPORAL_PRESENT, token.TEMPORAL_FUTURE, token.TEMPORAL_APPROX:
		if p.peekKindAt(1) == token.IDENTIFIER && p.peekKindAt(2) == token.RELATION_DEFINES {
			return p.parseAttribute()
		}
		return p.parseExpressionStatement()
	case token.STATE_COMPLETE, token.STATE_FAILED, token.STATE_CRITICAL, token.STATE_ACTIVE:
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVersion() (ast.Statement, bool) {
	start := p.cur().Range.Start
	verTok := p.advance() // META_VERSION

	if p.curKind() != token.IDENTIFIER {
		p.errorf("expected identifier after %q", verTok.Text)
		p.synchronize()
		return ast.Statement{}, false
	}
	nameTok := p.advance()

	if p.curKind() != token.RELATION_DEFINES {
		p.errorf("expected ':' or '::' after %q", nameTok.Text)
		p.synchronize()
		return ast.Statement{}, false
	}
	p.advance() // consume RELATION_DEFINES

	version := p.readRestOfLine()
	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	return ast.Statement{
		Node:    node,
		Kind:    ast.StatementVersion,
		Version: &ast.VersionStatement{Node: node, Name: nameTok.Text, Version: version},
	}, true
}

func (p *Parser) parseSection() (ast.Statement, bool) {
	tok := p.advance()
	name := strings.TrimSuffix(strings.TrimPrefix(tok.Text, "["), "]")
	node := ast.Node{Range: tok.Range}
	return ast.Statement{
		Node:    node,
		Kind:    ast.StatementSection,
		Section: &ast.SectionDeclaration{Node: node, Name: name},
	}, true
}

func temporalTagFor(kind token.Kind) ast.TemporalTag {
	switch kind {
	case token.TEMPORAL_PAST:
		return ast.TemporalPast
	case token.TEMPORAL_PRESENT:
		return ast.TemporalPresent
	case token.TEMPORAL_FUTURE:
		return ast.TemporalFuture
	case token.TEMPORAL_APPROX:
		return ast.TemporalApprox
	}
	return ast.TemporalNone
}

func (p *Parser) parseAttribute() (ast.Statement, bool) {
	start := p.cur().Range.Start
	tagTok := p.advance()
	nameTok := p.advance() // IDENTIFIER
	p.advance()            // RELATION_DEFINES

	value := p.parseExpression()

	var meta *ast.Metadata
	if p.curKind() == token.STRUCT_META {
		meta = p.parseMetadata()
	}

	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	return ast.Statement{
		Node: node,
		Kind: ast.StatementAttribute,
		Attribute: &ast.AttributeStatement{
			Node:     node,
			Temporal: temporalTagFor(tagTok.Kind),
			Name:     nameTok.Text,
			Value:    value,
			Metadata: meta,
		},
	}, true
}

func (p *Parser) parseExpressionStatement() (ast.Statement, bool) {
	start := p.cur().Range.Start
	if p.curKind() == token.NEWLINE || p.curKind() == token.EOF {
		return ast.Statement{}, false
	}
	expr := p.parseExpression()
	if expr == nil {
		p.errorf("unexpected token %s", p.curKind())
		p.advance()
		p.synchronize()
		return ast.Statement{}, false
	}
	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	return ast.Statement{
		Node:       node,
		Kind:       ast.StatementExpression,
		Expression: &ast.ExpressionStatement{Node: node, Expression: expr},
	}, true
}
