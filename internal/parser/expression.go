package parser

import (
	"strconv"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// parseExpression is the entrypoint into the precedence ladder from §4.2:
// logical-or, then logical-and, then logical-not, then the chain
// operators (all one precedence level, left-associative), then primary.
// Returns nil if no expression could be parsed at the cursor.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	if left == nil {
		return nil
	}
	for p.curKind() == token.LOGIC_OR {
		start := left.Pos().Range.Start
		p.advance()
		right := p.parseLogicalAnd()
		if right == nil {
			p.errorf("expected expression after '||'")
			break
		}
		node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
		left = ast.LogicExpression{Node: node, Operator: ast.LogicOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseLogicalNot()
	if left == nil {
		return nil
	}
	for p.curKind() == token.LOGIC_AND {
		start := left.Pos().Range.Start
		p.advance()
		right := p.parseLogicalNot()
		if right == nil {
			p.errorf("expected expression after '&'")
			break
		}
		node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
		left = ast.LogicExpression{Node: node, Operator: ast.LogicAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalNot() ast.Expression {
	if p.curKind() == token.LOGIC_NOT {
		start := p.cur().Range.Start
		p.advance()
		operand := p.parseLogicalNot()
		if operand == nil {
			p.errorf("expected expression after '¬'")
			return nil
		}
		node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
		return ast.LogicExpression{Node: node, Operator: ast.LogicNot, Right: operand}
	}
	return p.parseChain()
}

var chainOperators = map[token.Kind]ast.ChainOperator{
	token.RELATION_DEFINES:  ast.ChainDefines,
	token.RELATION_LEADS_TO: ast.ChainLeadsTo,
	token.RELATION_FROM:     ast.ChainFrom,
	token.RELATION_MUTUAL:   ast.ChainMutual,
	token.RELATION_AND:      ast.ChainAnd,
	token.RELATION_REMOVE:   ast.ChainRemove,
}

func (p *Parser) parseChain() ast.Expression {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}
	for {
		op, ok := chainOperators[p.curKind()]
		if !ok {
			break
		}
		start := left.Pos().Range.Start
		p.advance()
		right := p.parsePrimary()
		if right == nil {
			p.errorf("expected expression after chain operator")
			break
		}
		node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
		left = ast.ChainExpression{Node: node, Operator: op, Left: left, Right: right}
	}
	return left
}

func stateMarkerFor(kind token.Kind) (ast.StateMarker, bool) {
	switch kind {
	case token.STATE_COMPLETE:
		return ast.StateComplete, true
	case token.STATE_FAILED:
		return ast.StateFailed, true
	case token.STATE_CRITICAL:
		return ast.StateCritical, true
	case token.STATE_ACTIVE:
		return ast.StateActive, true
	}
	return 0, false
}

// parsePrimary handles Identifier | NumberLiteral | Note | Variant |
// Metadata, a leading state marker (prefix form, §4.2 rule 9), a trailing
// state marker (postfix form, as in scenario 1's "Work✓"), and trailing
// {metadata}/(note)/<variant> annotations.
func (p *Parser) parsePrimary() ast.Expression {
	if marker, ok := stateMarkerFor(p.curKind()); ok {
		start := p.cur().Range.Start
		p.advance()
		operand := p.parsePrimary()
		if operand == nil {
			node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
			return ast.StateExpression{Node: node, Marker: marker}
		}
		node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
		return ast.StateExpression{Node: node, Marker: marker, Operand: operand}
	}

	start := p.cur().Range.Start
	var base ast.Expression

	switch p.curKind() {
	case token.IDENTIFIER:
		tok := p.advance()
		node := ast.Node{Range: tok.Range}
		base = ast.Identifier{Node: node, Name: tok.Text}

	case token.NUMBER:
		tok := p.advance()
		lit := parseNumberLiteral(tok)
		if p.curKind() == token.QUANT_PERCENT {
			p.advance()
			lit.Unit = "%"
			lit.Node.Range = position.Span(tok.Range.Start, p.cur().Range.Start)
		}
		base = lit

	case token.STRUCT_NOTE:
		tok := p.advance()
		node := ast.Node{Range: tok.Range}
		base = ast.Note{Node: node, Text: strings.TrimSpace(stripBrackets(tok.Text, '(', ')'))}

	case token.STRUCT_VARIANT:
		tok := p.advance()
		base = ast.Variant{Node: ast.Node{Range: tok.Range}, Options: splitVariantOptions(tok.Text)}

	case token.STRUCT_META:
		base = p.parseMetadataExpr()

	default:
		return nil
	}

	if marker, ok := stateMarkerFor(p.curKind()); ok {
		p.advance()
		node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
		base = ast.StateExpression{Node: node, Marker: marker, Operand: base}
	}

	if p.curKind() == token.STRUCT_META || p.curKind() == token.STRUCT_NOTE || p.curKind() == token.STRUCT_VARIANT {
		return p.parseAnnotated(base, start)
	}
	return base
}

func (p *Parser) parseAnnotated(base ast.Expression, start position.Position) ast.Expression {
	ann := ast.Annotated{Base: base}
	for {
		switch p.curKind() {
		case token.STRUCT_META:
			m := p.parseMetadata()
			ann.Metadata = m
		case token.STRUCT_NOTE:
			tok := p.advance()
			ann.Note = &ast.Note{Node: ast.Node{Range: tok.Range}, Text: strings.TrimSpace(stripBrackets(tok.Text, '(', ')'))}
		case token.STRUCT_VARIANT:
			tok := p.advance()
			ann.Variant = &ast.Variant{Node: ast.Node{Range: tok.Range}, Options: splitVariantOptions(tok.Text)}
		default:
			ann.Node = ast.Node{Range: position.Span(start, p.cur().Range.Start)}
			return ann
		}
	}
}

// parseMetadata consumes a STRUCT_META token and builds a Metadata node:
// top-level comma-separated entries, each either "key:value" or a bare
// token.
func (p *Parser) parseMetadata() *ast.Metadata {
	tok := p.advance()
	body := stripBrackets(tok.Text, '{', '}')
	m := &ast.Metadata{Node: ast.Node{Range: tok.Range}, Pairs: map[string]string{}}
	for _, entry := range splitTopLevel(body) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, ":"); idx >= 0 {
			key := strings.TrimSpace(entry[:idx])
			val := strings.TrimSpace(entry[idx+1:])
			m.Pairs[key] = val
			continue
		}
		m.Bare = append(m.Bare, entry)
	}
	return m
}

func (p *Parser) parseMetadataExpr() ast.Expression {
	m := p.parseMetadata()
	return *m
}

func splitVariantOptions(text string) []string {
	body := stripBrackets(text, '<', '>')
	var opts []string
	for _, part := range strings.Split(body, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			opts = append(opts, part)
		}
	}
	return opts
}

func parseNumberLiteral(tok token.Token) ast.NumberLiteral {
	text := tok.Text
	value, _ := strconv.ParseFloat(text, 64)
	return ast.NumberLiteral{Node: ast.Node{Range: tok.Range}, Text: text, Value: value}
}
