package parser

import (
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// parseIntent handles rule 7: '@' UpperIdent '::' Ident arrow_clause*.
func (p *Parser) parseIntent() (ast.Statement, bool) {
	start := p.cur().Range.Start
	modTok := p.advance()
	module := strings.TrimSuffix(strings.TrimPrefix(modTok.Text, "@"), "::")

	if p.curKind() != token.IDENTIFIER {
		p.errorf("expected component name after %q", modTok.Text)
		p.synchronize()
		return ast.Statement{}, false
	}
	componentTok := p.advance()

	intent := &ast.IntentDeclaration{Module: module, Component: componentTok.Text}

	p.consumeArrowClauses(func(keyword string) {
		switch keyword {
		case "does":
			intent.Does = p.readScalarValue()
		case "doesNot":
			intent.DoesNot = p.readScalarValue()
		case "contract":
			intent.Contract = p.readScalarValue()
		case "singleResponsibility":
			intent.SingleResponsibility = p.readScalarValue()
		case "antiPattern":
			intent.AntiPattern = p.readScalarValue()
		case "extends":
			intent.Extends = p.readListItems()
		default:
			p.errorf("unexpected clause %q in intent declaration", keyword)
			p.readScalarValue()
		}
	})

	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	intent.Node = node
	return ast.Statement{Node: node, Kind: ast.StatementIntent, Intent: intent}, true
}
