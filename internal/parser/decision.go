package parser

import (
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

func decisionStatusFor(raw string) ast.DecisionStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE":
		return ast.StatusActive
	case "SUPERSEDED":
		return ast.StatusSuperseded
	case "RECONSIDERING":
		return ast.StatusReconsidering
	}
	return ast.StatusNone
}

// parseDecision handles rule 5: '@' DATE '::' NAME arrow_clause*. The
// lexer's DECISION_DATE token carries "@YYYY-MM-DD::" verbatim; the name
// follows as a plain identifier.
func (p *Parser) parseDecision() (ast.Statement, bool) {
	start := p.cur().Range.Start
	dateTok := p.advance()
	date := strings.TrimSuffix(strings.TrimPrefix(dateTok.Text, "@"), "::")

	if p.curKind() != token.IDENTIFIER {
		p.errorf("expected decision name after %q", dateTok.Text)
		p.synchronize()
		return ast.Statement{}, false
	}
	nameTok := p.advance()

	decision := &ast.DecisionDeclaration{Date: date, Name: nameTok.Text}

	p.consumeArrowClauses(func(keyword string) {
		switch keyword {
		case "reason":
			decision.Reason = p.readScalarValue()
		case "tradeoff":
			decision.Tradeoff = p.readScalarValue()
		case "revisit":
			decision.Revisit = p.readScalarValue()
		case "status":
			decision.Status = decisionStatusFor(p.readScalarValue())
		case "supersededBy":
			decision.SupersededBy = p.readScalarValue()
		case "alternatives":
			decision.Alternatives = p.readListItems()
		case "context":
			decision.Context = p.readListItems()
		default:
			p.errorf("unexpected clause %q in decision declaration", keyword)
			p.readScalarValue()
		}
	})

	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	decision.Node = node
	return ast.Statement{Node: node, Kind: ast.StatementDecision, Decision: decision}, true
}
