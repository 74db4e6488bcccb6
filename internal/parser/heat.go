package parser

import (
	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

var heatTypes = map[token.Kind]ast.HeatType{
	token.HEAT_CRITICAL: ast.HeatCritical,
	token.HEAT_STABLE:   ast.HeatStable,
	token.HEAT_VOLATILE: ast.HeatVolatile,
	token.HEAT_HOT:      ast.HeatHot,
}

// parseHeat handles rule 6: heat-prefix PATH arrow_clause*.
func (p *Parser) parseHeat() (ast.Statement, bool) {
	start := p.cur().Range.Start
	headTok := p.advance()

	path := p.readPathRun()
	heat := &ast.HeatDeclaration{
		HeatType: heatTypes[headTok.Kind],
		Path:     path,
		IsGlob:   isGlobPath(path),
	}

	p.consumeArrowClauses(func(keyword string) {
		switch keyword {
		case "dependents":
			heat.Dependents = p.readListItems()
		case "untouched":
			heat.Untouched = p.readScalarValue()
		case "changes":
			heat.Changes = p.readScalarValue()
		case "coverage":
			heat.Coverage = p.readScalarValue()
		case "confidence":
			heat.Confidence = p.readScalarValue()
		case "impact":
			heat.Impact = p.readScalarValue()
		case "caution":
			heat.Caution = p.readScalarValue()
		default:
			p.errorf("unexpected clause %q in heat declaration", keyword)
			p.readScalarValue()
		}
	})

	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	heat.Node = node
	return ast.Statement{Node: node, Kind: ast.StatementHeat, Heat: heat}, true
}
