package parser

import (
	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

var anchorTypes = map[token.Kind]ast.AnchorType{
	token.ANCHOR_ENTRY:    ast.AnchorEntry,
	token.ANCHOR_HOTSPOT:  ast.AnchorHotspot,
	token.ANCHOR_BOUNDARY: ast.AnchorBoundary,
}

// parseAnchor handles rule 4: anchor-prefix PATH arrow_clause*. The path is
// the raw source run up to the next whitespace or same-line "->", so it may
// contain characters ('-', '?', '[') that are operators elsewhere in the
// grammar.
func (p *Parser) parseAnchor() (ast.Statement, bool) {
	start := p.cur().Range.Start
	headTok := p.advance()

	path := p.readPathRun()
	anchor := &ast.AnchorDeclaration{
		AnchorType: anchorTypes[headTok.Kind],
		Path:       path,
		IsGlob:     isGlobPath(path),
	}

	p.consumeArrowClauses(func(keyword string) {
		switch keyword {
		case "descrizione", "description":
			anchor.Description = p.readScalarValue()
		default:
			p.errorf("unexpected clause %q in anchor declaration", keyword)
			p.readScalarValue()
		}
	})

	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	anchor.Node = node
	return ast.Statement{Node: node, Kind: ast.StatementAnchor, Anchor: anchor}, true
}
