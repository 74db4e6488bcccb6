package parser

import (
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// parseLink handles rule 3: '@feature'/'@task' '{' NAME '}' arrow_clause*.
func (p *Parser) parseLink() (ast.Statement, bool) {
	start := p.cur().Range.Start
	headTok := p.advance()

	linkType := ast.LinkFeature
	if headTok.Kind == token.LINK_TASK {
		linkType = ast.LinkTask
	}

	if p.curKind() != token.STRUCT_META {
		p.errorf("expected '{name}' after %q", headTok.Text)
		p.synchronize()
		return ast.Statement{}, false
	}
	nameTok := p.advance()
	name := strings.TrimSpace(stripBrackets(nameTok.Text, '{', '}'))

	link := &ast.LinkDeclaration{LinkType: linkType, Name: name}

	p.consumeArrowClauses(func(keyword string) {
		switch keyword {
		case "files":
			link.Files = p.readFileRefs()
		case "tests":
			link.Tests = p.readFileRefs()
		case "docs":
			link.Docs = p.readFileRefs()
		case "decisions":
			link.Decisions = p.readListItems()
		case "related":
			link.Related = p.readListItems()
		case "depends", "deps":
			link.Depends = p.readListItems()
		case "blueprint":
			link.Blueprint = p.readListItems()
		case "features":
			link.Features = p.readListItems()
		case "entryPoint":
			link.EntryPoint = p.readEntryPoint()
		case "why":
			link.Why = p.readScalarValue()
		default:
			p.errorf("unexpected clause %q in link declaration", keyword)
			p.readScalarValue()
		}
	})

	node := ast.Node{Range: position.Span(start, p.cur().Range.Start)}
	link.Node = node
	return ast.Statement{Node: node, Kind: ast.StatementLink, Link: link}, true
}
