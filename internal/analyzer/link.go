package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
	"github.com/LoryBug/mbel/internal/globsyntax"
	"github.com/LoryBug/mbel/internal/graph"
)

func isValidLinkName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func checkLinkFileRefs(ctx *context, stmt ast.Statement, refs []ast.FileRef) {
	for _, ref := range refs {
		if ref.IsGlob && (globsyntax.TripleAsterisk(ref.Path) || !globsyntax.Valid(ref.Path)) {
			ctx.add(diagnostic.New(stmt.Range, diagnostic.SeverityError, diagnostic.CodeLinkInvalidGlob,
				fmt.Sprintf("invalid glob pattern %q", ref.Path)))
		}
		if lr := ref.LineRange; lr != nil {
			if lr.Start < 0 || lr.End < 0 {
				ctx.add(diagnostic.New(stmt.Range, diagnostic.SeverityError, diagnostic.CodeLinkInvalidLineRange,
					fmt.Sprintf("invalid line range on %q", ref.Path)))
			} else if lr.Start > lr.End {
				ctx.add(diagnostic.New(stmt.Range, diagnostic.SeverityError, diagnostic.CodeLinkLineRangeInverted,
					fmt.Sprintf("line range %d-%d is inverted on %q", lr.Start, lr.End, ref.Path)))
			}
		}
	}
}

// checkLinks covers the full MBEL-LINK-xxx family (§4.3): name validity and
// duplication, glob/line-range shape, cross-reference integrity in
// related/depends, dependency cycles, and orphan links.
func checkLinks(ctx *context) {
	var links []ast.Statement
	names := map[string]ast.Statement{}
	for _, s := range ctx.doc.Statements {
		if s.Kind != ast.StatementLink {
			continue
		}
		links = append(links, s)
		l := s.Link

		if l.Name == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeLinkMissingName,
				"link declaration has no name"))
		} else if !isValidLinkName(l.Name) {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeLinkInvalidName,
				fmt.Sprintf("%q is not a valid link name", l.Name)))
		}

		if l.Name != "" {
			if first, ok := names[l.Name]; ok {
				d := diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeLinkDuplicateName,
					fmt.Sprintf("duplicate link name %q", l.Name))
				d.RelatedInfo = []diagnostic.RelatedInfo{{Range: first.Range, Message: "first declared here"}}
				ctx.add(d)
			} else {
				names[l.Name] = s
			}
		}

		checkLinkFileRefs(ctx, s, l.Files)
		checkLinkFileRefs(ctx, s, l.Tests)
		checkLinkFileRefs(ctx, s, l.Docs)

		for _, rel := range l.Related {
			if rel == l.Name && l.Name != "" {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeLinkSelfReference,
					fmt.Sprintf("link %q lists itself in related", l.Name)))
			}
		}

		if len(l.Files) == 0 && len(l.Tests) == 0 {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeLinkOrphan,
				fmt.Sprintf("link %q has no files and no tests", l.Name)))
		}
	}

	dg := graph.CreateDependencyGraph()
	for _, s := range links {
		dg.EnsureNode(graph.NodeID(s.Link.Name))
	}
	for _, s := range links {
		l := s.Link
		for _, ref := range append(append([]string{}, l.Related...), l.Depends...) {
			if ref == "" {
				continue
			}
			if _, ok := names[ref]; !ok {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeLinkUndefinedReference,
					fmt.Sprintf("link %q references undefined link %q", l.Name, ref)))
				continue
			}
			if l.Name != "" {
				dg.EnsureEdge(graph.NodeID(l.Name), graph.NodeID(ref))
			}
		}
	}

	reported := map[string]bool{}
	for _, cycle := range dg.Cycles() {
		key := cycleKey(cycle)
		if reported[key] {
			continue
		}
		reported[key] = true
		if s, ok := names[string(cycle[0])]; ok {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeLinkCycle,
				fmt.Sprintf("circular dependency: %s", formatCycle(cycle))))
		}
	}
}

func cycleKey(cycle []graph.NodeID) string {
	parts := make([]string, len(cycle))
	for i, n := range cycle {
		parts[i] = string(n)
	}
	return strings.Join(parts, ",")
}

func formatCycle(cycle []graph.NodeID) string {
	return cycleKey(cycle)
}
