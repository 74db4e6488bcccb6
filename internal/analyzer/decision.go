package analyzer

import (
	"fmt"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
)

// checkDecisions covers the MBEL-DECISION-xxx family (§4.3): empty name,
// duplicates, invalid status, SUPERSEDED-without-supersededBy, dangling
// supersededBy targets, missing/empty reason, empty tradeoff, and
// context-path spacing.
func checkDecisions(ctx *context) {
	var decisions []ast.Statement
	names := map[string]ast.Statement{}
	for _, s := range ctx.doc.Statements {
		if s.Kind != ast.StatementDecision {
			continue
		}
		decisions = append(decisions, s)
		d := s.Decision

		if d.Name == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeDecisionEmptyName,
				"decision has no name"))
		} else if first, ok := names[d.Name]; ok {
			dg := diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeDecisionDuplicate,
				fmt.Sprintf("duplicate decision %q", d.Name))
			dg.RelatedInfo = []diagnostic.RelatedInfo{{Range: first.Range, Message: "first declared here"}}
			ctx.add(dg)
		} else {
			names[d.Name] = s
		}

		if d.Status == ast.StatusNone {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeDecisionInvalidStatus,
				fmt.Sprintf("decision %q has no recognized status", d.Name)))
		}
		if d.Status == ast.StatusSuperseded && d.SupersededBy == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeDecisionSupersededNoTarget,
				fmt.Sprintf("decision %q is SUPERSEDED but names no supersededBy target", d.Name)))
		}

		if d.Reason == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityHint, diagnostic.CodeDecisionMissingReason,
				fmt.Sprintf("decision %q has no reason", d.Name)))
		} else if strings.TrimSpace(d.Reason) == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeDecisionEmptyReason,
				fmt.Sprintf("decision %q has a blank reason", d.Name)))
		}
		if d.Tradeoff != "" && strings.TrimSpace(d.Tradeoff) == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeDecisionEmptyTradeoff,
				fmt.Sprintf("decision %q has a blank tradeoff", d.Name)))
		}

		for _, c := range d.Context {
			if strings.Contains(c, " ") {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeDecisionContextSpaces,
					fmt.Sprintf("decision %q context path %q contains spaces", d.Name, c)))
			}
		}
	}

	for _, s := range decisions {
		d := s.Decision
		if d.SupersededBy == "" {
			continue
		}
		if _, ok := names[d.SupersededBy]; !ok {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeDecisionDanglingSupersededBy,
				fmt.Sprintf("decision %q supersededBy references undefined decision %q", d.Name, d.SupersededBy)))
		}
	}
}
