package analyzer

import (
	"fmt"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
)

// checkIntents covers the MBEL-INTENT-xxx family (§4.3): empty
// module/component, duplicate module::component pairs, empty clause
// bodies, and an empty extends list item.
func checkIntents(ctx *context) {
	seen := map[string]ast.Statement{}
	for _, s := range ctx.doc.Statements {
		if s.Kind != ast.StatementIntent {
			continue
		}
		in := s.Intent

		if in.Module == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeIntentEmptyModule,
				"intent has no module"))
		}
		if in.Component == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeIntentEmptyComponent,
				"intent has no component"))
		}

		if in.Module != "" && in.Component != "" {
			key := in.Module + "::" + in.Component
			if first, ok := seen[key]; ok {
				d := diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeIntentDuplicate,
					fmt.Sprintf("duplicate intent %q", key))
				d.RelatedInfo = []diagnostic.RelatedInfo{{Range: first.Range, Message: "first declared here"}}
				ctx.add(d)
			} else {
				seen[key] = s
			}
		}

		for _, clause := range []string{in.Does, in.DoesNot, in.Contract, in.SingleResponsibility, in.AntiPattern} {
			if clause != "" && strings.TrimSpace(clause) == "" {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeIntentEmptyClause,
					fmt.Sprintf("intent %s::%s has a blank clause", in.Module, in.Component)))
				break
			}
		}

		for _, ext := range in.Extends {
			if strings.TrimSpace(ext) == "" {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeIntentEmptyExtends,
					fmt.Sprintf("intent %s::%s has an empty extends entry", in.Module, in.Component)))
				break
			}
		}
	}
}
