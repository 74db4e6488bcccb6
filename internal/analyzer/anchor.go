package analyzer

import (
	"fmt"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
	"github.com/LoryBug/mbel/internal/globsyntax"
)

// checkAnchors covers the MBEL-ANCHOR-xxx family (§4.3): empty path,
// spaces in path, duplicate anchor per path, empty description, invalid
// glob.
func checkAnchors(ctx *context) {
	seen := map[string]ast.Statement{}
	for _, s := range ctx.doc.Statements {
		if s.Kind != ast.StatementAnchor {
			continue
		}
		a := s.Anchor

		if a.Path == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeAnchorEmptyPath,
				"anchor has no path"))
		} else if strings.Contains(a.Path, " ") {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeAnchorSpacesInPath,
				fmt.Sprintf("anchor path %q contains spaces", a.Path)))
		}

		if a.Path != "" {
			if first, ok := seen[a.Path]; ok {
				d := diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeAnchorDuplicate,
					fmt.Sprintf("duplicate anchor for %q", a.Path))
				d.RelatedInfo = []diagnostic.RelatedInfo{{Range: first.Range, Message: "first declared here"}}
				ctx.add(d)
			} else {
				seen[a.Path] = s
			}
		}

		if a.Description == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeAnchorEmptyDescription,
				fmt.Sprintf("anchor %q has no description", a.Path)))
		}

		if a.IsGlob && (globsyntax.TripleAsterisk(a.Path) || !globsyntax.Valid(a.Path)) {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeAnchorInvalidGlob,
				fmt.Sprintf("invalid glob pattern %q", a.Path)))
		}
	}
}
