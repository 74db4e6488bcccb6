package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
	"github.com/LoryBug/mbel/internal/globsyntax"
)

// checkHeat covers the MBEL-HEAT-xxx family (§4.3): empty/invalid path,
// duplicates, invalid glob, non-numeric changes, and empty optional
// scalars.
func checkHeat(ctx *context) {
	seen := map[string]ast.Statement{}
	for _, s := range ctx.doc.Statements {
		if s.Kind != ast.StatementHeat {
			continue
		}
		h := s.Heat

		if h.Path == "" {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeHeatEmptyPath,
				"heat declaration has no path"))
		} else if strings.Contains(h.Path, " ") {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeHeatInvalidPath,
				fmt.Sprintf("heat path %q contains spaces", h.Path)))
		}

		if h.Path != "" {
			if first, ok := seen[h.Path]; ok {
				d := diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeHeatDuplicate,
					fmt.Sprintf("duplicate heat declaration for %q", h.Path))
				d.RelatedInfo = []diagnostic.RelatedInfo{{Range: first.Range, Message: "first declared here"}}
				ctx.add(d)
			} else {
				seen[h.Path] = s
			}
		}

		if h.IsGlob && (globsyntax.TripleAsterisk(h.Path) || !globsyntax.Valid(h.Path)) {
			ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeHeatInvalidGlob,
				fmt.Sprintf("invalid glob pattern %q", h.Path)))
		}

		for _, scalar := range []string{h.Untouched, h.Changes, h.Coverage, h.Confidence, h.Impact, h.Caution} {
			if scalar != "" && strings.TrimSpace(scalar) == "" {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeHeatEmptyScalar,
					fmt.Sprintf("heat %q has a blank scalar value", h.Path)))
				break
			}
		}

		if trimmed := strings.TrimSpace(h.Changes); trimmed != "" {
			if _, err := strconv.Atoi(trimmed); err != nil {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityError, diagnostic.CodeHeatNonNumeric,
					fmt.Sprintf("heat %q changes value %q is not numeric", h.Path, h.Changes)))
			}
		}
	}
}
