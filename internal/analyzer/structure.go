package analyzer

import (
	"fmt"

	"github.com/LoryBug/mbel/internal/ast"
	"github.com/LoryBug/mbel/internal/diagnostic"
	"github.com/LoryBug/mbel/internal/position"
	"github.com/LoryBug/mbel/internal/token"
)

// checkMissingVersion warns when a non-empty document has no §MBEL version
// header, with a fix inserting one at the very start of the file.
func checkMissingVersion(ctx *context) {
	if len(ctx.doc.Statements) == 0 {
		return
	}
	for _, s := range ctx.doc.Statements {
		if s.Kind == ast.StatementVersion {
			return
		}
	}
	start := position.Position{Line: 1, Column: 1, Offset: 0}
	rng := position.Range{Start: start, End: start}
	d := diagnostic.New(rng, diagnostic.SeverityWarning, diagnostic.CodeMissingVersion,
		"document has no §MBEL version header")
	fix := diagnostic.QuickFix{
		Title:       "Insert §MBEL:5.0",
		IsPreferred: true,
		Edits:       []diagnostic.TextEdit{{Range: rng, NewText: "§MBEL:5.0\n"}},
	}
	ctx.add(d, fix)
}

// checkSections covers both the unused-section and duplicate-section
// checks, since both are single passes over the same section list.
func checkSections(ctx *context, checkUnused, checkDuplicate bool) {
	stmts := ctx.doc.Statements
	seen := map[string]ast.Statement{}
	for i, s := range stmts {
		if s.Kind != ast.StatementSection {
			continue
		}
		name := s.Section.Name

		if checkDuplicate {
			if first, ok := seen[name]; ok {
				d := diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeDuplicateSection,
					fmt.Sprintf("duplicate section %q", name))
				d.RelatedInfo = []diagnostic.RelatedInfo{{Range: first.Range, Message: "first declared here"}}
				ctx.add(d)
			} else {
				seen[name] = s
			}
		}

		if checkUnused {
			empty := i+1 >= len(stmts) || stmts[i+1].Kind == ast.StatementSection
			if empty {
				ctx.add(diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeUnusedSection,
					fmt.Sprintf("section %q has no content", name)))
			}
		}
	}
}

// checkDuplicateAttributes warns on a repeated top-level attribute name,
// pointing related info at the first occurrence.
func checkDuplicateAttributes(ctx *context) {
	seen := map[string]ast.Statement{}
	for _, s := range ctx.doc.Statements {
		if s.Kind != ast.StatementAttribute {
			continue
		}
		name := s.Attribute.Name
		if first, ok := seen[name]; ok {
			d := diagnostic.New(s.Range, diagnostic.SeverityWarning, diagnostic.CodeDuplicateAttribute,
				fmt.Sprintf("duplicate attribute %q", name))
			d.RelatedInfo = []diagnostic.RelatedInfo{{Range: first.Range, Message: "first declared here"}}
			ctx.add(d)
		} else {
			seen[name] = s
		}
	}
}

type bracketCheck struct {
	close byte
	code  string
}

var bracketChecks = map[token.Kind]bracketCheck{
	token.STRUCT_SECTION: {']', diagnostic.CodeUnclosedSection},
	token.STRUCT_LIST:    {']', diagnostic.CodeUnclosedSection},
	token.STRUCT_META:    {'}', diagnostic.CodeUnclosedMetadata},
	token.STRUCT_NOTE:    {')', diagnostic.CodeUnclosedNote},
	token.STRUCT_VARIANT: {'>', diagnostic.CodeUnclosedVariant},
}

// checkUnclosedBrackets re-derives closure from the verbatim token text and
// adds a diagnostic carrying a targeted quick fix, per §4.3. The lexer's
// error for the same bracket is also re-emitted by analyze with the same
// bracket-specific code, so an unclosed bracket yields both diagnostics.
func checkUnclosedBrackets(ctx *context) {
	for _, tok := range ctx.tokens {
		check, ok := bracketChecks[tok.Kind]
		if !ok {
			continue
		}
		if n := len(tok.Text); n > 0 && tok.Text[n-1] == check.close {
			continue
		}
		insertAt := position.Range{Start: tok.Range.End, End: tok.Range.End}
		d := diagnostic.New(tok.Range, diagnostic.SeverityError, check.code,
			fmt.Sprintf("unclosed %s", token.Names[tok.Kind]))
		fix := diagnostic.QuickFix{
			Title:       fmt.Sprintf("Insert %q", string(check.close)),
			IsPreferred: true,
			Edits:       []diagnostic.TextEdit{{Range: insertAt, NewText: string(check.close)}},
		}
		ctx.add(d, fix)
	}
}
