package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/LoryBug/mbel/internal/diagnostic"
	"github.com/LoryBug/mbel/internal/token"
)

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// checkArticleUsage warns on standalone English articles (case-insensitive,
// word-bounded). The quick fix removes the article and one trailing space,
// matching scenario 7's "the " (length 4) fix.
func checkArticleUsage(ctx *context) {
	runes := ctx.runes
	i := 0
	for i < len(runes) {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		word := string(runes[i:j])
		switch strings.ToLower(word) {
		case "the", "a", "an":
			fixEnd := j
			if fixEnd < len(runes) && runes[fixEnd] == ' ' {
				fixEnd++
			}
			d := diagnostic.New(ctx.rangeAt(i, j), diagnostic.SeverityWarning, diagnostic.CodeArticleUsage,
				fmt.Sprintf("avoid standalone article %q", word))
			fix := diagnostic.QuickFix{
				Title:       fmt.Sprintf("Remove %q", word),
				IsPreferred: true,
				Edits:       []diagnostic.TextEdit{{Range: ctx.rangeAt(i, fixEnd), NewText: ""}},
			}
			ctx.add(d, fix)
		}
		i = j
	}
}

// checkNonCamelCase warns on identifiers containing underscores.
func checkNonCamelCase(ctx *context) {
	for _, tok := range ctx.tokens {
		if tok.Kind != token.IDENTIFIER {
			continue
		}
		if strings.Contains(tok.Text, "_") {
			ctx.add(diagnostic.New(tok.Range, diagnostic.SeverityWarning, diagnostic.CodeNonCamelCase,
				fmt.Sprintf("identifier %q should be camelCase", tok.Text)))
		}
	}
}

type typoFix struct {
	code  string
	ascii string
}

// typoRunes maps each flagged Unicode code point to its diagnostic code
// and ASCII replacement. → and ⇒ share a replacement ("->") but keep
// separate codes since they're visually distinct mistakes.
var typoRunes = map[rune]typoFix{
	'→': {diagnostic.CodeTypoArrow, "->"},
	'⇒': {diagnostic.CodeTypoFatArrow, "->"},
	'←': {diagnostic.CodeTypoLeftArrow, "<-"},
	'↔': {diagnostic.CodeTypoDoubleArrow, "<->"},
	'—': {diagnostic.CodeTypoEmDash, "--"},
	'…': {diagnostic.CodeTypoEllipsis, "..."},
	'‘': {diagnostic.CodeTypoCurlyQuote, "'"},
	'’': {diagnostic.CodeTypoCurlyQuote, "'"},
	'“': {diagnostic.CodeTypoCurlyQuote, "\""},
	'”': {diagnostic.CodeTypoCurlyQuote, "\""},
}

// checkUnicodeTypography flags the Unicode operator/punctuation look-alikes
// from §4.3 at error severity, each with a preferred fix substituting the
// ASCII form. Scanning raw runes rather than tokens means this fires
// identically whether the lexer tokenized the rune as an operator (→, ←,
// ↔) or fell through to UNKNOWN (⇒, em-dash, curly quotes, ellipsis) — and
// it never fires on an all-ASCII document, satisfying §9's "valid
// ASCII-arrow documents never raise typo diagnostics".
func checkUnicodeTypography(ctx *context) {
	for i, r := range ctx.runes {
		fix, ok := typoRunes[r]
		if !ok {
			continue
		}
		rng := ctx.rangeAt(i, i+1)
		d := diagnostic.New(rng, diagnostic.SeverityError, fix.code,
			fmt.Sprintf("use %q instead of %q", fix.ascii, string(r)))
		quickFix := diagnostic.QuickFix{
			Title:       fmt.Sprintf("Replace with %q", fix.ascii),
			IsPreferred: true,
			Edits:       []diagnostic.TextEdit{{Range: rng, NewText: fix.ascii}},
		}
		ctx.add(d, quickFix)
	}
}
