package lexer

import (
	"testing"

	"github.com/LoryBug/mbel/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexTemporalAndStateOperators(t *testing.T) {
	toks, errs := Lex("> @ ? ≈ ✓ ✗ ! ⚡")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []token.Kind{
		token.TEMPORAL_PAST, token.TEMPORAL_PRESENT, token.TEMPORAL_FUTURE, token.TEMPORAL_APPROX,
		token.STATE_COMPLETE, token.STATE_FAILED, token.STATE_CRITICAL, token.STATE_ACTIVE,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: got %v, want %v", i, got[i], k)
		}
	}
}

func TestLexArrowKeywordSwitchesBracketKind(t *testing.T) {
	toks, _ := Lex("->files[a, b]")
	var sawArrowKeyword, sawList bool
	for _, tk := range toks {
		if tk.Kind == token.ARROW_KEYWORD {
			sawArrowKeyword = true
		}
		if tk.Kind == token.STRUCT_LIST {
			sawList = true
		}
	}
	if !sawArrowKeyword {
		t.Error("expected an ARROW_KEYWORD token right after ->, with no intervening whitespace")
	}
	if !sawList {
		t.Error("expected the bracket right after the arrow keyword to be classified STRUCT_LIST")
	}
}

func TestLexPlainSectionIsNotList(t *testing.T) {
	toks, _ := Lex("[FOCUS]")
	found := false
	for _, tk := range toks {
		if tk.Kind == token.STRUCT_SECTION {
			found = true
		}
		if tk.Kind == token.STRUCT_LIST {
			t.Error("a section header with no preceding arrow keyword must not be STRUCT_LIST")
		}
	}
	if !found {
		t.Error("expected a STRUCT_SECTION token")
	}
}

func TestLexCodeFence(t *testing.T) {
	toks, errs := Lex("```go\nfmt.Println(1)\n```")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	found := false
	for _, tk := range toks {
		if tk.Kind == token.CODE_FENCE {
			found = true
		}
	}
	if !found {
		t.Error("expected a CODE_FENCE token")
	}
}

func TestLexNormalizeNewlines(t *testing.T) {
	got := NormalizeNewlines("a\r\nb\rc\n")
	want := "a\nb\nc\n"
	if got != want {
		t.Errorf("NormalizeNewlines(%q) = %q, want %q", "a\\r\\nb\\rc\\n", got, want)
	}
}

func TestLexAlwaysTerminatesWithEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "§ garbage \x00 text", "[[[[unterminated"} {
		toks, _ := Lex(src)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("Lex(%q) did not terminate with an EOF token", src)
		}
	}
}
