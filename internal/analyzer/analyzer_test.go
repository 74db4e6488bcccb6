package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoryBug/mbel/internal/diagnostic"
)

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func TestAnalyzeTextMissingVersion(t *testing.T) {
	res := New(DefaultChecks()).AnalyzeText("[FOCUS]\nsomething::value\n")
	assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeMissingVersion)
}

func TestAnalyzeTextDuplicateSection(t *testing.T) {
	t.Run("duplicate section is flagged", func(t *testing.T) {
		res := New(DefaultChecks()).AnalyzeText("§MBEL:1.0\n[FOCUS]\nfoo::bar\n[FOCUS]\nbaz::qux\n")
		assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeDuplicateSection)
	})

	t.Run("single section is not flagged", func(t *testing.T) {
		res := New(DefaultChecks()).AnalyzeText("§MBEL:1.0\n[FOCUS]\nfoo::bar\n")
		assert.NotContains(t, codes(res.Diagnostics), diagnostic.CodeDuplicateSection)
	})
}

func TestAnalyzeLinkCycle(t *testing.T) {
	src := "§MBEL:1.0\n" +
		"@feature{a}->depends[b]\n" +
		"@feature{b}->depends[a]\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeLinkCycle)
}

func TestAnalyzeLinkUndefinedReference(t *testing.T) {
	src := "§MBEL:1.0\n@feature{a}->depends[ghost]\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeLinkUndefinedReference)
}

func TestAnalyzeLinkSelfReference(t *testing.T) {
	src := "§MBEL:1.0\n@feature{a}->related[a]\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeLinkSelfReference)
}

func TestAnalyzeHeatNonNumericChanges(t *testing.T) {
	src := "§MBEL:1.0\n@critical::src/foo.go->changes::not-a-number\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeHeatNonNumeric)
}

func TestAnalyzeHeatDuplicatePath(t *testing.T) {
	src := "§MBEL:1.0\n@critical::src/foo.go\n@stable::src/foo.go\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	require.Contains(t, codes(res.Diagnostics), diagnostic.CodeHeatDuplicate)

	var dup diagnostic.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == diagnostic.CodeHeatDuplicate {
			dup = d
		}
	}
	assert.NotEmpty(t, dup.RelatedInfo, "duplicate heat diagnostic should point back at the first declaration")
}

func TestAnalyzeDecisionSupersededRequiresTarget(t *testing.T) {
	src := "§MBEL:1.0\n@2024-01-01::oldApproach->status::SUPERSEDED\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeDecisionSupersededNoTarget)
}

func TestAnalyzeIntentDuplicate(t *testing.T) {
	src := "§MBEL:1.0\n@Auth::Login->does::authenticates a user\n@Auth::Login->does::something else\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	assert.Contains(t, codes(res.Diagnostics), diagnostic.CodeIntentDuplicate)
}

func TestAnalyzeNoFindingsOnCleanDocument(t *testing.T) {
	src := "§MBEL:1.0\n[FOCUS]\n@feature{auth}->files[src/auth.go]\n"
	res := New(DefaultChecks()).AnalyzeText(src)
	for _, d := range res.Diagnostics {
		if d.Severity == diagnostic.SeverityError {
			t.Errorf("unexpected error diagnostic on a clean document: %+v", d)
		}
	}
}

func TestChecksCanBeDisabledIndependently(t *testing.T) {
	checks := DefaultChecks()
	checks.MissingVersion = false
	res := New(checks).AnalyzeText("[FOCUS]\nfoo::bar\n")
	assert.NotContains(t, codes(res.Diagnostics), diagnostic.CodeMissingVersion)
}
