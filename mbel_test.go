package mbel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoryBug/mbel/internal/merge"
	"github.com/LoryBug/mbel/internal/query"
)

func TestParseAndAnalyzeDefault(t *testing.T) {
	doc := Parse("§MBEL:1.0\n[FOCUS]\n@feature{auth}->files[src/auth.go]\n")
	require.Empty(t, doc.Errors)

	res := doc.AnalyzeDefault()
	for _, d := range res.Diagnostics {
		assert.NotEqual(t, "error", d.Severity.String(), "clean document should have no error diagnostics: %+v", d)
	}
}

func TestDocumentQueryBuildsEngineLazily(t *testing.T) {
	doc := Parse("§MBEL:1.0\n@feature{auth}->files[src/auth.go]\n")

	res, err := doc.Query(query.FeatureFilesQuery{Name: "auth"})
	require.NoError(t, err)
	ff := res.(FeatureFiles)
	assert.Equal(t, "auth", ff.Name)
}

func TestMarshalResultJSONHandlesNilResult(t *testing.T) {
	b, err := MarshalResultJSON(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"null","data":null}`, string(b))
}

func TestFindInsertionPointFacade(t *testing.T) {
	ip := FindInsertionPoint("[FOCUS]\nfoo\n", merge.Delta{Section: "FOCUS", Text: "bar"})
	assert.False(t, ip.IsNewSection)
}

func TestDetectConflictsFacade(t *testing.T) {
	conflicts := DetectConflicts([]string{
		"@task{a}->status::active",
		"@task{a}->status::blocked",
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, "a", conflicts[0].ID)
}
