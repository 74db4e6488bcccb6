package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoryBug/mbel/internal/parser"
	"github.com/LoryBug/mbel/internal/result"
)

func build(t *testing.T, src string) *Engine {
	t.Helper()
	res := parser.Parse(src)
	require.Empty(t, res.Errors, "unexpected parse errors")
	return BuildFromDocument(res.Document)
}

const depGraphSrc = `§MBEL:1.0
@feature{core}->files[src/core.go]->tests[src/core_test.go]
@feature{auth}->files[src/auth.go]->depends[core]
@feature{api}->files[src/api.go]->depends[auth, core]
`

func TestFeatureFilesQuery(t *testing.T) {
	e := build(t, depGraphSrc)

	res, err := e.Execute(FeatureFilesQuery{Name: "core"})
	require.NoError(t, err)
	ff := res.(result.FeatureFiles)
	assert.Equal(t, "core", ff.Name)
	require.Len(t, ff.Files, 1)
	assert.Equal(t, "src/core.go", ff.Files[0].Path)
	require.Len(t, ff.Tests, 1)

	res, err = e.Execute(FeatureFilesQuery{Name: "ghost"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestFeatureDependenciesQuery(t *testing.T) {
	e := build(t, depGraphSrc)

	res, err := e.Execute(FeatureDependenciesQuery{Name: "api"})
	require.NoError(t, err)
	deps := res.(result.Dependencies)
	assert.ElementsMatch(t, []string{"auth", "core"}, deps.Direct)
	assert.ElementsMatch(t, []string{"auth", "core"}, deps.Transitive)

	_, err = e.Execute(FeatureDependenciesQuery{Name: "ghost"})
	assert.Error(t, err)
}

func TestDependentsQuery(t *testing.T) {
	e := build(t, depGraphSrc)

	res, err := e.Execute(DependentsQuery{Name: "core"})
	require.NoError(t, err)
	deps := res.(result.Dependents)
	assert.ElementsMatch(t, []string{"auth", "api"}, deps.Dependents)
}

func TestCircularDependenciesQuery(t *testing.T) {
	src := "§MBEL:1.0\n@feature{a}->depends[b]\n@feature{b}->depends[a]\n"
	e := build(t, src)

	res, err := e.Execute(CircularDependenciesQuery{})
	require.NoError(t, err)
	cycles := res.(result.CircularDependencies)
	require.Len(t, cycles.Cycles, 1)
	require.Len(t, cycles.Cycles[0], 3, "a cycle is reported as a closed sequence")
	assert.Equal(t, cycles.Cycles[0][0], cycles.Cycles[0][2], "a cycle starts and ends at the same feature")
	assert.ElementsMatch(t, []string{"a", "b"}, cycles.Cycles[0][:2])
}

func TestEditRiskQuery(t *testing.T) {
	src := "§MBEL:1.0\n" +
		"@feature{core}->files[src/core.go]\n" +
		"@feature{auth}->files[src/auth.go]->depends[core]\n" +
		"@critical::src/core.go\n"
	e := build(t, src)

	res, err := e.Execute(EditRiskQuery{Path: "src/core.go"})
	require.NoError(t, err)
	risk := res.(result.RiskAssessment)
	assert.Equal(t, result.RiskHigh, risk.Level)

	res, err = e.Execute(EditRiskQuery{Path: "unknown/path.go"})
	require.NoError(t, err)
	assert.Equal(t, result.RiskUnknown, res.(result.RiskAssessment).Level)
}

func TestImpactAnalysisQuery(t *testing.T) {
	e := build(t, depGraphSrc)

	res, err := e.Execute(ImpactAnalysisQuery{Files: []string{"src/core.go"}})
	require.NoError(t, err)
	impact := res.(result.Impact)
	assert.Contains(t, impact.AffectedFeatures, "core")
	assert.Contains(t, impact.DependentFeatures, "auth")
	assert.Contains(t, impact.DependentFeatures, "api")
	assert.Contains(t, impact.AffectedTests, "src/core_test.go")
}

func TestSimulateAddDependencyDetectsCycle(t *testing.T) {
	e := build(t, depGraphSrc)

	res, err := e.Execute(SimulateQuery{Op: SimAddDependency, From: "core", To: "api"})
	require.NoError(t, err)
	sim := res.(result.Simulation)
	assert.True(t, sim.Circular, "adding core->api should be rejected as circular")
}

func TestSimulateDoesNotMutateEngineGraph(t *testing.T) {
	e := build(t, depGraphSrc)

	res, err := e.Execute(SimulateQuery{Op: SimAddDependency, From: "core", To: "standalone"})
	require.NoError(t, err)
	sim := res.(result.Simulation)
	assert.False(t, sim.Circular)

	got, err := e.Execute(FeatureDependenciesQuery{Name: "core"})
	require.NoError(t, err)
	deps := got.(result.Dependencies)
	assert.NotContains(t, deps.Direct, "standalone", "simulate must operate on a clone, never the stored graph")
}

func TestWorkContextQuery(t *testing.T) {
	src := "§MBEL:1.0\n" +
		"@feature{core}->files[src/core.go]\n" +
		"@feature{auth}->files[src/auth.go]->related[core]->decisions[useJwt]\n" +
		"@2024-01-01::useJwt->reason::keep it simple->status::active\n" +
		"@feature{api}->files[src/api.go]->depends[auth, core]->related[auth]\n" +
		"@hotspot::src/api.go->description::frequently edited\n" +
		"@critical::src/api.go\n"
	e := build(t, src)

	res, err := e.Execute(WorkContextQuery{Feature: "api"})
	require.NoError(t, err)
	wc := res.(result.WorkContext)

	assert.ElementsMatch(t, []string{"auth", "core"}, wc.Dependencies, "getWorkContext dependencies must be direct+transitive")
	assert.Empty(t, wc.Dependents)

	require.Len(t, wc.Decisions, 1, "decisions reachable via related must include auth's useJwt decision, not just api's own")
	assert.Equal(t, "useJwt", wc.Decisions[0].Name)

	require.Len(t, wc.Anchors, 1)
	assert.Equal(t, "src/api.go", wc.Anchors[0].Path)

	require.Len(t, wc.Heat, 1, "heat entries must cover the feature's files")
	assert.Equal(t, "src/api.go", wc.Heat[0].Path)

	_, err = e.Execute(WorkContextQuery{Feature: "ghost"})
	assert.Error(t, err)
}

func TestSemanticSearchQuery(t *testing.T) {
	src := "§MBEL:1.0\n" +
		"@feature{auth}->files[src/auth.go]\n" +
		"@hotspot::src/auth.go->description::tricky session handling\n"
	e := build(t, src)

	res, err := e.Execute(SemanticSearchQuery{Query: "auth"})
	require.NoError(t, err)
	sr := res.(result.SemanticSearch)
	assert.NotEmpty(t, sr.Anchors)
	assert.NotEmpty(t, sr.Features)
}
