package result

import (
	"fmt"

	"github.com/LoryBug/mbel/internal/ast"
)

// WorkContext is getWorkContext's response: everything an agent about to
// work on a feature would want composed in one place — its files and
// tests, entry point, direct and transitive dependencies and dependents,
// the decisions reachable by following its `related` links, the heat
// entries covering its files, and any anchors covering its files.
type WorkContext struct {
	Feature      string
	Files        []ast.FileRef
	Tests        []ast.FileRef
	EntryPoint   *ast.EntryPoint
	Dependencies []string
	Dependents   []string
	Decisions    []ast.DecisionDeclaration
	Anchors      []ast.AnchorDeclaration
	Heat         []ast.HeatDeclaration
	Risk         RiskAssessment
}

func (r WorkContext) Kind() Kind { return WorkContextKind }

func (r WorkContext) String() string {
	return fmt.Sprintf("%s: %d files, %d deps, %d dependents, risk=%s",
		r.Feature, len(r.Files), len(r.Dependencies), len(r.Dependents), r.Risk.Level)
}
