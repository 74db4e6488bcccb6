package result

import (
	"fmt"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
)

// FeatureFiles is getFeatureFiles's response: the file/test/doc references
// and entry point of a single feature or task.
type FeatureFiles struct {
	Name       string
	LinkType   ast.LinkType
	Files      []ast.FileRef
	Tests      []ast.FileRef
	Docs       []ast.FileRef
	EntryPoint *ast.EntryPoint
}

func (r FeatureFiles) Kind() Kind { return FeatureFilesKind }

func (r FeatureFiles) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d files, %d tests, %d docs", r.Name, len(r.Files), len(r.Tests), len(r.Docs))
	if r.EntryPoint != nil {
		fmt.Fprintf(&b, "\nentry point: %s", r.EntryPoint.File)
	}
	return b.String()
}

// Dependencies is getFeatureDependencies's response.
type Dependencies struct {
	Name       string
	Direct     []string
	Transitive []string
	Depth      int
}

func (r Dependencies) Kind() Kind { return DependenciesKind }

func (r Dependencies) String() string {
	return fmt.Sprintf("%s: %d direct, %d transitive (depth %d)", r.Name, len(r.Direct), len(r.Transitive), r.Depth)
}

// Dependents is findDependents's response: the direct-only feature set
// that depends on Name.
type Dependents struct {
	Name       string
	Dependents []string
}

func (r Dependents) Kind() Kind { return DependentsKind }

func (r Dependents) String() string {
	if len(r.Dependents) == 0 {
		return fmt.Sprintf("%s has no dependents", r.Name)
	}
	return fmt.Sprintf("%s has %d dependent(s): %s", r.Name, len(r.Dependents), strings.Join(r.Dependents, ", "))
}

// TransitiveDependencies is getTransitiveDependencies's response.
type TransitiveDependencies struct {
	Name         string
	Dependencies []string
}

func (r TransitiveDependencies) Kind() Kind { return TransitiveDependenciesKind }

func (r TransitiveDependencies) String() string {
	return fmt.Sprintf("%s: %d transitive dependencies", r.Name, len(r.Dependencies))
}

// CircularDependencies is detectCircularDependencies's response: zero or
// more cycles, each a node sequence starting and ending at the same
// feature.
type CircularDependencies struct {
	Cycles [][]string
}

func (r CircularDependencies) Kind() Kind { return CircularDependenciesKind }

func (r CircularDependencies) String() string {
	if len(r.Cycles) == 0 {
		return "no circular dependencies"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d cycle(s):", len(r.Cycles))
	for i, cycle := range r.Cycles {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, strings.Join(cycle, " -> "))
	}
	return b.String()
}
