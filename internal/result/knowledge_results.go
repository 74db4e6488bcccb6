package result

import (
	"fmt"
	"strings"

	"github.com/LoryBug/mbel/internal/ast"
)

// Anchors is the response shape shared by findAnchor and
// findAnchorsByType.
type Anchors struct {
	Anchors []ast.AnchorDeclaration
}

func (r Anchors) Kind() Kind { return AnchorsKind }

func (r Anchors) String() string {
	return fmt.Sprintf("%d anchor(s)", len(r.Anchors))
}

// Decisions is the response shape shared by findDecisions,
// findDecisionsByStatus, and findDecisionsByContext.
type Decisions struct {
	Decisions []ast.DecisionDeclaration
}

func (r Decisions) Kind() Kind { return DecisionsKind }

func (r Decisions) String() string {
	return fmt.Sprintf("%d decision(s)", len(r.Decisions))
}

// Intent is findIntent's response: a single match, or Found=false.
type Intent struct {
	Found  bool
	Intent ast.IntentDeclaration
}

func (r Intent) Kind() Kind { return IntentKind }

func (r Intent) String() string {
	if !r.Found {
		return "no matching intent"
	}
	return fmt.Sprintf("%s::%s", r.Intent.Module, r.Intent.Component)
}

// Intents is findIntentsByModule's response.
type Intents struct {
	Module  string
	Intents []ast.IntentDeclaration
}

func (r Intents) Kind() Kind { return IntentsKind }

func (r Intents) String() string {
	return fmt.Sprintf("%s: %d intent(s)", r.Module, len(r.Intents))
}

// SemanticSearch is semanticSearch's response: the substring-matched union
// across anchors, decisions, intents, and features.
type SemanticSearch struct {
	Query     string
	Anchors   []ast.AnchorDeclaration
	Decisions []ast.DecisionDeclaration
	Intents   []ast.IntentDeclaration
	Features  []ast.LinkDeclaration
}

func (r SemanticSearch) Kind() Kind { return SemanticSearchKind }

func (r SemanticSearch) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q: %d anchors, %d decisions, %d intents, %d features",
		r.Query, len(r.Anchors), len(r.Decisions), len(r.Intents), len(r.Features))
	return b.String()
}
