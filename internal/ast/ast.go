// Package ast defines the MBEL abstract syntax tree: a flat Document of
// tagged-union Statement values plus the Expression variants nested inside
// them. Nodes are data only — this mirrors the teacher's discriminated
// "exactly one of these fields is non-nil" shape (see CreateAST/QueryAST in
// the DSL this pipeline was adapted from), generalized to sections, links,
// anchors, decisions, heat, and intent declarations instead of graph
// mutation statements.
package ast

import "github.com/LoryBug/mbel/internal/position"

// Node is the common base every statement and expression embeds.
type Node struct {
	Range position.Range
}

// Document is the immutable result of a single parse call: an ordered
// sequence of statements. Rebuilding (re-parsing) is the only way to
// refresh it — there is no in-place mutation API.
type Document struct {
	Statements []Statement
}

// StatementKind tags which field of Statement is populated.
type StatementKind int

const (
	StatementSection StatementKind = iota
	StatementVersion
	StatementAttribute
	StatementExpression
	StatementLink
	StatementAnchor
	StatementDecision
	StatementHeat
	StatementIntent
)

// Statement is a tagged union over the nine declaration shapes in §3.
// Exactly one of the Xxx fields is non-nil, selected by Kind.
type Statement struct {
	Node
	Kind StatementKind

	Section    *SectionDeclaration
	Version    *VersionStatement
	Attribute  *AttributeStatement
	Expression *ExpressionStatement
	Link       *LinkDeclaration
	Anchor     *AnchorDeclaration
	Decision   *DecisionDeclaration
	Heat       *HeatDeclaration
	Intent     *IntentDeclaration
}

type SectionDeclaration struct {
	Node
	Name string
}

type VersionStatement struct {
	Node
	Name    string
	Version string
}

// TemporalTag is the optional tag on an AttributeStatement.
type TemporalTag int

const (
	TemporalNone TemporalTag = iota
	TemporalPast
	TemporalPresent
	TemporalFuture
	TemporalApprox
)

type AttributeStatement struct {
	Node
	Temporal TemporalTag
	Name     string
	Value    Expression
	Metadata *Metadata
}

type ExpressionStatement struct {
	Node
	Expression Expression
}

// LinkType distinguishes @feature from @task declarations.
type LinkType int

const (
	LinkFeature LinkType = iota
	LinkTask
)

// EntryPoint is the optional ->entryPoint{file[:symbol[:line]]} clause.
type EntryPoint struct {
	File   string
	Symbol string
	Line   *int
}

type LinkDeclaration struct {
	Node
	LinkType LinkType
	Name     string

	Files     []FileRef
	Tests     []FileRef
	Docs      []FileRef
	Decisions []string
	Related   []string
	Depends   []string
	Blueprint []string
	Features  []string

	EntryPoint *EntryPoint
	Why        string
}

// FileRefMarker is the optional {TO-CREATE}/{TO-MODIFY} tag on a file item.
type FileRefMarker int

const (
	MarkerNone FileRefMarker = iota
	MarkerToCreate
	MarkerToModify
)

type LineRange struct {
	Start int
	End   int
}

type FileRef struct {
	Path      string
	Marker    FileRefMarker
	LineRange *LineRange
	IsGlob    bool
}

type AnchorType int

const (
	AnchorEntry AnchorType = iota
	AnchorHotspot
	AnchorBoundary
)

type AnchorDeclaration struct {
	Node
	AnchorType  AnchorType
	Path        string
	IsGlob      bool
	Description string
}

type DecisionStatus int

const (
	StatusNone DecisionStatus = iota
	StatusActive
	StatusSuperseded
	StatusReconsidering
)

type DecisionDeclaration struct {
	Node
	Date         string
	Name         string
	Status       DecisionStatus
	Reason       string
	Tradeoff     string
	Revisit      string
	SupersededBy string
	Alternatives []string
	Context      []string
}

type HeatType int

const (
	HeatCritical HeatType = iota
	HeatStable
	HeatVolatile
	HeatHot
)

type HeatDeclaration struct {
	Node
	HeatType   HeatType
	Path       string
	IsGlob     bool
	Dependents []string
	Untouched  string
	Changes    string
	Coverage   string
	Confidence string
	Impact     string
	Caution    string
}

type IntentDeclaration struct {
	Node
	Module               string
	Component            string
	Does                 string
	DoesNot              string
	Contract             string
	SingleResponsibility string
	AntiPattern          string
	Extends              []string
}
