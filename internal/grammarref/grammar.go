// Package grammarref is a narrow participle/v2 grammar covering version
// headers, section headers, and simple defines-attributes. It is used by
// its own tests and by the CLI's grammar subcommand as a line classifier;
// no test compares it against the hand-written recursive-descent parser.
// It is not a full MBEL grammar and is never used on the production parse
// path.
package grammarref

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Version", Pattern: `§MBEL:\d+\.\d+`},
	{Name: "Section", Pattern: `\[[A-Za-z0-9_ -]+\]`},
	{Name: "Define", Pattern: `::|:`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Line is one of the three recognized line shapes.
type Line struct {
	Version   *string        `parser:"(  @Version"`
	Section   *string        `parser:" | @Section"`
	Attribute *AttributeLine `parser:" | @@ )"`
}

// AttributeLine is "name :: value" or "name : value", restricted to a
// single trailing identifier — real MBEL attribute values are far
// richer (expressions, metadata, notes), which is exactly why this
// grammar is a cross-check sample, not a replacement parser.
type AttributeLine struct {
	Name  string `parser:"@Ident"`
	Value string `parser:"Define @Ident"`
}

var lineParser = participle.MustBuild[Line](participle.Lexer(refLexer))

// ParseLine parses one line against the reference grammar.
func ParseLine(s string) (*Line, error) {
	return lineParser.ParseString("", s)
}

// IsVersionLine reports whether s matches the version-header shape.
func IsVersionLine(s string) bool {
	l, err := ParseLine(s)
	return err == nil && l.Version != nil
}

// IsSectionLine reports whether s matches the section-header shape.
func IsSectionLine(s string) bool {
	l, err := ParseLine(s)
	return err == nil && l.Section != nil
}
