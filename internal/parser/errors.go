package parser

import (
	"fmt"

	"github.com/LoryBug/mbel/internal/position"
)

// Error is a non-fatal syntactic error, or a lexical error re-emitted
// alongside them (§4.3 "re-emitted as diagnostics"). The parser always
// synchronizes and continues after recording one; a fully malformed
// document still yields a Document (possibly with zero statements) plus a
// non-empty error list.
type Error struct {
	// Kind carries the originating lexer.Error.Kind for a re-emitted
	// lexical error ("Unclosed", "UnknownCharacter"); empty for a genuine
	// syntax error, so callers can tell the two apart without a second
	// lex pass.
	Kind     string
	Message  string
	Position position.Position
}

func (e Error) Error() string {
	return fmt.Sprintf("parse error at %v: %v", e.Position, e.Message)
}

func errAt(pos position.Position, format string, args ...any) Error {
	return Error{Message: fmt.Sprintf(format, args...), Position: pos}
}
