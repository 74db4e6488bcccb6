package lexer

import (
	"fmt"

	"github.com/LoryBug/mbel/internal/position"
)

// Error is a non-fatal lexical error: an unknown character or an
// unterminated bracket/code-fence. The lexer always continues after
// recording one.
type Error struct {
	Kind     string
	Message  string
	Position position.Position
}

func (e Error) Error() string {
	return fmt.Sprintf("lex error (%v) at %v: %v", e.Kind, e.Position, e.Message)
}

func unclosed(kind string, at position.Position) Error {
	return Error{
		Kind:     "Unclosed",
		Message:  fmt.Sprintf("Unclosed %s", kind),
		Position: at,
	}
}

func unknownCharacter(ch rune, at position.Position) Error {
	return Error{
		Kind:     "UnknownCharacter",
		Message:  fmt.Sprintf("unexpected character %q", ch),
		Position: at,
	}
}
