package turtle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStatementTooLong reports a statement larger than
// DecodeOptions.MaxStatementBytes.
var ErrStatementTooLong = errors.New("statement exceeds configured limit")

// ErrUndefinedPrefix reports a prefixed name whose prefix was never declared.
var ErrUndefinedPrefix = errors.New("undefined prefix")

// Error is a syntax error found while decoding. It carries the position of
// the offending token and the text of its line up to that token.
type Error struct {
	Syntax  string // "turtle", "trig", "ntriples" or "nquads"
	Line    int    // 1-based
	Column  int    // 1-based, counted in runes
	Excerpt string
	Err     error

	// Recoverable is set when the decoder skipped past the bad statement
	// and can produce further statements.
	Recoverable bool
}

func (e *Error) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Syntax)
	if e.Line > 0 {
		fmt.Fprintf(&msg, ":%d:%d", e.Line, e.Column)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if excerpt := e.formatExcerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) formatExcerpt() string {
	const contextLen = 40
	text := []rune(e.Excerpt)
	if len(text) == 0 {
		return ""
	}
	start := 0
	if len(text) > contextLen {
		start = len(text) - contextLen
	}
	excerpt := string(text[start:])
	caret := len(text) - start
	if start > 0 {
		excerpt = "..." + excerpt
		caret += 3
	}
	if caret > 0 {
		caret--
	}
	return excerpt + "\n  " + strings.Repeat(" ", caret) + "^"
}
