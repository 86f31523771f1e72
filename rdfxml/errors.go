package rdfxml

import (
	"errors"
	"fmt"
)

// ErrEncoderClosed is returned by writes after Close.
var ErrEncoderClosed = errors.New("rdfxml: encoder closed")

// ErrIllegalChar is returned for statements holding characters XML 1.0
// cannot represent, such as most C0 control characters.
var ErrIllegalChar = errors.New("rdfxml: character not allowed in XML")

// Error is a syntax or structure error in an RDF/XML document. The decoder
// never continues past one.
type Error struct {
	Line   int // 1-based; 0 when unknown
	Column int
	Err    error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rdfxml:%d:%d: %v", e.Line, e.Column, e.Err)
	}
	return "rdfxml: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
