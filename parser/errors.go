package parser

import (
	"errors"
	"io"

	"github.com/geoknoesis/rdf-dynsyn/correspondence"
	"github.com/geoknoesis/rdf-dynsyn/rdf"
	"github.com/geoknoesis/rdf-dynsyn/rdfxml"
	"github.com/geoknoesis/rdf-dynsyn/syntax"
	"github.com/geoknoesis/rdf-dynsyn/turtle"
)

// ErrClosed is returned by sources after Close.
var ErrClosed = errors.New("parser: source closed")

// Kind tells which engine family produced a ParseError.
type Kind uint8

const (
	// KindTurtle marks a *turtle.Error (Turtle, TriG, N-Triples, N-Quads).
	KindTurtle Kind = iota + 1
	// KindRDFXML marks an *rdfxml.Error.
	KindRDFXML
	// KindIO marks a failure of the byte source itself.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindTurtle:
		return "turtle"
	case KindRDFXML:
		return "rdfxml"
	case KindIO:
		return "io"
	}
	return "unknown"
}

// ParseError is the single error type sources report for engine failures.
// The engine's own error is kept in Err and reachable with errors.As; the
// message is the engine's message unchanged.
type ParseError struct {
	Syntax syntax.Syntax
	Kind   Kind
	Err    error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// newParseError classifies any engine error. Errors that are neither
// engine error type come from the reader.
func newParseError(s syntax.Syntax, err error) *ParseError {
	var (
		terr *turtle.Error
		xerr *rdfxml.Error
	)
	kind := KindIO
	switch {
	case errors.As(err, &terr):
		kind = KindTurtle
	case errors.As(err, &xerr):
		kind = KindRDFXML
	}
	return &ParseError{Syntax: s, Kind: kind, Err: err}
}

// recoverable reports whether the engine skipped past the failing
// statement and can continue.
func recoverable(err error) bool {
	var terr *turtle.Error
	return errors.As(err, &terr) && terr.Recoverable
}

// ErrorCode is a stable, programmatic classification of errors returned
// by this module.
type ErrorCode string

const (
	// CodeUnknownSyntax indicates a syntax with no parser or serializer engine.
	CodeUnknownSyntax ErrorCode = "UNKNOWN_SYNTAX"
	// CodeNotRdfMediaType indicates a media type that names no RDF syntax.
	CodeNotRdfMediaType ErrorCode = "NOT_RDF_MEDIA_TYPE"
	// CodeNotRdfFileExtension indicates a file extension that names no RDF syntax.
	CodeNotRdfFileExtension ErrorCode = "NOT_RDF_FILE_EXTENSION"
	// CodeStatementTooLong indicates a statement exceeded the configured limit.
	CodeStatementTooLong ErrorCode = "STATEMENT_TOO_LONG"
	// CodeParseError indicates a malformed document.
	CodeParseError ErrorCode = "PARSE_ERROR"
	// CodeSinkError indicates the caller's statement handler failed.
	CodeSinkError ErrorCode = "SINK_ERROR"
	// CodeSourceClosed indicates a read from a closed source.
	CodeSourceClosed ErrorCode = "SOURCE_CLOSED"
	// CodeIOError indicates a read or write failure.
	CodeIOError ErrorCode = "IO_ERROR"
)

// Code returns the code for err. It returns "" for nil and io.EOF, which
// are not failures. Errors it does not recognize are reported as
// CodeIOError, since the only foreign errors that cross this module come
// from readers and writers supplied by the caller.
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	var (
		sinkErr  *rdf.SinkError
		unknown  *syntax.UnknownSyntaxError
		mtErr    *correspondence.NotRdfMediaTypeError
		extErr   *correspondence.NotRdfFileExtensionError
		parseErr *ParseError
		terr     *turtle.Error
		xerr     *rdfxml.Error
	)
	switch {
	case errors.As(err, &sinkErr):
		return CodeSinkError
	case errors.As(err, &unknown):
		return CodeUnknownSyntax
	case errors.As(err, &mtErr):
		return CodeNotRdfMediaType
	case errors.As(err, &extErr):
		return CodeNotRdfFileExtension
	case errors.Is(err, turtle.ErrStatementTooLong):
		return CodeStatementTooLong
	case errors.Is(err, ErrClosed):
		return CodeSourceClosed
	case errors.As(err, &parseErr):
		if parseErr.Kind == KindIO {
			return CodeIOError
		}
		return CodeParseError
	case errors.As(err, &terr), errors.As(err, &xerr):
		return CodeParseError
	}
	return CodeIOError
}
