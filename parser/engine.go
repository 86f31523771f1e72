package parser

import (
	"fmt"
	"io"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
	"github.com/geoknoesis/rdf-dynsyn/rdfxml"
	"github.com/geoknoesis/rdf-dynsyn/syntax"
	"github.com/geoknoesis/rdf-dynsyn/turtle"
)

// engine is a closed set of parsing engines; every implementation is
// listed in open.
type engine interface {
	isEngine()
}

type (
	nquadsEngine   struct{ opts turtle.DecodeOptions }
	trigEngine     struct{ opts turtle.DecodeOptions }
	ntriplesEngine struct{ opts turtle.DecodeOptions }
	turtleEngine   struct{ opts turtle.DecodeOptions }
	rdfxmlEngine   struct{ opts rdfxml.DecodeOptions }
)

func (nquadsEngine) isEngine()   {}
func (trigEngine) isEngine()     {}
func (ntriplesEngine) isEngine() {}
func (turtleEngine) isEngine()   {}
func (rdfxmlEngine) isEngine()   {}

func newEngine(s syntax.Syntax, o options) (engine, error) {
	line := turtle.DecodeOptions{MaxStatementBytes: o.maxStatementBytes, Recover: o.continueOnError}
	doc := line
	doc.BaseIRI = o.baseIRI
	switch s {
	case syntax.NQuads:
		return nquadsEngine{opts: line}, nil
	case syntax.TriG:
		return trigEngine{opts: doc}, nil
	case syntax.NTriples:
		return ntriplesEngine{opts: line}, nil
	case syntax.Turtle:
		return turtleEngine{opts: doc}, nil
	case syntax.RDFXML:
		return rdfxmlEngine{opts: rdfxml.DecodeOptions{BaseIRI: o.baseIRI}}, nil
	}
	return nil, &syntax.UnknownSyntaxError{Syntax: s}
}

// open starts e on r without reading from it. Exactly one of the results
// is non-nil: the native triple or quad stream of the engine.
func open(e engine, r io.Reader) (rdf.TripleSource, rdf.QuadSource) {
	switch e := e.(type) {
	case nquadsEngine:
		return nil, turtle.NewNQuadsDecoder(r, e.opts)
	case trigEngine:
		return nil, turtle.NewTriGDecoder(r, e.opts)
	case ntriplesEngine:
		return turtle.NewNTriplesDecoder(r, e.opts), nil
	case turtleEngine:
		return turtle.NewTurtleDecoder(r, e.opts), nil
	case rdfxmlEngine:
		return rdfxml.NewDecoder(r, e.opts), nil
	}
	panic(fmt.Sprintf("parser: unhandled engine %T", e))
}
