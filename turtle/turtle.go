// Package turtle implements the N-Triples, N-Quads, Turtle and TriG
// syntaxes.
//
// Decoders are pull based and parse one statement per step, so memory use
// is bounded by the largest statement rather than the document. Syntax
// errors are reported as *Error values carrying line and column; failures
// of the underlying reader are returned unchanged.
package turtle

import (
	"io"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

// TripleDecoder reads triples from N-Triples or Turtle input.
type TripleDecoder struct {
	d *decoder
}

// NewNTriplesDecoder returns a decoder for N-Triples. BaseIRI is ignored.
func NewNTriplesDecoder(r io.Reader, opts DecodeOptions) *TripleDecoder {
	return &TripleDecoder{d: newDecoder(r, dialectNTriples, opts)}
}

// NewTurtleDecoder returns a decoder for Turtle.
func NewTurtleDecoder(r io.Reader, opts DecodeOptions) *TripleDecoder {
	return &TripleDecoder{d: newDecoder(r, dialectTurtle, opts)}
}

// Next returns the next triple, or io.EOF once the input is exhausted.
// Unless DecodeOptions.Recover is set, the first error is returned by
// every later call.
func (t *TripleDecoder) Next() (rdf.Triple, error) {
	q, err := t.d.next()
	if err != nil {
		return rdf.Triple{}, err
	}
	return q.ToTriple(), nil
}

// Syntax returns the name of the decoded syntax.
func (t *TripleDecoder) Syntax() string { return t.d.dialect.String() }

// QuadDecoder reads quads from N-Quads or TriG input.
type QuadDecoder struct {
	d *decoder
}

// NewNQuadsDecoder returns a decoder for N-Quads. BaseIRI is ignored.
func NewNQuadsDecoder(r io.Reader, opts DecodeOptions) *QuadDecoder {
	return &QuadDecoder{d: newDecoder(r, dialectNQuads, opts)}
}

// NewTriGDecoder returns a decoder for TriG.
func NewTriGDecoder(r io.Reader, opts DecodeOptions) *QuadDecoder {
	return &QuadDecoder{d: newDecoder(r, dialectTriG, opts)}
}

// Next returns the next quad, or io.EOF once the input is exhausted.
func (q *QuadDecoder) Next() (rdf.Quad, error) {
	return q.d.next()
}

// Syntax returns the name of the decoded syntax.
func (q *QuadDecoder) Syntax() string { return q.d.dialect.String() }
