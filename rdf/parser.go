package rdf

import "io"

// TripleSource streams RDF triples. Next returns io.EOF once the source is
// exhausted.
type TripleSource interface {
	Next() (Triple, error)
}

// QuadSource streams RDF quads. Next returns io.EOF once the source is
// exhausted.
type QuadSource interface {
	Next() (Quad, error)
}

// TripleHandler processes triples in push mode.
type TripleHandler interface {
	Handle(Triple) error
}

// TripleHandlerFunc adapts a function to a TripleHandler.
type TripleHandlerFunc func(Triple) error

// Handle calls the underlying function.
func (h TripleHandlerFunc) Handle(t Triple) error { return h(t) }

// QuadHandler processes quads in push mode.
type QuadHandler interface {
	Handle(Quad) error
}

// QuadHandlerFunc adapts a function to a QuadHandler.
type QuadHandlerFunc func(Quad) error

// Handle calls the underlying function.
func (h QuadHandlerFunc) Handle(q Quad) error { return h(q) }

// TripleSlice is a TripleSource over an in-memory slice.
type TripleSlice struct {
	triples []Triple
	pos     int
}

// NewTripleSlice returns a source yielding triples in order.
func NewTripleSlice(triples []Triple) *TripleSlice {
	return &TripleSlice{triples: triples}
}

// Next returns the next triple or io.EOF.
func (s *TripleSlice) Next() (Triple, error) {
	if s.pos >= len(s.triples) {
		return Triple{}, io.EOF
	}
	t := s.triples[s.pos]
	s.pos++
	return t, nil
}

// QuadSlice is a QuadSource over an in-memory slice.
type QuadSlice struct {
	quads []Quad
	pos   int
}

// NewQuadSlice returns a source yielding quads in order.
func NewQuadSlice(quads []Quad) *QuadSlice {
	return &QuadSlice{quads: quads}
}

// Next returns the next quad or io.EOF.
func (s *QuadSlice) Next() (Quad, error) {
	if s.pos >= len(s.quads) {
		return Quad{}, io.EOF
	}
	q := s.quads[s.pos]
	s.pos++
	return q, nil
}

// CollectTriples drains src into a slice.
func CollectTriples(src TripleSource) ([]Triple, error) {
	var out []Triple
	for {
		t, err := src.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
}

// CollectQuads drains src into a slice.
func CollectQuads(src QuadSource) ([]Quad, error) {
	var out []Quad
	for {
		q, err := src.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, q)
	}
}

// ForEachTriple pushes every triple from src into h. Failures of src come
// back as *SourceError and failures of h as *SinkError; a sink failure
// stops the drain immediately.
func ForEachTriple(src TripleSource, h TripleHandler) error {
	for {
		t, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &SourceError{Err: err}
		}
		if err := h.Handle(t); err != nil {
			return &SinkError{Err: err}
		}
	}
}

// ForEachQuad pushes every quad from src into h. See ForEachTriple.
func ForEachQuad(src QuadSource, h QuadHandler) error {
	for {
		q, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &SourceError{Err: err}
		}
		if err := h.Handle(q); err != nil {
			return &SinkError{Err: err}
		}
	}
}
