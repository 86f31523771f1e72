package parser

import (
	"errors"
	"io"
	"log/slog"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
	"github.com/geoknoesis/rdf-dynsyn/syntax"
)

// stream is the state shared by TripleSource and QuadSource.
type stream struct {
	syntax   syntax.Syntax
	input    io.Reader
	triples  rdf.TripleSource // native triple engine, or nil
	quads    rdf.QuadSource   // native quad engine, or nil
	graph    rdf.Term
	logger   *slog.Logger
	resume   bool
	err      error
	closed   bool
	produced int
	skipped  int
}

func newStream(s syntax.Syntax, e engine, r io.Reader, o options) stream {
	triples, quads := open(e, r)
	return stream{
		syntax:  s,
		input:   r,
		triples: triples,
		quads:   quads,
		graph:   o.graph,
		logger:  o.logger.With("syntax", s.Name()),
		resume:  o.continueOnError,
	}
}

// check returns the error a finished or closed stream keeps returning.
func (st *stream) check() error {
	if st.closed {
		return ErrClosed
	}
	return st.err
}

// fail turns an engine failure into the error returned to the caller and
// decides whether the stream is finished.
func (st *stream) fail(err error) error {
	if err == io.EOF {
		st.err = io.EOF
		st.logger.Debug("parse finished", "statements", st.produced, "skipped", st.skipped)
		return io.EOF
	}
	perr := newParseError(st.syntax, err)
	if st.resume && recoverable(err) {
		st.logger.Warn("skipping malformed statement", "error", err)
		return perr
	}
	st.err = perr
	st.logger.Debug("parse failed", "statements", st.produced, "kind", perr.Kind, "error", err)
	return perr
}

// more reports whether a stream that just returned an error may still
// produce statements.
func (st *stream) more() bool {
	return !st.closed && st.err == nil
}

// Close releases the input, closing it if it is an io.Closer. Later calls
// to Next return ErrClosed. Close is idempotent.
func (st *stream) Close() error {
	if st.closed {
		return nil
	}
	st.closed = true
	st.triples, st.quads = nil, nil
	if c, ok := st.input.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Syntax returns the syntax being parsed.
func (st *stream) Syntax() syntax.Syntax { return st.syntax }

// TripleSource streams the triples of one document. It reads only as far
// as needed to produce the next triple.
type TripleSource struct {
	stream
}

// Next returns the next triple, or io.EOF at the end of the document.
// Over a quad syntax, quads outside the configured graph are skipped.
// Engine failures come back as *ParseError; the first one ends the stream
// unless WithContinueOnError was given and the engine recovered.
func (s *TripleSource) Next() (rdf.Triple, error) {
	if err := s.check(); err != nil {
		return rdf.Triple{}, err
	}
	for {
		if s.triples != nil {
			t, err := s.triples.Next()
			if err != nil {
				return rdf.Triple{}, s.fail(err)
			}
			s.produced++
			return t, nil
		}
		q, err := s.quads.Next()
		if err != nil {
			return rdf.Triple{}, s.fail(err)
		}
		if !rdf.TermEqual(q.G, s.graph) {
			continue
		}
		s.produced++
		return q.ToTriple(), nil
	}
}

// ForEach passes every remaining triple to fn. A failure of fn stops the
// drain and comes back as *rdf.SinkError. Source failures come back as
// *rdf.SourceError; with WithContinueOnError, recovered failures are
// collected and returned together once the document ends.
func (s *TripleSource) ForEach(fn func(rdf.Triple) error) error {
	var skipped []error
	for {
		t, err := s.Next()
		if err == io.EOF {
			return joinSkipped(skipped)
		}
		if err != nil {
			if s.more() {
				s.skipped++
				skipped = append(skipped, err)
				continue
			}
			return &rdf.SourceError{Err: errors.Join(append(skipped, err)...)}
		}
		if err := fn(t); err != nil {
			return &rdf.SinkError{Err: err}
		}
	}
}

// TryForSome passes at least one triple to fn if any remain. more is
// false once the source is exhausted or has failed for good.
func (s *TripleSource) TryForSome(fn func(rdf.Triple) error) (more bool, err error) {
	t, err := s.Next()
	switch {
	case err == io.EOF:
		return false, nil
	case err != nil:
		if s.more() {
			s.skipped++
		}
		return s.more(), &rdf.SourceError{Err: err}
	}
	if err := fn(t); err != nil {
		return true, &rdf.SinkError{Err: err}
	}
	return true, nil
}

// QuadSource streams the quads of one document. It reads only as far as
// needed to produce the next quad.
type QuadSource struct {
	stream
}

// Next returns the next quad, or io.EOF at the end of the document. Over
// a triple syntax, every triple is placed in the configured graph. Errors
// are reported as by TripleSource.Next.
func (s *QuadSource) Next() (rdf.Quad, error) {
	if err := s.check(); err != nil {
		return rdf.Quad{}, err
	}
	if s.quads != nil {
		q, err := s.quads.Next()
		if err != nil {
			return rdf.Quad{}, s.fail(err)
		}
		s.produced++
		return q, nil
	}
	t, err := s.triples.Next()
	if err != nil {
		return rdf.Quad{}, s.fail(err)
	}
	s.produced++
	return t.ToQuadInGraph(s.graph), nil
}

// ForEach passes every remaining quad to fn. See TripleSource.ForEach.
func (s *QuadSource) ForEach(fn func(rdf.Quad) error) error {
	var skipped []error
	for {
		q, err := s.Next()
		if err == io.EOF {
			return joinSkipped(skipped)
		}
		if err != nil {
			if s.more() {
				s.skipped++
				skipped = append(skipped, err)
				continue
			}
			return &rdf.SourceError{Err: errors.Join(append(skipped, err)...)}
		}
		if err := fn(q); err != nil {
			return &rdf.SinkError{Err: err}
		}
	}
}

// TryForSome passes at least one quad to fn if any remain. See
// TripleSource.TryForSome.
func (s *QuadSource) TryForSome(fn func(rdf.Quad) error) (more bool, err error) {
	q, err := s.Next()
	switch {
	case err == io.EOF:
		return false, nil
	case err != nil:
		if s.more() {
			s.skipped++
		}
		return s.more(), &rdf.SourceError{Err: err}
	}
	if err := fn(q); err != nil {
		return true, &rdf.SinkError{Err: err}
	}
	return true, nil
}

func joinSkipped(skipped []error) error {
	if len(skipped) == 0 {
		return nil
	}
	return &rdf.SourceError{Err: errors.Join(skipped...)}
}
