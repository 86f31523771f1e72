// Package serializer selects an RDF serializing engine at run time and
// drains statement sources into it.
package serializer

import (
	"io"
	"log/slog"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
	"github.com/geoknoesis/rdf-dynsyn/rdfxml"
	"github.com/geoknoesis/rdf-dynsyn/syntax"
	"github.com/geoknoesis/rdf-dynsyn/turtle"
)

// Option configures a serializer factory.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger receiving a debug record per document.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type tripleEncoder interface {
	Write(rdf.Triple) error
	Flush() error
	Close() error
}

type quadEncoder interface {
	Write(rdf.Quad) error
	Flush() error
	Close() error
}

// TripleSerializerFactory builds triple serializers sharing one Config.
type TripleSerializerFactory struct {
	cfg  Config
	opts options
}

// NewTripleSerializerFactory returns a factory using a copy of cfg.
func NewTripleSerializerFactory(cfg Config, opts ...Option) *TripleSerializerFactory {
	return &TripleSerializerFactory{cfg: cfg.clone(), opts: buildOptions(opts)}
}

// NewSerializer returns a serializer writing s to w. Only N-Triples,
// Turtle and RDF/XML are accepted; other syntaxes fail with
// *syntax.UnknownSyntaxError.
func (f *TripleSerializerFactory) NewSerializer(s syntax.Syntax, w io.Writer) (*TripleSerializer, error) {
	var enc tripleEncoder
	switch s {
	case syntax.NTriples:
		enc = turtle.NewNTriplesEncoder(w, orDefault(f.cfg.NTriples))
	case syntax.Turtle:
		enc = turtle.NewTurtleEncoder(w, orDefault(f.cfg.Turtle))
	case syntax.RDFXML:
		enc = rdfxml.NewEncoder(w, orDefault(f.cfg.RDFXML))
	default:
		return nil, &syntax.UnknownSyntaxError{Syntax: s}
	}
	return &TripleSerializer{syntax: s, enc: enc, logger: f.opts.logger.With("syntax", s.Name())}, nil
}

// TripleSerializer writes one document of triples.
type TripleSerializer struct {
	syntax syntax.Syntax
	enc    tripleEncoder
	logger *slog.Logger
}

// Syntax returns the syntax being written.
func (s *TripleSerializer) Syntax() syntax.Syntax { return s.syntax }

// Serialize drains src into the document and completes it. A failure of
// src comes back as *rdf.SourceError after the triples written so far are
// flushed; a failure of the writer comes back unchanged. A serializer
// writes a single document.
func (s *TripleSerializer) Serialize(src rdf.TripleSource) error {
	n := 0
	for {
		t, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Debug("serialize aborted", "statements", n, "error", err)
			if ferr := s.enc.Flush(); ferr != nil {
				return ferr
			}
			return &rdf.SourceError{Err: err}
		}
		if err := s.enc.Write(t); err != nil {
			return err
		}
		n++
	}
	if err := s.enc.Close(); err != nil {
		return err
	}
	s.logger.Debug("serialized document", "statements", n)
	return nil
}

// SerializeTriples writes triples as a complete document.
func (s *TripleSerializer) SerializeTriples(triples []rdf.Triple) error {
	return s.Serialize(rdf.NewTripleSlice(triples))
}

// QuadSerializerFactory builds quad serializers sharing one Config.
type QuadSerializerFactory struct {
	cfg  Config
	opts options
}

// NewQuadSerializerFactory returns a factory using a copy of cfg.
func NewQuadSerializerFactory(cfg Config, opts ...Option) *QuadSerializerFactory {
	return &QuadSerializerFactory{cfg: cfg.clone(), opts: buildOptions(opts)}
}

// NewSerializer returns a serializer writing s to w. Only N-Quads and TriG
// are accepted; other syntaxes fail with *syntax.UnknownSyntaxError.
func (f *QuadSerializerFactory) NewSerializer(s syntax.Syntax, w io.Writer) (*QuadSerializer, error) {
	var enc quadEncoder
	switch s {
	case syntax.NQuads:
		enc = turtle.NewNQuadsEncoder(w, orDefault(f.cfg.NQuads))
	case syntax.TriG:
		enc = turtle.NewTriGEncoder(w, orDefault(f.cfg.TriG))
	default:
		return nil, &syntax.UnknownSyntaxError{Syntax: s}
	}
	return &QuadSerializer{syntax: s, enc: enc, logger: f.opts.logger.With("syntax", s.Name())}, nil
}

// QuadSerializer writes one document of quads.
type QuadSerializer struct {
	syntax syntax.Syntax
	enc    quadEncoder
	logger *slog.Logger
}

// Syntax returns the syntax being written.
func (s *QuadSerializer) Syntax() syntax.Syntax { return s.syntax }

// Serialize drains src into the document and completes it. Errors are
// reported as by TripleSerializer.Serialize.
func (s *QuadSerializer) Serialize(src rdf.QuadSource) error {
	n := 0
	for {
		q, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Debug("serialize aborted", "statements", n, "error", err)
			if ferr := s.enc.Flush(); ferr != nil {
				return ferr
			}
			return &rdf.SourceError{Err: err}
		}
		if err := s.enc.Write(q); err != nil {
			return err
		}
		n++
	}
	if err := s.enc.Close(); err != nil {
		return err
	}
	s.logger.Debug("serialized document", "statements", n)
	return nil
}

// SerializeQuads writes quads as a complete document.
func (s *QuadSerializer) SerializeQuads(quads []rdf.Quad) error {
	return s.Serialize(rdf.NewQuadSlice(quads))
}
