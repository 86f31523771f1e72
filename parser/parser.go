// Package parser selects an RDF parsing engine at run time and exposes its
// output as a stream of triples or quads, whatever the native shape of the
// engine.
//
// A parser is built for one syntax and may parse any number of documents.
// Each document gets its own source; sources are pull based and are not
// safe for concurrent use.
package parser

import (
	"io"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
	"github.com/geoknoesis/rdf-dynsyn/syntax"
)

// TripleParser parses documents of one syntax into triples.
type TripleParser struct {
	syntax syntax.Syntax
	engine engine
	opts   options
}

// NewTripleParser returns a triple parser for s. It fails with
// *syntax.UnknownSyntaxError when no engine handles s.
func NewTripleParser(s syntax.Syntax, opts ...Option) (*TripleParser, error) {
	o := buildOptions(opts)
	e, err := newEngine(s, o)
	if err != nil {
		return nil, err
	}
	return &TripleParser{syntax: s, engine: e, opts: o}, nil
}

// Syntax returns the syntax the parser was built for.
func (p *TripleParser) Syntax() syntax.Syntax { return p.syntax }

// Parse starts parsing r. Nothing is read until the first call to Next.
func (p *TripleParser) Parse(r io.Reader) *TripleSource {
	return &TripleSource{stream: newStream(p.syntax, p.engine, r, p.opts)}
}

// QuadParser parses documents of one syntax into quads.
type QuadParser struct {
	syntax syntax.Syntax
	engine engine
	opts   options
}

// NewQuadParser returns a quad parser for s. It fails with
// *syntax.UnknownSyntaxError when no engine handles s.
func NewQuadParser(s syntax.Syntax, opts ...Option) (*QuadParser, error) {
	o := buildOptions(opts)
	e, err := newEngine(s, o)
	if err != nil {
		return nil, err
	}
	return &QuadParser{syntax: s, engine: e, opts: o}, nil
}

// Syntax returns the syntax the parser was built for.
func (p *QuadParser) Syntax() syntax.Syntax { return p.syntax }

// Parse starts parsing r. Nothing is read until the first call to Next.
func (p *QuadParser) Parse(r io.Reader) *QuadSource {
	return &QuadSource{stream: newStream(p.syntax, p.engine, r, p.opts)}
}

// TripleParserFactory builds triple parsers sharing a set of options.
type TripleParserFactory struct {
	opts []Option
}

// NewTripleParserFactory returns a factory applying opts to every parser.
func NewTripleParserFactory(opts ...Option) *TripleParserFactory {
	return &TripleParserFactory{opts: append([]Option(nil), opts...)}
}

// NewParser builds a parser for s. A non-empty baseIRI replaces the
// factory's base IRI; graph names the graph kept from quad syntaxes.
func (f *TripleParserFactory) NewParser(s syntax.Syntax, baseIRI string, graph rdf.Term) (*TripleParser, error) {
	return NewTripleParser(s, perParser(f.opts, baseIRI, graph)...)
}

// QuadParserFactory builds quad parsers sharing a set of options.
type QuadParserFactory struct {
	opts []Option
}

// NewQuadParserFactory returns a factory applying opts to every parser.
func NewQuadParserFactory(opts ...Option) *QuadParserFactory {
	return &QuadParserFactory{opts: append([]Option(nil), opts...)}
}

// NewParser builds a parser for s. A non-empty baseIRI replaces the
// factory's base IRI; graph names the graph given to triples of triple
// syntaxes.
func (f *QuadParserFactory) NewParser(s syntax.Syntax, baseIRI string, graph rdf.Term) (*QuadParser, error) {
	return NewQuadParser(s, perParser(f.opts, baseIRI, graph)...)
}

func perParser(shared []Option, baseIRI string, graph rdf.Term) []Option {
	opts := append(append([]Option(nil), shared...), WithGraph(graph))
	if baseIRI != "" {
		opts = append(opts, WithBaseIRI(baseIRI))
	}
	return opts
}
