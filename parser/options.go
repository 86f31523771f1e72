package parser

import (
	"log/slog"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

// Option configures a parser.
type Option func(*options)

type options struct {
	baseIRI           string
	graph             rdf.Term
	logger            *slog.Logger
	maxStatementBytes int
	continueOnError   bool
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBaseIRI sets the base IRI used to resolve relative IRIs. Only the
// Turtle, TriG and RDF/XML engines use it.
func WithBaseIRI(iri string) Option {
	return func(o *options) {
		o.baseIRI = iri
	}
}

// WithGraph sets the graph name used to adapt between triples and quads.
// A quad parser over a triple syntax places every triple in graph; a
// triple parser over a quad syntax keeps only the quads of graph. nil
// names the default graph.
func WithGraph(graph rdf.Term) Option {
	return func(o *options) {
		o.graph = graph
	}
}

// WithLogger sets the logger receiving parse progress at debug level and
// skipped statements at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLimits bounds the size of one statement in bytes. Zero means no
// limit. RDF/XML documents are not bounded.
func WithLimits(maxStatementBytes int) Option {
	return func(o *options) {
		o.maxStatementBytes = maxStatementBytes
	}
}

// WithContinueOnError lets sources continue after a malformed statement
// when the engine can resynchronize. The error is still returned for the
// failing statement. The RDF/XML engine never resynchronizes.
func WithContinueOnError() Option {
	return func(o *options) {
		o.continueOnError = true
	}
}
