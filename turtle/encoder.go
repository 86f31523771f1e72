package turtle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

// ErrEncoderClosed is returned by writes after Close.
var ErrEncoderClosed = errors.New("turtle: encoder closed")

// NTriplesConfig configures N-Triples output.
type NTriplesConfig struct {
	// ASCII escapes every non-ASCII character as \u or \U.
	ASCII bool `toml:"ascii"`
}

// NQuadsConfig configures N-Quads output.
type NQuadsConfig struct {
	ASCII bool `toml:"ascii"`
}

// TurtleConfig configures Turtle output.
type TurtleConfig struct {
	// Pretty groups consecutive triples sharing a subject with ';' and ','
	// and writes rdf:type as "a".
	Pretty bool `toml:"pretty"`
	// Indent prefixes every statement line; in pretty mode it indents
	// continuation lines and defaults to four spaces.
	Indent   string            `toml:"indent"`
	Prefixes map[string]string `toml:"prefixes"`
	// BaseIRI is written as @base; IRIs of the form base#fragment are then
	// written relative.
	BaseIRI string `toml:"base_iri"`
}

// TriGConfig configures TriG output.
type TriGConfig struct {
	// Pretty groups consecutive quads of one graph into a single block and
	// groups triples by subject within it.
	Pretty   bool              `toml:"pretty"`
	Indent   string            `toml:"indent"`
	Prefixes map[string]string `toml:"prefixes"`
	BaseIRI  string            `toml:"base_iri"`
}

// NTriplesEncoder writes N-Triples.
type NTriplesEncoder struct {
	line lineEncoder
}

// NewNTriplesEncoder returns an encoder writing to w.
func NewNTriplesEncoder(w io.Writer, cfg NTriplesConfig) *NTriplesEncoder {
	return &NTriplesEncoder{line: lineEncoder{writer: bufio.NewWriter(w), terms: termWriter{ascii: cfg.ASCII}, name: "ntriples"}}
}

// Write encodes one triple.
func (e *NTriplesEncoder) Write(t rdf.Triple) error { return e.line.write(t.ToQuad()) }

// Flush writes buffered output.
func (e *NTriplesEncoder) Flush() error { return e.line.flush() }

// Close flushes; later writes fail. The underlying writer is not closed.
func (e *NTriplesEncoder) Close() error { return e.line.close() }

// NQuadsEncoder writes N-Quads.
type NQuadsEncoder struct {
	line lineEncoder
}

// NewNQuadsEncoder returns an encoder writing to w.
func NewNQuadsEncoder(w io.Writer, cfg NQuadsConfig) *NQuadsEncoder {
	return &NQuadsEncoder{line: lineEncoder{writer: bufio.NewWriter(w), terms: termWriter{ascii: cfg.ASCII}, name: "nquads", quads: true}}
}

// Write encodes one quad.
func (e *NQuadsEncoder) Write(q rdf.Quad) error { return e.line.write(q) }

// Flush writes buffered output.
func (e *NQuadsEncoder) Flush() error { return e.line.flush() }

// Close flushes; later writes fail.
func (e *NQuadsEncoder) Close() error { return e.line.close() }

type lineEncoder struct {
	writer *bufio.Writer
	terms  termWriter
	name   string
	quads  bool
	err    error
}

func (e *lineEncoder) write(q rdf.Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return fmt.Errorf("%s: missing statement fields", e.name)
	}
	s, err := e.terms.term(q.S)
	if err != nil {
		return err
	}
	o, err := e.terms.term(q.O)
	if err != nil {
		return err
	}
	line := s + " " + e.terms.iriRef(q.P.Value) + " " + o
	if e.quads && q.G != nil {
		g, err := e.terms.term(q.G)
		if err != nil {
			return err
		}
		line += " " + g
	}
	if _, err := e.writer.WriteString(line + " .\n"); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *lineEncoder) flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.writer.Flush(); err != nil {
		e.err = err
		return err
	}
	return nil
}

func (e *lineEncoder) close() error {
	if err := e.flush(); err != nil {
		return err
	}
	e.err = ErrEncoderClosed
	return nil
}

// TurtleEncoder writes Turtle.
type TurtleEncoder struct {
	writer  *bufio.Writer
	terms   termWriter
	cfg     TurtleConfig
	group   subjectGroup
	started bool
	err     error
}

// NewTurtleEncoder returns an encoder writing to w.
func NewTurtleEncoder(w io.Writer, cfg TurtleConfig) *TurtleEncoder {
	e := &TurtleEncoder{
		writer: bufio.NewWriter(w),
		terms:  termWriter{prefixes: cfg.Prefixes, base: cfg.BaseIRI, pretty: cfg.Pretty},
		cfg:    cfg,
	}
	e.group = subjectGroup{writer: e.writer, terms: &e.terms, indent: prettyIndent(cfg.Indent, "    ")}
	return e
}

// Write encodes one triple.
func (e *TurtleEncoder) Write(t rdf.Triple) error {
	if e.err != nil {
		return e.err
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return fmt.Errorf("turtle: missing statement fields")
	}
	if !e.started {
		if err := e.setErr(writeHeader(e.writer, e.cfg.BaseIRI, e.cfg.Prefixes, e.cfg.Pretty)); err != nil {
			return err
		}
		e.started = true
	}
	if e.cfg.Pretty {
		return e.setErr(e.group.write("", t))
	}
	line, err := e.terms.statement(t)
	if err != nil {
		return err
	}
	_, err = e.writer.WriteString(e.cfg.Indent + line + " .\n")
	return e.setErr(err)
}

// Flush writes buffered output. A pretty subject group stays open.
func (e *TurtleEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.setErr(e.writer.Flush())
}

// Close terminates the last statement and flushes.
func (e *TurtleEncoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if err := e.setErr(e.group.end()); err != nil {
		return err
	}
	if err := e.Flush(); err != nil {
		return err
	}
	e.err = ErrEncoderClosed
	return nil
}

func (e *TurtleEncoder) setErr(err error) error {
	if err != nil {
		e.err = err
	}
	return err
}

// TriGEncoder writes TriG.
type TriGEncoder struct {
	writer  *bufio.Writer
	terms   termWriter
	cfg     TriGConfig
	group   subjectGroup
	started bool
	inGraph bool
	graph   rdf.Term
	err     error
}

// NewTriGEncoder returns an encoder writing to w.
func NewTriGEncoder(w io.Writer, cfg TriGConfig) *TriGEncoder {
	e := &TriGEncoder{
		writer: bufio.NewWriter(w),
		terms:  termWriter{prefixes: cfg.Prefixes, base: cfg.BaseIRI, pretty: cfg.Pretty},
		cfg:    cfg,
	}
	e.group = subjectGroup{writer: e.writer, terms: &e.terms, indent: prettyIndent(cfg.Indent, "    ")}
	return e
}

// Write encodes one quad.
func (e *TriGEncoder) Write(q rdf.Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return fmt.Errorf("trig: missing statement fields")
	}
	if !e.started {
		if err := e.setErr(writeHeader(e.writer, e.cfg.BaseIRI, e.cfg.Prefixes, e.cfg.Pretty)); err != nil {
			return err
		}
		e.started = true
	}
	if e.cfg.Pretty {
		return e.writePretty(q)
	}
	line, err := e.terms.statement(q.ToTriple())
	if err != nil {
		return err
	}
	line += " ."
	if q.G != nil {
		g, err := e.terms.term(q.G)
		if err != nil {
			return err
		}
		line = g + " { " + line + " }"
	}
	_, err = e.writer.WriteString(e.cfg.Indent + line + "\n")
	return e.setErr(err)
}

func (e *TriGEncoder) writePretty(q rdf.Quad) error {
	if !e.inGraph || !rdf.TermEqual(e.graph, q.G) {
		if err := e.closeGraph(); err != nil {
			return err
		}
		if q.G != nil {
			g, err := e.terms.term(q.G)
			if err != nil {
				return err
			}
			if _, err := e.writer.WriteString(g + " {\n"); err != nil {
				return e.setErr(err)
			}
		}
		e.inGraph, e.graph = true, q.G
	}
	lead := ""
	if q.G != nil {
		lead = e.group.indent
	}
	return e.setErr(e.group.write(lead, q.ToTriple()))
}

func (e *TriGEncoder) closeGraph() error {
	if err := e.setErr(e.group.end()); err != nil {
		return err
	}
	if e.inGraph && e.graph != nil {
		if _, err := e.writer.WriteString("}\n"); err != nil {
			return e.setErr(err)
		}
	}
	e.inGraph, e.graph = false, nil
	return nil
}

// Flush writes buffered output.
func (e *TriGEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.setErr(e.writer.Flush())
}

// Close terminates the open graph block and flushes.
func (e *TriGEncoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if err := e.closeGraph(); err != nil {
		return err
	}
	if err := e.Flush(); err != nil {
		return err
	}
	e.err = ErrEncoderClosed
	return nil
}

func (e *TriGEncoder) setErr(err error) error {
	if err != nil {
		e.err = err
	}
	return err
}

func prettyIndent(indent, fallback string) string {
	if indent == "" {
		return fallback
	}
	return indent
}

func writeHeader(w *bufio.Writer, base string, prefixes map[string]string, blankLine bool) error {
	if base != "" {
		if _, err := w.WriteString("@base <" + base + "> .\n"); err != nil {
			return err
		}
	}
	for _, prefix := range sortedPrefixKeys(prefixes) {
		if _, err := w.WriteString("@prefix " + prefix + ": <" + prefixes[prefix] + "> .\n"); err != nil {
			return err
		}
	}
	if blankLine && (base != "" || len(prefixes) > 0) {
		return w.WriteByte('\n')
	}
	return nil
}

func sortedPrefixKeys(prefixes map[string]string) []string {
	keys := make([]string, 0, len(prefixes))
	for key := range prefixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// subjectGroup writes consecutive triples sharing a subject as one
// statement.
type subjectGroup struct {
	writer  *bufio.Writer
	terms   *termWriter
	indent  string
	open    bool
	subject rdf.Term
	pred    rdf.IRI
}

func (g *subjectGroup) write(lead string, t rdf.Triple) error {
	o, err := g.terms.term(t.O)
	if err != nil {
		return err
	}
	p := g.terms.predicate(t.P)
	var out string
	switch {
	case g.open && rdf.TermEqual(g.subject, t.S) && g.pred == t.P:
		out = ", " + o
	case g.open && rdf.TermEqual(g.subject, t.S):
		out = " ;\n" + lead + g.indent + p + " " + o
	default:
		s, err := g.terms.term(t.S)
		if err != nil {
			return err
		}
		if g.open {
			out = " .\n"
		}
		out += lead + s + " " + p + " " + o
	}
	if _, err := g.writer.WriteString(out); err != nil {
		return err
	}
	g.open, g.subject, g.pred = true, t.S, t.P
	return nil
}

func (g *subjectGroup) end() error {
	if !g.open {
		return nil
	}
	g.open = false
	_, err := g.writer.WriteString(" .\n")
	return err
}
