// Package dynsyn ties syntax resolution, parsing and serialization together
// for callers that only know a document by its path, media type or
// content.
package dynsyn

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/geoknoesis/rdf-dynsyn/correspondence"
	"github.com/geoknoesis/rdf-dynsyn/parser"
	"github.com/geoknoesis/rdf-dynsyn/rdf"
	"github.com/geoknoesis/rdf-dynsyn/serializer"
	"github.com/geoknoesis/rdf-dynsyn/syntax"
)

// ResolveSyntax resolves a syntax from a content type and a path, trying
// the content type first. Either may be empty.
func ResolveSyntax(path, contentType string) (syntax.Syntax, error) {
	c, err := correspondence.ResolveHint(correspondence.Hint{Path: path, MediaType: contentType})
	if err != nil {
		return syntax.Unknown, err
	}
	return c.Value, nil
}

// ParseQuads reads a whole document as quads.
func ParseQuads(r io.Reader, s syntax.Syntax, opts ...parser.Option) ([]rdf.Quad, error) {
	p, err := parser.NewQuadParser(s, opts...)
	if err != nil {
		return nil, err
	}
	var quads []rdf.Quad
	err = p.Parse(r).ForEach(func(q rdf.Quad) error {
		quads = append(quads, q)
		return nil
	})
	return quads, err
}

// ParseTriples reads a whole document as triples.
func ParseTriples(r io.Reader, s syntax.Syntax, opts ...parser.Option) ([]rdf.Triple, error) {
	p, err := parser.NewTripleParser(s, opts...)
	if err != nil {
		return nil, err
	}
	var triples []rdf.Triple
	err = p.Parse(r).ForEach(func(t rdf.Triple) error {
		triples = append(triples, t)
		return nil
	})
	return triples, err
}

// ParseFile reads the quads of a file. The syntax comes from the file
// extension, or from the content when the extension is unknown. The file
// path also serves as base IRI unless opts set one.
func ParseFile(path string, opts ...parser.Option) ([]rdf.Quad, syntax.Syntax, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, syntax.Unknown, err
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, sniffLen)
	s, err := ResolveSyntax(path, "")
	if err != nil {
		sample, _ := r.Peek(sniffLen)
		detected, ok := DetectSyntax(sample)
		if !ok {
			return nil, syntax.Unknown, fmt.Errorf("dynsyn: cannot determine syntax of %s: %w", path, err)
		}
		s = detected
	}
	opts = append([]parser.Option{parser.WithBaseIRI(fileIRI(path))}, opts...)
	quads, err := ParseQuads(r, s, opts...)
	return quads, s, err
}

func fileIRI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	return "file://" + abs
}

// SerializeQuads writes quads as one document of syntax s.
func SerializeQuads(w io.Writer, s syntax.Syntax, quads []rdf.Quad, cfg serializer.Config) error {
	ser, err := serializer.NewQuadSerializerFactory(cfg).NewSerializer(s, w)
	if err != nil {
		return err
	}
	return ser.SerializeQuads(quads)
}

// SerializeTriples writes triples as one document of syntax s.
func SerializeTriples(w io.Writer, s syntax.Syntax, triples []rdf.Triple, cfg serializer.Config) error {
	ser, err := serializer.NewTripleSerializerFactory(cfg).NewSerializer(s, w)
	if err != nil {
		return err
	}
	return ser.SerializeTriples(triples)
}

// Convert parses r as quads of syntax from and writes them to w in syntax
// to, one statement at a time. When to is a triple syntax only the
// default graph is written.
func Convert(w io.Writer, to syntax.Syntax, r io.Reader, from syntax.Syntax, cfg serializer.Config, opts ...parser.Option) error {
	if to.SupportsQuads() {
		p, err := parser.NewQuadParser(from, opts...)
		if err != nil {
			return err
		}
		ser, err := serializer.NewQuadSerializerFactory(cfg).NewSerializer(to, w)
		if err != nil {
			return err
		}
		return ser.Serialize(p.Parse(r))
	}
	p, err := parser.NewTripleParser(from, opts...)
	if err != nil {
		return err
	}
	ser, err := serializer.NewTripleSerializerFactory(cfg).NewSerializer(to, w)
	if err != nil {
		return err
	}
	return ser.Serialize(p.Parse(r))
}
