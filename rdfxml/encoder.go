package rdfxml

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

// Config configures RDF/XML output.
type Config struct {
	// Pretty groups consecutive triples sharing a subject into one
	// rdf:Description and indents property elements.
	Pretty bool `toml:"pretty"`
	// Indent is the indentation unit; in pretty mode it defaults to two
	// spaces.
	Indent string `toml:"indent"`
	// Prefixes are declared on the root element. Namespaces without a
	// prefix get generated ns0, ns1, ... prefixes where first used.
	Prefixes map[string]string `toml:"prefixes"`
	// BaseIRI is written as xml:base.
	BaseIRI string `toml:"base_iri"`
}

var (
	textEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;",
		"\r", "&#xD;", "\n", "&#xA;", "\t", "&#x9;")
)

// Encoder writes triples as RDF/XML.
type Encoder struct {
	writer   *bufio.Writer
	cfg      Config
	indent   string
	nsToPref map[string]string
	onRoot   map[string]bool // namespaces declared on rdf:RDF
	autoSeq  int

	started bool
	open    bool
	subject rdf.Term
	err     error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer, cfg Config) *Encoder {
	indent := cfg.Indent
	if cfg.Pretty && indent == "" {
		indent = "  "
	}
	nsToPref := map[string]string{rdfNS: "rdf"}
	onRoot := map[string]bool{rdfNS: true}
	for _, prefix := range sortedKeys(cfg.Prefixes) {
		ns := cfg.Prefixes[prefix]
		if prefix == "rdf" || prefix == "" || !isNCName(prefix) || onRoot[ns] {
			continue
		}
		nsToPref[ns] = prefix
		onRoot[ns] = true
	}
	return &Encoder{writer: bufio.NewWriter(w), cfg: cfg, indent: indent, nsToPref: nsToPref, onRoot: onRoot}
}

// Write encodes one triple. Triple terms and literal subjects cannot be
// expressed in RDF/XML.
func (e *Encoder) Write(t rdf.Triple) error {
	if e.err != nil {
		return e.err
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return fmt.Errorf("rdfxml: missing statement fields")
	}
	for _, term := range []rdf.Term{t.S, t.P, t.O} {
		if err := checkChars(term); err != nil {
			return err
		}
	}
	subjectAttr, err := subjectAttr(t.S)
	if err != nil {
		return err
	}
	property, err := e.property(t.P.Value, t.O)
	if err != nil {
		return err
	}
	if !e.started {
		if err := e.setErr(e.writeRoot()); err != nil {
			return err
		}
		e.started = true
	}
	var out strings.Builder
	if e.cfg.Pretty {
		if !e.open || !rdf.TermEqual(e.subject, t.S) {
			if e.open {
				out.WriteString(e.indent + "</rdf:Description>\n")
			}
			out.WriteString(e.indent + "<rdf:Description " + subjectAttr + ">\n")
			e.open, e.subject = true, t.S
		}
		out.WriteString(e.indent + e.indent + property + "\n")
	} else {
		out.WriteString(e.indent + "<rdf:Description " + subjectAttr + ">" + property + "</rdf:Description>\n")
	}
	_, err = e.writer.WriteString(out.String())
	return e.setErr(err)
}

func (e *Encoder) writeRoot() error {
	var root strings.Builder
	root.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	root.WriteString(`<rdf:RDF xmlns:rdf="` + rdfNS + `"`)
	if e.cfg.BaseIRI != "" {
		root.WriteString(` xml:base="` + attrEscaper.Replace(e.cfg.BaseIRI) + `"`)
	}
	for _, prefix := range sortedKeys(e.cfg.Prefixes) {
		ns := e.cfg.Prefixes[prefix]
		if !e.onRoot[ns] || e.nsToPref[ns] != prefix {
			continue
		}
		root.WriteString(` xmlns:` + prefix + `="` + attrEscaper.Replace(ns) + `"`)
	}
	root.WriteString(">\n")
	_, err := e.writer.WriteString(root.String())
	return err
}

func subjectAttr(term rdf.Term) (string, error) {
	switch v := term.(type) {
	case rdf.IRI:
		return `rdf:about="` + attrEscaper.Replace(v.Value) + `"`, nil
	case rdf.BlankNode:
		return `rdf:nodeID="` + nodeID(v.ID) + `"`, nil
	}
	return "", fmt.Errorf("rdfxml: unsupported subject %s", term)
}

// nodeID returns id when it is a valid rdf:nodeID and a hex encoding of it
// otherwise. Valid ids starting with x are encoded too, since every
// encoding starts with x.
func nodeID(id string) string {
	if isNCName(id) && !strings.HasPrefix(id, "x") {
		return id
	}
	return "x" + hex.EncodeToString([]byte(id))
}

// checkChars rejects terms whose text cannot appear in an XML 1.0
// document. Blank node ids are exempt as nodeID encodes them.
func checkChars(term rdf.Term) error {
	var texts []string
	switch v := term.(type) {
	case rdf.IRI:
		texts = []string{v.Value}
	case rdf.Literal:
		texts = []string{v.Lexical, v.Lang, v.Datatype.Value}
	}
	for _, text := range texts {
		if !utf8.ValidString(text) {
			return fmt.Errorf("%w: invalid UTF-8 in %q", ErrIllegalChar, text)
		}
		for i, r := range text {
			if !isXMLChar(r) {
				return fmt.Errorf("%w: %U at offset %d of %q", ErrIllegalChar, r, i, text)
			}
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF, r >= 0xE000 && r <= 0xFFFD, r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// property renders one property element. Namespaces missing from the root
// element are declared on the element itself.
func (e *Encoder) property(predicate string, object rdf.Term) (string, error) {
	ns, local, ok := splitQName(predicate)
	if !ok {
		return "", fmt.Errorf("rdfxml: predicate %q cannot be written as an element name", predicate)
	}
	prefix, known := e.nsToPref[ns]
	if !known {
		prefix = fmt.Sprintf("ns%d", e.autoSeq)
		e.autoSeq++
		e.nsToPref[ns] = prefix
	}
	decl := ""
	if !e.onRoot[ns] {
		decl = ` xmlns:` + prefix + `="` + attrEscaper.Replace(ns) + `"`
	}
	name := prefix + ":" + local
	switch v := object.(type) {
	case rdf.IRI:
		return "<" + name + decl + ` rdf:resource="` + attrEscaper.Replace(v.Value) + `"/>`, nil
	case rdf.BlankNode:
		return "<" + name + decl + ` rdf:nodeID="` + nodeID(v.ID) + `"/>`, nil
	case rdf.Literal:
		attrs := ""
		switch {
		case v.Lang != "":
			attrs = ` xml:lang="` + attrEscaper.Replace(v.Lang) + `"`
		case v.Datatype.Value != "" && v.Datatype.Value != rdf.XSDString:
			attrs = ` rdf:datatype="` + attrEscaper.Replace(v.Datatype.Value) + `"`
		}
		return "<" + name + decl + attrs + ">" + textEscaper.Replace(v.Lexical) + "</" + name + ">", nil
	}
	return "", fmt.Errorf("rdfxml: unsupported object %s", object)
}

// Flush writes buffered output. An open rdf:Description stays open.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.setErr(e.writer.Flush())
}

// Close completes the document and flushes. A document with no triples
// still gets an empty rdf:RDF element. The underlying writer is not
// closed.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if !e.started {
		if err := e.setErr(e.writeRoot()); err != nil {
			return err
		}
		e.started = true
	}
	tail := "</rdf:RDF>\n"
	if e.open {
		tail = e.indent + "</rdf:Description>\n" + tail
		e.open = false
	}
	if _, err := e.writer.WriteString(tail); err != nil {
		return e.setErr(err)
	}
	if err := e.Flush(); err != nil {
		return err
	}
	e.err = ErrEncoderClosed
	return nil
}

func (e *Encoder) setErr(err error) error {
	if err != nil {
		e.err = err
	}
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
