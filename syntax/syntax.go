// Package syntax enumerates the RDF concrete syntaxes known to this module
// and records which of them have parsing or serializing engines.
package syntax

import (
	"fmt"
	"strings"
)

// Syntax identifies one RDF concrete syntax.
type Syntax uint8

const (
	// Unknown is the zero value; it names no syntax.
	Unknown Syntax = iota
	Turtle
	NTriples
	NQuads
	TriG
	RDFXML
	JSONLD
	HTMLRDFa
	XHTMLRDFa
	OWL2Manchester
	OWL2XML
	N3

	syntaxCount
)

type capability struct {
	name       string
	label      string
	quads      bool
	parser     bool
	serializer bool
}

var capabilities = [syntaxCount]capability{
	Unknown:        {name: "unknown", label: "unknown"},
	Turtle:         {name: "turtle", label: "Turtle", parser: true, serializer: true},
	NTriples:       {name: "ntriples", label: "N-Triples", parser: true, serializer: true},
	NQuads:         {name: "nquads", label: "N-Quads", quads: true, parser: true, serializer: true},
	TriG:           {name: "trig", label: "TriG", quads: true, parser: true, serializer: true},
	RDFXML:         {name: "rdfxml", label: "RDF/XML", parser: true, serializer: true},
	JSONLD:         {name: "jsonld", label: "JSON-LD"},
	HTMLRDFa:       {name: "htmlrdfa", label: "HTML+RDFa"},
	XHTMLRDFa:      {name: "xhtmlrdfa", label: "XHTML+RDFa"},
	OWL2Manchester: {name: "owl2manchester", label: "OWL2 Manchester"},
	OWL2XML:        {name: "owl2xml", label: "OWL2 XML"},
	N3:             {name: "n3", label: "Notation3"},
}

func (s Syntax) capability() (capability, bool) {
	if s == Unknown || s >= syntaxCount {
		return capability{}, false
	}
	return capabilities[s], true
}

// IsKnown reports whether s is one of the enumerated syntaxes.
func (s Syntax) IsKnown() bool {
	_, ok := s.capability()
	return ok
}

// SupportsQuads reports whether the syntax can carry named graphs.
func (s Syntax) SupportsQuads() bool {
	c, _ := s.capability()
	return c.quads
}

// HasParser reports whether a parsing engine exists for s.
func (s Syntax) HasParser() bool {
	c, _ := s.capability()
	return c.parser
}

// HasSerializer reports whether a serializing engine exists for s.
func (s Syntax) HasSerializer() bool {
	c, _ := s.capability()
	return c.serializer
}

// Name returns the canonical lower-case identifier, as accepted by Parse.
func (s Syntax) Name() string {
	if c, ok := s.capability(); ok {
		return c.name
	}
	return ""
}

func (s Syntax) String() string {
	if c, ok := s.capability(); ok {
		return c.label
	}
	if s == Unknown {
		return "unknown"
	}
	return fmt.Sprintf("Syntax(%d)", uint8(s))
}

// All returns every known syntax in declaration order.
func All() []Syntax {
	out := make([]Syntax, 0, syntaxCount-1)
	for s := Turtle; s < syntaxCount; s++ {
		out = append(out, s)
	}
	return out
}

// Parseable returns the syntaxes backed by a parsing engine.
func Parseable() []Syntax {
	var out []Syntax
	for _, s := range All() {
		if s.HasParser() {
			out = append(out, s)
		}
	}
	return out
}

// Serializable returns the syntaxes backed by a serializing engine.
func Serializable() []Syntax {
	var out []Syntax
	for _, s := range All() {
		if s.HasSerializer() {
			out = append(out, s)
		}
	}
	return out
}

// Parse maps a syntax name to its value. Matching ignores case and
// surrounding space, and accepts a few common aliases.
func Parse(value string) (Syntax, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl":
		return Turtle, true
	case "ntriples", "n-triples", "nt":
		return NTriples, true
	case "nquads", "n-quads", "nq":
		return NQuads, true
	case "trig":
		return TriG, true
	case "rdfxml", "rdf/xml", "rdf":
		return RDFXML, true
	case "jsonld", "json-ld":
		return JSONLD, true
	case "htmlrdfa", "html+rdfa":
		return HTMLRDFa, true
	case "xhtmlrdfa", "xhtml+rdfa":
		return XHTMLRDFa, true
	case "owl2manchester", "manchester":
		return OWL2Manchester, true
	case "owl2xml", "owl/xml":
		return OWL2XML, true
	case "n3", "notation3":
		return N3, true
	default:
		return Unknown, false
	}
}
