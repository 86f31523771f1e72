package rdf

import (
	"fmt"
	"strings"
)

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
	// TermTriple represents an RDF-star triple term.
	TermTriple
)

// String returns a readable name for the kind.
func (k TermKind) String() string {
	switch k {
	case TermIRI:
		return "iri"
	case TermBlankNode:
		return "blank-node"
	case TermLiteral:
		return "literal"
	case TermTriple:
		return "triple"
	default:
		return fmt.Sprintf("TermKind(%d)", uint8(k))
	}
}

// Term is a value that can appear in RDF statements.
//
// The terms defined in this package are comparable values. Callers may
// supply their own implementations; TermEqual compares those by kind and
// string form.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" && l.Datatype.Value != XSDString {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype.Value)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// EffectiveDatatype returns the datatype the literal denotes: rdf:langString
// for language-tagged literals and xsd:string for simple literals.
func (l Literal) EffectiveDatatype() IRI {
	switch {
	case l.Lang != "":
		return IRI{Value: RDFLangString}
	case l.Datatype.Value == "":
		return IRI{Value: XSDString}
	default:
		return l.Datatype
	}
}

// TripleTerm is an RDF-star quoted triple term.
type TripleTerm struct {
	// S is the subject of the quoted triple.
	S Term
	// P is the predicate of the quoted triple.
	P IRI
	// O is the object of the quoted triple.
	O Term
}

// Kind returns TermTriple.
func (t TripleTerm) Kind() TermKind { return TermTriple }

// String returns a string representation of the triple term.
func (t TripleTerm) String() string {
	return fmt.Sprintf("<<%s %s %s>>", t.S.String(), t.P.String(), t.O.String())
}

// Triple is an RDF triple.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// Quad is an RDF quad (triple + optional graph name).
type Quad struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
	// G is the graph name, or nil for the default graph.
	G Term
}

// IsZero reports whether the quad has no subject/predicate/object.
func (q Quad) IsZero() bool {
	return q.S == nil && q.P.Value == "" && q.O == nil && q.G == nil
}

// ToTriple extracts the triple from a quad (ignores graph).
func (q Quad) ToTriple() Triple {
	return Triple{S: q.S, P: q.P, O: q.O}
}

// InDefaultGraph reports whether the quad is in the default graph (no named graph).
func (q Quad) InDefaultGraph() bool {
	return q.G == nil
}

// InGraph reports whether the quad's graph name equals graph by value.
// A nil graph selects the default graph.
func (q Quad) InGraph(graph Term) bool {
	return TermEqual(q.G, graph)
}

// String renders the quad in N-Quads-like form for diagnostics.
func (q Quad) String() string {
	var b strings.Builder
	b.WriteString(q.S.String())
	b.WriteByte(' ')
	b.WriteString(q.P.String())
	b.WriteByte(' ')
	b.WriteString(q.O.String())
	if q.G != nil {
		b.WriteByte(' ')
		b.WriteString(q.G.String())
	}
	return b.String()
}

// ToQuad converts a triple to a quad in the default graph.
func (t Triple) ToQuad() Quad {
	return Quad{S: t.S, P: t.P, O: t.O, G: nil}
}

// ToQuadInGraph converts a triple to a quad in a named graph.
func (t Triple) ToQuadInGraph(graph Term) Quad {
	return Quad{S: t.S, P: t.P, O: t.O, G: graph}
}

// String renders the triple for diagnostics.
func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String()
}

// TermEqual reports whether two terms denote the same RDF term.
// Two nil terms are equal (both name the default graph). Simple literals
// equal their xsd:string typed form and language tags compare
// case-insensitively.
func TermEqual(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case IRI:
		y, ok := b.(IRI)
		if !ok {
			return foreignEqual(a, b)
		}
		return x.Value == y.Value
	case BlankNode:
		y, ok := b.(BlankNode)
		if !ok {
			return foreignEqual(a, b)
		}
		return x.ID == y.ID
	case Literal:
		y, ok := b.(Literal)
		if !ok {
			return foreignEqual(a, b)
		}
		return x.Lexical == y.Lexical &&
			strings.EqualFold(x.Lang, y.Lang) &&
			x.EffectiveDatatype() == y.EffectiveDatatype()
	case TripleTerm:
		y, ok := b.(TripleTerm)
		if !ok {
			return foreignEqual(a, b)
		}
		return TermEqual(x.S, y.S) && x.P == y.P && TermEqual(x.O, y.O)
	default:
		return foreignEqual(a, b)
	}
}

func foreignEqual(a, b Term) bool {
	return a.Kind() == b.Kind() && a.String() == b.String()
}

// TripleEqual reports whether two triples are equal term by term.
func TripleEqual(a, b Triple) bool {
	return TermEqual(a.S, b.S) && a.P == b.P && TermEqual(a.O, b.O)
}

// QuadEqual reports whether two quads are equal term by term.
func QuadEqual(a, b Quad) bool {
	return TermEqual(a.S, b.S) && a.P == b.P && TermEqual(a.O, b.O) && TermEqual(a.G, b.G)
}
