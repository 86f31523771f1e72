// Package canon compares RDF datasets up to blank node renaming using the
// URDNA2015 canonicalization algorithm.
package canon

import (
	"errors"
	"fmt"
	"strconv"

	ld "github.com/piprate/json-gold/ld"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

// ErrTripleTerm reports a quoted triple, which URDNA2015 cannot label.
var ErrTripleTerm = errors.New("canon: triple terms are not supported")

// Canonicalize returns the canonical N-Quads form of quads. Duplicate
// quads count once, and blank nodes are relabelled deterministically, so
// two isomorphic datasets give the same string.
func Canonicalize(quads []rdf.Quad) (string, error) {
	dataset, err := toDataset(quads)
	if err != nil {
		return "", err
	}
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	opts.Algorithm = ld.AlgorithmURDNA2015
	normalized, err := ld.NewJsonLdApi().Normalize(dataset, opts)
	if err != nil {
		return "", fmt.Errorf("canon: %w", err)
	}
	out, ok := normalized.(string)
	if !ok {
		return "", fmt.Errorf("canon: unexpected normalization result %T", normalized)
	}
	return out, nil
}

// Isomorphic reports whether a and b hold the same quads up to blank node
// renaming.
func Isomorphic(a, b []rdf.Quad) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}

// IsomorphicTriples is Isomorphic for two graphs.
func IsomorphicTriples(a, b []rdf.Triple) (bool, error) {
	return Isomorphic(inDefaultGraph(a), inDefaultGraph(b))
}

func inDefaultGraph(triples []rdf.Triple) []rdf.Quad {
	out := make([]rdf.Quad, len(triples))
	for i, t := range triples {
		out[i] = t.ToQuad()
	}
	return out
}

// toDataset builds a json-gold dataset. Blank node labels are replaced by
// short generated ones, since json-gold only accepts alphanumeric labels.
func toDataset(quads []rdf.Quad) (*ld.RDFDataset, error) {
	b := datasetBuilder{
		dataset: ld.NewRDFDataset(),
		labels:  map[string]string{},
		seen:    map[string]struct{}{},
	}
	for _, q := range quads {
		if err := b.add(q); err != nil {
			return nil, err
		}
	}
	return b.dataset, nil
}

type datasetBuilder struct {
	dataset *ld.RDFDataset
	labels  map[string]string
	seen    map[string]struct{}
}

func (b *datasetBuilder) add(q rdf.Quad) error {
	s, err := b.node(q.S)
	if err != nil {
		return err
	}
	p, err := b.node(q.P)
	if err != nil {
		return err
	}
	o, err := b.node(q.O)
	if err != nil {
		return err
	}
	graph := "@default"
	if q.G != nil {
		g, err := b.node(q.G)
		if err != nil {
			return err
		}
		graph = g.GetValue()
	}

	key := nodeKey(s) + "|" + nodeKey(p) + "|" + nodeKey(o) + "|" + graph
	if _, dup := b.seen[key]; dup {
		return nil
	}
	b.seen[key] = struct{}{}
	b.dataset.Graphs[graph] = append(b.dataset.Graphs[graph], ld.NewQuad(s, p, o, graph))
	return nil
}

func (b *datasetBuilder) node(t rdf.Term) (ld.Node, error) {
	switch v := t.(type) {
	case rdf.IRI:
		return ld.NewIRI(v.Value), nil
	case rdf.BlankNode:
		label, ok := b.labels[v.ID]
		if !ok {
			label = "_:b" + strconv.Itoa(len(b.labels))
			b.labels[v.ID] = label
		}
		return ld.NewBlankNode(label), nil
	case rdf.Literal:
		return ld.NewLiteral(v.Lexical, v.EffectiveDatatype().Value, v.Lang), nil
	case rdf.TripleTerm:
		return nil, ErrTripleTerm
	case nil:
		return nil, errors.New("canon: missing term")
	}
	return nil, fmt.Errorf("canon: unsupported term %T", t)
}

func nodeKey(n ld.Node) string {
	if lit, ok := n.(ld.Literal); ok {
		return lit.Value + "^^" + lit.Datatype + "@" + lit.Language
	}
	return n.GetValue()
}
