package rdf

import (
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
)

// BlankNodeGenerator mints blank nodes for anonymous nodes found while
// parsing. Every generator carries a random label prefix, so generated
// labels never collide with labels written in the document or produced by
// another generator. Not safe for concurrent use.
type BlankNodeGenerator struct {
	prefix  string
	counter int
}

// NewBlankNodeGenerator creates a generator with a fresh random prefix.
func NewBlankNodeGenerator() *BlankNodeGenerator {
	id := uuid.New()
	return &BlankNodeGenerator{prefix: "g" + hex.EncodeToString(id[:4]) + "n"}
}

// Next generates the next blank node.
func (g *BlankNodeGenerator) Next() BlankNode {
	g.counter++
	return BlankNode{ID: g.prefix + strconv.Itoa(g.counter)}
}

// Prefix returns the label prefix shared by all generated nodes.
func (g *BlankNodeGenerator) Prefix() string { return g.prefix }
