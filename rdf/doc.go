// Package rdf holds the statement model shared by every engine and by the
// dynamic-syntax layer: terms, triples, quads, term equality and the
// pull-style stream contracts.
//
// Streams are pull based. A TripleSource or QuadSource returns one
// statement per Next call and io.EOF once exhausted:
//
//	for {
//	    q, err := src.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process q.S, q.P, q.O, q.G
//	}
//
// ForEachTriple and ForEachQuad push statements into a handler and keep
// producer failures (*SourceError) apart from consumer failures
// (*SinkError).
//
// A nil graph name denotes the default graph. TermEqual compares terms by
// value; it is the equality used everywhere a graph name is matched.
package rdf
