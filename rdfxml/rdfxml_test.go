package rdfxml

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

const header = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:ex="http://example.org/"
         xmlns:foaf="http://xmlns.com/foaf/0.1/">
`

func iri(v string) rdf.IRI { return rdf.IRI{Value: v} }

func decodeAll(t *testing.T, doc string, opts DecodeOptions) []rdf.Triple {
	t.Helper()
	triples, err := rdf.CollectTriples(NewDecoder(strings.NewReader(doc), opts))
	require.NoError(t, err)
	return triples
}

// objects returns the objects of all triples matching subject and predicate.
func objects(triples []rdf.Triple, s rdf.Term, p string) []rdf.Term {
	var out []rdf.Term
	for _, t := range triples {
		if rdf.TermEqual(t.S, s) && t.P.Value == p {
			out = append(out, t.O)
		}
	}
	return out
}

func TestDecodeDescriptions(t *testing.T) {
	doc := header + `
  <rdf:Description rdf:about="http://example.org/alice" foaf:nick="ally">
    <foaf:name xml:lang="en">Alice</foaf:name>
    <foaf:knows rdf:resource="http://example.org/bob"/>
    <foaf:age rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">42</foaf:age>
    <ex:friend rdf:nodeID="n1"/>
  </rdf:Description>
  <foaf:Person rdf:nodeID="n1">
    <foaf:name>Carol</foaf:name>
  </foaf:Person>
</rdf:RDF>`
	triples := decodeAll(t, doc, DecodeOptions{})
	alice := iri("http://example.org/alice")

	assert.Len(t, triples, 7)
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "ally"}}, objects(triples, alice, "http://xmlns.com/foaf/0.1/nick"))
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "Alice", Lang: "en"}}, objects(triples, alice, "http://xmlns.com/foaf/0.1/name"))
	assert.Equal(t, []rdf.Term{iri("http://example.org/bob")}, objects(triples, alice, "http://xmlns.com/foaf/0.1/knows"))
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "42", Datatype: iri(rdf.XSDInteger)}}, objects(triples, alice, "http://xmlns.com/foaf/0.1/age"))
	assert.Equal(t, []rdf.Term{rdf.BlankNode{ID: "n1"}}, objects(triples, alice, "http://example.org/friend"))
	assert.Equal(t, []rdf.Term{iri("http://xmlns.com/foaf/0.1/Person")}, objects(triples, rdf.BlankNode{ID: "n1"}, rdf.RDFType))
}

func TestDecodeNestedAndEmptyElements(t *testing.T) {
	doc := header + `
  <rdf:Description rdf:about="http://example.org/s">
    <ex:knows>
      <foaf:Person foaf:name="Dan"/>
    </ex:knows>
    <ex:address ex:city="Paris" rdf:type="http://example.org/Address"/>
    <ex:empty/>
  </rdf:Description>
</rdf:RDF>`
	triples := decodeAll(t, doc, DecodeOptions{})
	s := iri("http://example.org/s")

	known := objects(triples, s, "http://example.org/knows")
	require.Len(t, known, 1)
	assert.Equal(t, []rdf.Term{iri("http://xmlns.com/foaf/0.1/Person")}, objects(triples, known[0], rdf.RDFType))
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "Dan"}}, objects(triples, known[0], "http://xmlns.com/foaf/0.1/name"))

	addr := objects(triples, s, "http://example.org/address")
	require.Len(t, addr, 1)
	assert.IsType(t, rdf.BlankNode{}, addr[0])
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "Paris"}}, objects(triples, addr[0], "http://example.org/city"))
	assert.Equal(t, []rdf.Term{iri("http://example.org/Address")}, objects(triples, addr[0], rdf.RDFType))

	assert.Equal(t, []rdf.Term{rdf.Literal{}}, objects(triples, s, "http://example.org/empty"))
}

func TestDecodeBaseAndIDs(t *testing.T) {
	doc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
  <rdf:Description rdf:ID="me">
    <ex:page rdf:resource="page.html"/>
  </rdf:Description>
  <rdf:Description xml:base="http://other.example/dir/" rdf:about="thing">
    <ex:p rdf:resource="../up"/>
  </rdf:Description>
</rdf:RDF>`
	triples := decodeAll(t, doc, DecodeOptions{BaseIRI: "http://localhost/ex"})
	require.Len(t, triples, 2)
	assert.Equal(t, rdf.Triple{S: iri("http://localhost/ex#me"), P: iri("http://example.org/page"), O: iri("http://localhost/page.html")}, triples[0])
	assert.Equal(t, rdf.Triple{S: iri("http://other.example/dir/thing"), P: iri("http://example.org/p"), O: iri("http://other.example/up")}, triples[1])
}

func TestDecodeParseTypes(t *testing.T) {
	doc := header + `
  <rdf:Description rdf:about="http://example.org/s">
    <ex:res rdf:parseType="Resource">
      <ex:inner>v</ex:inner>
    </ex:res>
    <ex:list rdf:parseType="Collection">
      <rdf:Description rdf:about="http://example.org/a"/>
      <rdf:Description rdf:about="http://example.org/b"/>
    </ex:list>
    <ex:none rdf:parseType="Collection"/>
    <ex:xml rdf:parseType="Literal"><b>bold</b> text</ex:xml>
  </rdf:Description>
</rdf:RDF>`
	triples := decodeAll(t, doc, DecodeOptions{})
	s := iri("http://example.org/s")

	res := objects(triples, s, "http://example.org/res")
	require.Len(t, res, 1)
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "v"}}, objects(triples, res[0], "http://example.org/inner"))

	head := objects(triples, s, "http://example.org/list")
	require.Len(t, head, 1)
	assert.Equal(t, []rdf.Term{iri("http://example.org/a")}, objects(triples, head[0], rdf.RDFFirst))
	second := objects(triples, head[0], rdf.RDFRest)
	require.Len(t, second, 1)
	assert.Equal(t, []rdf.Term{iri("http://example.org/b")}, objects(triples, second[0], rdf.RDFFirst))
	assert.Equal(t, []rdf.Term{iri(rdf.RDFNil)}, objects(triples, second[0], rdf.RDFRest))

	assert.Equal(t, []rdf.Term{iri(rdf.RDFNil)}, objects(triples, s, "http://example.org/none"))

	lit := objects(triples, s, "http://example.org/xml")
	require.Len(t, lit, 1)
	l := lit[0].(rdf.Literal)
	assert.Equal(t, rdf.RDFXMLLiteral, l.Datatype.Value)
	assert.Contains(t, l.Lexical, "bold")
	assert.True(t, strings.HasSuffix(l.Lexical, " text"))
}

func TestDecodeContainerAndReification(t *testing.T) {
	doc := header + `
  <rdf:Seq rdf:about="http://example.org/seq">
    <rdf:li>one</rdf:li>
    <rdf:li>two</rdf:li>
  </rdf:Seq>
  <rdf:Description rdf:about="http://example.org/s">
    <ex:p rdf:ID="stmt">o</ex:p>
  </rdf:Description>
</rdf:RDF>`
	triples := decodeAll(t, doc, DecodeOptions{BaseIRI: "http://localhost/doc"})
	seq := iri("http://example.org/seq")
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "one"}}, objects(triples, seq, rdf.RDFNS+"_1"))
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "two"}}, objects(triples, seq, rdf.RDFNS+"_2"))

	stmt := iri("http://localhost/doc#stmt")
	assert.Equal(t, []rdf.Term{iri(rdf.RDFStatement)}, objects(triples, stmt, rdf.RDFType))
	assert.Equal(t, []rdf.Term{iri("http://example.org/s")}, objects(triples, stmt, rdf.RDFSubject))
	assert.Equal(t, []rdf.Term{iri("http://example.org/p")}, objects(triples, stmt, rdf.RDFPredicate))
	assert.Equal(t, []rdf.Term{rdf.Literal{Lexical: "o"}}, objects(triples, stmt, rdf.RDFObject))
}

func TestDecodeSingleNodeDocument(t *testing.T) {
	doc := `<ex:Thing xmlns:ex="http://example.org/" xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" rdf:about="http://example.org/t"/>`
	triples := decodeAll(t, doc, DecodeOptions{})
	assert.Equal(t, []rdf.Triple{{S: iri("http://example.org/t"), P: iri(rdf.RDFType), O: iri("http://example.org/Thing")}}, triples)
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"malformed xml":         header + `<rdf:Description rdf:about="x"></ex:p></rdf:RDF>`,
		"truncated":             header + `<rdf:Description rdf:about="http://example.org/s">`,
		"two subject attrs":     header + `<rdf:Description rdf:about="http://example.org/s" rdf:nodeID="b"/></rdf:RDF>`,
		"bad node id":           header + `<rdf:Description rdf:nodeID="1bad"/></rdf:RDF>`,
		"li as node":            header + `<rdf:li/></rdf:RDF>`,
		"mixed content":         header + `<rdf:Description rdf:about="http://example.org/s"><ex:p>text<ex:Q/></ex:p></rdf:Description></rdf:RDF>`,
		"resource and nodeID":   header + `<rdf:Description rdf:about="http://example.org/s"><ex:p rdf:resource="http://example.org/o" rdf:nodeID="b"/></rdf:Description></rdf:RDF>`,
		"duplicate rdf:ID":      header + `<rdf:Description rdf:ID="a"/><rdf:Description rdf:ID="a"/></rdf:RDF>`,
		"text between props":    header + `<rdf:Description rdf:about="http://example.org/s">loose</rdf:Description></rdf:RDF>`,
		"no namespace property": header + `<rdf:Description rdf:about="http://example.org/s"><p>o</p></rdf:Description></rdf:RDF>`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			dec := NewDecoder(strings.NewReader(doc), DecodeOptions{})
			_, err := rdf.CollectTriples(dec)
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Positive(t, perr.Line)

			_, again := dec.Next()
			assert.Equal(t, err, again)
		})
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestDecodeReadFailurePassesThrough(t *testing.T) {
	boom := errors.New("network down")
	dec := NewDecoder(io.MultiReader(strings.NewReader(header), failingReader{boom}), DecodeOptions{})
	_, err := dec.Next()
	assert.ErrorIs(t, err, boom)
	var perr *Error
	assert.False(t, errors.As(err, &perr))
}

func TestEncoderDefault(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, Config{Prefixes: map[string]string{"ex": "http://example.org/"}})
	require.NoError(t, enc.Write(rdf.Triple{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "a < b & c"}}))
	require.NoError(t, enc.Write(rdf.Triple{S: rdf.BlankNode{ID: "b1"}, P: iri("http://other.example/q"), O: iri("http://example.org/o")}))
	require.NoError(t, enc.Close())

	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://example.org/">
<rdf:Description rdf:about="http://example.org/s"><ex:p>a &lt; b &amp; c</ex:p></rdf:Description>
<rdf:Description rdf:nodeID="b1"><ns0:q xmlns:ns0="http://other.example/" rdf:resource="http://example.org/o"/></rdf:Description>
</rdf:RDF>
`, buf.String())
	assert.ErrorIs(t, enc.Write(rdf.Triple{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: iri("http://example.org/o")}), ErrEncoderClosed)
}

func TestEncoderPretty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, Config{Pretty: true, BaseIRI: "http://localhost/ex", Prefixes: map[string]string{"ex": "http://example.org/"}})
	s := iri("http://example.org/s")
	require.NoError(t, enc.Write(rdf.Triple{S: s, P: iri(rdf.RDFType), O: iri("http://example.org/T")}))
	require.NoError(t, enc.Write(rdf.Triple{S: s, P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "hi", Lang: "en"}}))
	require.NoError(t, enc.Write(rdf.Triple{S: iri("http://example.org/o"), P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "1", Datatype: iri(rdf.XSDInteger)}}))
	require.NoError(t, enc.Close())

	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xml:base="http://localhost/ex" xmlns:ex="http://example.org/">
  <rdf:Description rdf:about="http://example.org/s">
    <rdf:type rdf:resource="http://example.org/T"/>
    <ex:p xml:lang="en">hi</ex:p>
  </rdf:Description>
  <rdf:Description rdf:about="http://example.org/o">
    <ex:p rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">1</ex:p>
  </rdf:Description>
</rdf:RDF>
`, buf.String())
}

func TestEncoderEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf, Config{}).Close())
	triples, err := rdf.CollectTriples(NewDecoder(&buf, DecodeOptions{}))
	require.NoError(t, err)
	assert.Empty(t, triples)
}

func TestEncoderRejectsInexpressibleTerms(t *testing.T) {
	enc := NewEncoder(&bytes.Buffer{}, Config{})
	quoted := rdf.TripleTerm{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: iri("http://example.org/o")}
	assert.Error(t, enc.Write(rdf.Triple{S: quoted, P: iri("http://example.org/p"), O: iri("http://example.org/o")}))
	assert.Error(t, enc.Write(rdf.Triple{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: quoted}))
	assert.Error(t, enc.Write(rdf.Triple{S: iri("http://example.org/s"), P: iri("urn:x:"), O: quoted}))
}

func TestEncoderRejectsIllegalXMLChars(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, Config{})
	err := enc.Write(rdf.Triple{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "bell\u0001"}})
	assert.ErrorIs(t, err, ErrIllegalChar)
	assert.ErrorIs(t, enc.Write(rdf.Triple{S: iri("http://example.org/s\u0002"), P: iri("http://example.org/p"), O: iri("http://example.org/o")}), ErrIllegalChar)
	assert.ErrorIs(t, enc.Write(rdf.Triple{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "bad \xff"}}), ErrIllegalChar)

	// The encoder stays usable and the document stays well formed.
	require.NoError(t, enc.Write(rdf.Triple{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "tab\tand \ufffd"}}))
	require.NoError(t, enc.Close())
	got := decodeAll(t, buf.String(), DecodeOptions{})
	require.Len(t, got, 1)
	assert.True(t, rdf.TermEqual(rdf.Literal{Lexical: "tab\tand \ufffd"}, got[0].O), got[0].O.String())
}

func TestNodeIDsDoNotCollide(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, Config{})
	require.NoError(t, enc.Write(rdf.Triple{S: rdf.BlankNode{ID: "-"}, P: iri("http://example.org/p"), O: rdf.BlankNode{ID: "x2d"}}))
	require.NoError(t, enc.Close())

	got := decodeAll(t, buf.String(), DecodeOptions{})
	require.Len(t, got, 1)
	assert.False(t, rdf.TermEqual(got[0].S, got[0].O), buf.String())
	assert.Contains(t, buf.String(), `rdf:nodeID="x2d"`)
	assert.Contains(t, buf.String(), `rdf:nodeID="x783264"`)
}

func TestRoundTrip(t *testing.T) {
	triples := []rdf.Triple{
		{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "line one\r\nline two\t\"quoted\""}},
		{S: iri("http://example.org/s"), P: iri("http://example.org/p"), O: rdf.Literal{Lexical: "bonjour", Lang: "fr"}},
		{S: rdf.BlankNode{ID: "with space"}, P: iri("http://example.org/q#frag"), O: rdf.BlankNode{ID: "b2"}},
		{S: iri("http://example.org/s?x=1&y=2"), P: iri(rdf.RDFType), O: iri("http://example.org/T")},
		{S: iri("http://example.org/s"), P: iri("http://example.org/n"), O: rdf.Literal{Lexical: "3.5", Datatype: iri(rdf.XSDDecimal)}},
	}
	for _, cfg := range []Config{{}, {Pretty: true}} {
		var buf bytes.Buffer
		enc := NewEncoder(&buf, cfg)
		for _, tr := range triples {
			require.NoError(t, enc.Write(tr))
		}
		require.NoError(t, enc.Close())

		got := decodeAll(t, buf.String(), DecodeOptions{})
		require.Len(t, got, len(triples), buf.String())
		for i := range triples {
			want := triples[i]
			if b, ok := want.S.(rdf.BlankNode); ok {
				want.S = rdf.BlankNode{ID: nodeID(b.ID)}
			}
			assert.True(t, rdf.TripleEqual(want, got[i]), "triple %d: want %s, got %s", i, want, got[i])
		}
	}
}
