package turtle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

var (
	exS     = iri("http://example.org/s")
	exP     = iri("http://example.org/p")
	exQ     = iri("http://example.org/q")
	exG     = iri("http://example.org/g")
	exPrefs = map[string]string{"ex": "http://example.org/"}
)

func TestNTriplesEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewNTriplesEncoder(&buf, NTriplesConfig{})
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: exP, O: rdf.Literal{Lexical: "line\n\"quoted\""}}))
	require.NoError(t, enc.Write(rdf.Triple{S: rdf.BlankNode{ID: "b0"}, P: exP, O: rdf.Literal{Lexical: "chat", Lang: "fr"}}))
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: exP, O: rdf.Literal{Lexical: "7", Datatype: iri(rdf.XSDInteger)}}))
	require.NoError(t, enc.Close())

	assert.Equal(t, `<http://example.org/s> <http://example.org/p> "line\n\"quoted\"" .
_:b0 <http://example.org/p> "chat"@fr .
<http://example.org/s> <http://example.org/p> "7"^^<http://www.w3.org/2001/XMLSchema#integer> .
`, buf.String())

	assert.ErrorIs(t, enc.Write(rdf.Triple{S: exS, P: exP, O: exS}), ErrEncoderClosed)
}

func TestNTriplesEncoderASCII(t *testing.T) {
	var buf bytes.Buffer
	enc := NewNTriplesEncoder(&buf, NTriplesConfig{ASCII: true})
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: exP, O: rdf.Literal{Lexical: "é😀"}}))
	require.NoError(t, enc.Close())
	assert.Equal(t, `<http://example.org/s> <http://example.org/p> "\u00E9\U0001F600" .`+"\n", buf.String())
}

func TestNQuadsEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewNQuadsEncoder(&buf, NQuadsConfig{})
	require.NoError(t, enc.Write(rdf.Quad{S: exS, P: exP, O: exS, G: exG}))
	require.NoError(t, enc.Write(rdf.Quad{S: exS, P: exP, O: exS}))
	require.NoError(t, enc.Close())
	assert.Equal(t, "<http://example.org/s> <http://example.org/p> <http://example.org/s> <http://example.org/g> .\n"+
		"<http://example.org/s> <http://example.org/p> <http://example.org/s> .\n", buf.String())
}

func TestEncoderRejectsIncompleteStatement(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewNTriplesEncoder(&buf, NTriplesConfig{}).Write(rdf.Triple{S: exS, P: exP}))
	assert.Error(t, NewTurtleEncoder(&buf, TurtleConfig{}).Write(rdf.Triple{P: exP, O: exS}))
	assert.Error(t, NewTriGEncoder(&buf, TriGConfig{}).Write(rdf.Quad{S: exS, O: exS}))
}

func TestTurtleEncoderDefault(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTurtleEncoder(&buf, TurtleConfig{Prefixes: exPrefs})
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: iri(rdf.RDFType), O: iri("http://example.org/Thing")}))
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: exP, O: rdf.Literal{Lexical: "1", Datatype: iri(rdf.XSDInteger)}}))
	require.NoError(t, enc.Close())

	assert.Equal(t, `@prefix ex: <http://example.org/> .
ex:s <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> ex:Thing .
ex:s ex:p "1"^^<http://www.w3.org/2001/XMLSchema#integer> .
`, buf.String())
}

func TestTurtleEncoderPretty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTurtleEncoder(&buf, TurtleConfig{Pretty: true, Prefixes: exPrefs})
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: iri(rdf.RDFType), O: iri("http://example.org/Thing")}))
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: exP, O: rdf.Literal{Lexical: "1", Datatype: iri(rdf.XSDInteger)}}))
	require.NoError(t, enc.Write(rdf.Triple{S: exS, P: exP, O: rdf.Literal{Lexical: "true", Datatype: iri(rdf.XSDBoolean)}}))
	require.NoError(t, enc.Write(rdf.Triple{S: exQ, P: exP, O: rdf.Literal{Lexical: "x"}}))
	require.NoError(t, enc.Close())

	assert.Equal(t, `@prefix ex: <http://example.org/> .

ex:s a ex:Thing ;
    ex:p 1, true .
ex:q ex:p "x" .
`, buf.String())
}

func TestTurtleEncoderBaseAndEscapes(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTurtleEncoder(&buf, TurtleConfig{BaseIRI: "http://localhost/ex"})
	require.NoError(t, enc.Write(rdf.Triple{S: iri("http://localhost/ex#me"), P: exP, O: iri("http://example.org/a b")}))
	require.NoError(t, enc.Write(rdf.Triple{S: rdf.BlankNode{ID: "has space"}, P: exP, O: exS}))
	require.NoError(t, enc.Close())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "@base <http://localhost/ex> .\n"))
	assert.Contains(t, out, `<#me> <http://example.org/p> <http://example.org/a\u0020b> .`)
	assert.Contains(t, out, "_:x686173207370616365 ")
}

func TestEncodedLabelsDoNotCollide(t *testing.T) {
	quad := rdf.Quad{S: rdf.BlankNode{ID: "-"}, P: exP, O: rdf.BlankNode{ID: "x2d"}, G: exG}

	var buf bytes.Buffer
	enc := NewNQuadsEncoder(&buf, NQuadsConfig{})
	require.NoError(t, enc.Write(quad))
	require.NoError(t, enc.Close())

	got, err := rdf.CollectQuads(NewNQuadsDecoder(strings.NewReader(buf.String()), DecodeOptions{}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, rdf.TermEqual(got[0].S, got[0].O), buf.String())
	assert.Equal(t, "_:x2d <http://example.org/p> _:x783264 <http://example.org/g> .\n", buf.String())
}

func TestTriGEncoderDefault(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTriGEncoder(&buf, TriGConfig{})
	require.NoError(t, enc.Write(rdf.Quad{S: exS, P: exP, O: exS, G: exG}))
	require.NoError(t, enc.Write(rdf.Quad{S: exS, P: exP, O: exS}))
	require.NoError(t, enc.Close())
	assert.Equal(t, "<http://example.org/g> { <http://example.org/s> <http://example.org/p> <http://example.org/s> . }\n"+
		"<http://example.org/s> <http://example.org/p> <http://example.org/s> .\n", buf.String())
}

func TestTriGEncoderPretty(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTriGEncoder(&buf, TriGConfig{Pretty: true, Prefixes: exPrefs})
	require.NoError(t, enc.Write(rdf.Quad{S: exS, P: exP, O: exS}))
	require.NoError(t, enc.Write(rdf.Quad{S: exS, P: exP, O: exQ, G: exG}))
	require.NoError(t, enc.Write(rdf.Quad{S: exS, P: exQ, O: exQ, G: exG}))
	require.NoError(t, enc.Write(rdf.Quad{S: exQ, P: exQ, O: exQ, G: exG}))
	require.NoError(t, enc.Close())

	assert.Equal(t, `@prefix ex: <http://example.org/> .

ex:s ex:p ex:s .
ex:g {
    ex:s ex:p ex:q ;
        ex:q ex:q .
    ex:q ex:q ex:q .
}
`, buf.String())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	quads := []rdf.Quad{
		{S: exS, P: exP, O: rdf.Literal{Lexical: "tab\tand \"quote\" and \\"}},
		{S: exS, P: exP, O: rdf.Literal{Lexical: "hallo", Lang: "de"}, G: exG},
		{S: rdf.BlankNode{ID: "n1"}, P: exQ, O: rdf.Literal{Lexical: "-5", Datatype: iri(rdf.XSDInteger)}, G: rdf.BlankNode{ID: "g2"}},
		{S: rdf.TripleTerm{S: exS, P: exP, O: exQ}, P: exQ, O: exS, G: exG},
	}
	for _, cfg := range []TriGConfig{{}, {Pretty: true, Prefixes: exPrefs}} {
		var buf bytes.Buffer
		enc := NewTriGEncoder(&buf, cfg)
		for _, q := range quads {
			require.NoError(t, enc.Write(q))
		}
		require.NoError(t, enc.Close())

		got := collectQuads(t, NewTriGDecoder(&buf, DecodeOptions{}))
		require.Len(t, got, len(quads))
		for i := range quads {
			assert.True(t, rdf.QuadEqual(quads[i], got[i]), "quad %d: want %s, got %s", i, quads[i], got[i])
		}
	}
}
