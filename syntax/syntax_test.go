package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllIsStableAndKnown(t *testing.T) {
	all := All()
	require.Len(t, all, 11)
	assert.Equal(t, Turtle, all[0])
	assert.Equal(t, N3, all[len(all)-1])
	for _, s := range all {
		assert.True(t, s.IsKnown(), s.String())
	}
	assert.Equal(t, all, All())
}

func TestUnknownIsNotKnown(t *testing.T) {
	assert.False(t, Unknown.IsKnown())
	assert.False(t, Syntax(200).IsKnown())
	assert.False(t, Syntax(200).HasParser())
	assert.Equal(t, "Syntax(200)", Syntax(200).String())
	assert.Equal(t, "", Syntax(200).Name())
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		syntax     Syntax
		quads      bool
		parser     bool
		serializer bool
	}{
		{Turtle, false, true, true},
		{NTriples, false, true, true},
		{NQuads, true, true, true},
		{TriG, true, true, true},
		{RDFXML, false, true, true},
		{JSONLD, false, false, false},
		{HTMLRDFa, false, false, false},
		{XHTMLRDFa, false, false, false},
		{OWL2Manchester, false, false, false},
		{OWL2XML, false, false, false},
		{N3, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.syntax.String(), func(t *testing.T) {
			assert.Equal(t, tt.quads, tt.syntax.SupportsQuads())
			assert.Equal(t, tt.parser, tt.syntax.HasParser())
			assert.Equal(t, tt.serializer, tt.syntax.HasSerializer())
		})
	}
}

func TestParseableAndSerializable(t *testing.T) {
	want := []Syntax{Turtle, NTriples, NQuads, TriG, RDFXML}
	assert.Equal(t, want, Parseable())
	assert.Equal(t, want, Serializable())
}

func TestParseRoundTripsNames(t *testing.T) {
	for _, s := range All() {
		got, ok := Parse(s.Name())
		require.True(t, ok, s.Name())
		assert.Equal(t, s, got)
	}
	got, ok := Parse("  TTL ")
	require.True(t, ok)
	assert.Equal(t, Turtle, got)

	_, ok = Parse("csv")
	assert.False(t, ok)
}
