package correspondence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdf-dynsyn/syntax"
)

var canonicalTable = []struct {
	syntax    syntax.Syntax
	extension FileExtension
	mediaType string
	total     bool
}{
	{syntax.Turtle, "ttl", "text/turtle", true},
	{syntax.NTriples, "nt", "application/n-triples", true},
	{syntax.NQuads, "nq", "application/n-quads", true},
	{syntax.TriG, "trig", "application/trig", true},
	{syntax.RDFXML, "rdf", "application/rdf+xml", true},
	{syntax.JSONLD, "jsonld", "application/ld+json", true},
	{syntax.HTMLRDFa, "html", "text/html", false},
	{syntax.XHTMLRDFa, "xhtml", "application/xhtml+xml", false},
	{syntax.OWL2Manchester, "omn", "text/owl-manchester", true},
	{syntax.OWL2XML, "owl", "application/owl+xml", true},
	{syntax.N3, "n3", "text/n3", true},
}

func TestCanonicalExtensions(t *testing.T) {
	for _, tt := range canonicalTable {
		t.Run(string(tt.extension), func(t *testing.T) {
			c, err := SyntaxFromExtension(tt.extension)
			require.NoError(t, err)
			assert.Equal(t, tt.syntax, c.Value)
			assert.Equal(t, tt.total, c.IsTotal)

			ext, ok := PreferredExtension(tt.syntax)
			require.True(t, ok)
			assert.Equal(t, tt.extension, ext.Value)
		})
	}
}

func TestCanonicalMediaTypes(t *testing.T) {
	for _, tt := range canonicalTable {
		t.Run(tt.mediaType, func(t *testing.T) {
			c, err := SyntaxFromMediaType(MustParseMediaType(tt.mediaType))
			require.NoError(t, err)
			assert.Equal(t, tt.syntax, c.Value)
			assert.Equal(t, tt.total, c.IsTotal)

			mt, ok := CanonicalMediaType(tt.syntax)
			require.True(t, ok)
			assert.Equal(t, tt.mediaType, mt.Value.String())
		})
	}
}

func TestReverseMapsAreTotalOverKnownSyntaxes(t *testing.T) {
	for _, s := range syntax.All() {
		_, ok := PreferredExtension(s)
		assert.True(t, ok, s.String())
		_, ok = CanonicalMediaType(s)
		assert.True(t, ok, s.String())
	}
	_, ok := PreferredExtension(syntax.Unknown)
	assert.False(t, ok)
	_, ok = CanonicalMediaType(syntax.Unknown)
	assert.False(t, ok)
}

func TestSecondaryExtensions(t *testing.T) {
	tests := []struct {
		ext    FileExtension
		syntax syntax.Syntax
		total  bool
	}{
		{"json", syntax.JSONLD, false},
		{"nquads", syntax.NQuads, true},
		{"ntriples", syntax.NTriples, true},
		{"rdfxml", syntax.RDFXML, true},
		{"owx", syntax.OWL2XML, true},
		{"turtle", syntax.Turtle, true},
	}
	for _, tt := range tests {
		c, err := SyntaxFromExtension(tt.ext)
		require.NoError(t, err, tt.ext)
		assert.Equal(t, tt.syntax, c.Value, tt.ext)
		assert.Equal(t, tt.total, c.IsTotal, tt.ext)
	}
}

func TestNonRdfExtensions(t *testing.T) {
	for _, ext := range []FileExtension{"png", "pdf", "mp3", "avf", "c", "rs", "TTL", ""} {
		_, err := SyntaxFromExtension(ext)
		var target *NotRdfFileExtensionError
		require.ErrorAs(t, err, &target, string(ext))
		assert.Equal(t, ext, target.Extension)
	}
}

func TestNonRdfMediaTypes(t *testing.T) {
	for _, v := range []string{"application/pdf", "application/javascript", "font/woff", "image/*", "text/csv"} {
		_, err := SyntaxFromMediaType(MustParseMediaType(v))
		var target *NotRdfMediaTypeError
		require.ErrorAs(t, err, &target, v)
		assert.Equal(t, v, target.MediaType.Essence())
	}
}

func TestMediaTypeLookupIgnoresParamsAndCase(t *testing.T) {
	c, err := SyntaxFromMediaType(MustParseMediaType("Text/Turtle; charset=UTF-8"))
	require.NoError(t, err)
	assert.Equal(t, syntax.Turtle, c.Value)
}

func TestParseMediaType(t *testing.T) {
	mt, err := ParseMediaType("application/n-quads; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "application", mt.Type)
	assert.Equal(t, "n-quads", mt.Subtype)
	assert.Equal(t, map[string]string{"charset": "utf-8"}, mt.Params)
	assert.Equal(t, "application/n-quads; charset=utf-8", mt.String())
	assert.True(t, mt.Equal(ApplicationNQuads))

	_, err = ParseMediaType("turtle")
	assert.Error(t, err)
	_, err = ParseMediaType("")
	assert.Error(t, err)
}

func TestExtensionFromPath(t *testing.T) {
	tests := []struct {
		path string
		want FileExtension
		ok   bool
	}{
		{"data/graph.ttl", "ttl", true},
		{"/tmp/archive.tar.nq", "nq", true},
		{"DATA.TTL", "TTL", true},
		{"README", "", false},
		{".profile", "", false},
		{"trailing.", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtensionFromPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestResolveHint(t *testing.T) {
	c, err := ResolveHint(Hint{Path: "doc.nt", MediaType: "application/trig"})
	require.NoError(t, err)
	assert.Equal(t, syntax.TriG, c.Value)

	c, err = ResolveHint(Hint{Path: "doc.nt", MediaType: "application/octet-stream"})
	require.NoError(t, err)
	assert.Equal(t, syntax.NTriples, c.Value)

	c, err = ResolveHint(Hint{Path: "doc.rdf", MediaType: "not a media type"})
	require.NoError(t, err)
	assert.Equal(t, syntax.RDFXML, c.Value)

	_, err = ResolveHint(Hint{Path: "doc.png", MediaType: "image/png"})
	var mtErr *NotRdfMediaTypeError
	var extErr *NotRdfFileExtensionError
	assert.True(t, errors.As(err, &mtErr))
	assert.True(t, errors.As(err, &extErr))

	_, err = ResolveHint(Hint{})
	assert.ErrorIs(t, err, ErrNoHint)
}
