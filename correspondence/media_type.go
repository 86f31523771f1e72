package correspondence

import (
	"fmt"
	"mime"
	"strings"
)

// MediaType is a parsed MIME type. Type and Subtype are lower case; only
// they take part in correspondence lookups.
type MediaType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// Media types with an RDF correspondence.
var (
	TextHTML            = MediaType{Type: "text", Subtype: "html"}
	ApplicationJSONLD   = MediaType{Type: "application", Subtype: "ld+json"}
	TextN3              = MediaType{Type: "text", Subtype: "n3"}
	ApplicationNQuads   = MediaType{Type: "application", Subtype: "n-quads"}
	ApplicationNTriples = MediaType{Type: "application", Subtype: "n-triples"}
	TextOWLManchester   = MediaType{Type: "text", Subtype: "owl-manchester"}
	ApplicationOWLXML   = MediaType{Type: "application", Subtype: "owl+xml"}
	ApplicationRDFXML   = MediaType{Type: "application", Subtype: "rdf+xml"}
	ApplicationTriG     = MediaType{Type: "application", Subtype: "trig"}
	TextTurtle          = MediaType{Type: "text", Subtype: "turtle"}
	ApplicationXHTMLXML = MediaType{Type: "application", Subtype: "xhtml+xml"}
)

// ParseMediaType parses a media type such as "text/turtle; charset=utf-8".
func ParseMediaType(value string) (MediaType, error) {
	essence, params, err := mime.ParseMediaType(value)
	if err != nil {
		return MediaType{}, fmt.Errorf("correspondence: invalid media type %q: %w", value, err)
	}
	typ, sub, ok := strings.Cut(essence, "/")
	if !ok || typ == "" || sub == "" {
		return MediaType{}, fmt.Errorf("correspondence: invalid media type %q: missing subtype", value)
	}
	mt := MediaType{Type: typ, Subtype: sub}
	if len(params) > 0 {
		mt.Params = params
	}
	return mt, nil
}

// MustParseMediaType is like ParseMediaType but panics on error.
func MustParseMediaType(value string) MediaType {
	mt, err := ParseMediaType(value)
	if err != nil {
		panic(err)
	}
	return mt
}

// Essence returns "type/subtype" without parameters.
func (m MediaType) Essence() string {
	return strings.ToLower(m.Type) + "/" + strings.ToLower(m.Subtype)
}

// String formats the media type with its parameters.
func (m MediaType) String() string {
	if len(m.Params) == 0 {
		return m.Essence()
	}
	return mime.FormatMediaType(m.Essence(), m.Params)
}

// Equal compares type and subtype, ignoring parameters.
func (m MediaType) Equal(other MediaType) bool {
	return m.Essence() == other.Essence()
}
