package correspondence

import "github.com/geoknoesis/rdf-dynsyn/syntax"

// Correspondent qualifies a looked-up value. IsTotal is false when the key
// is also used for content that is not RDF in that syntax, such as HTML
// pages without RDFa.
type Correspondent[T any] struct {
	Value   T
	IsTotal bool
}

func total[T any](v T) Correspondent[T]   { return Correspondent[T]{Value: v, IsTotal: true} }
func partial[T any](v T) Correspondent[T] { return Correspondent[T]{Value: v} }

var syntaxToExtension = map[syntax.Syntax]Correspondent[FileExtension]{
	syntax.HTMLRDFa:       total(ExtHTML),
	syntax.JSONLD:         total(ExtJSONLD),
	syntax.N3:             total(ExtN3),
	syntax.NQuads:         total(ExtNQ),
	syntax.NTriples:       total(ExtNT),
	syntax.OWL2Manchester: total(ExtOMN),
	syntax.OWL2XML:        total(ExtOWL),
	syntax.RDFXML:         total(ExtRDF),
	syntax.TriG:           total(ExtTriG),
	syntax.Turtle:         total(ExtTTL),
	syntax.XHTMLRDFa:      total(ExtXHTML),
}

var extensionToSyntax = map[FileExtension]Correspondent[syntax.Syntax]{
	ExtHTML:     partial(syntax.HTMLRDFa),
	ExtJSONLD:   total(syntax.JSONLD),
	ExtJSON:     partial(syntax.JSONLD),
	ExtN3:       total(syntax.N3),
	ExtNQ:       total(syntax.NQuads),
	ExtNQuads:   total(syntax.NQuads),
	ExtNT:       total(syntax.NTriples),
	ExtNTriples: total(syntax.NTriples),
	ExtOMN:      total(syntax.OWL2Manchester),
	ExtOWL:      total(syntax.OWL2XML),
	ExtOWX:      total(syntax.OWL2XML),
	ExtRDF:      total(syntax.RDFXML),
	ExtRDFXML:   total(syntax.RDFXML),
	ExtTriG:     total(syntax.TriG),
	ExtTTL:      total(syntax.Turtle),
	ExtTurtle:   total(syntax.Turtle),
	ExtXHTML:    partial(syntax.XHTMLRDFa),
}

var syntaxToMediaType = map[syntax.Syntax]Correspondent[MediaType]{
	syntax.HTMLRDFa:       total(TextHTML),
	syntax.JSONLD:         total(ApplicationJSONLD),
	syntax.N3:             total(TextN3),
	syntax.NQuads:         total(ApplicationNQuads),
	syntax.NTriples:       total(ApplicationNTriples),
	syntax.OWL2Manchester: total(TextOWLManchester),
	syntax.OWL2XML:        total(ApplicationOWLXML),
	syntax.RDFXML:         total(ApplicationRDFXML),
	syntax.TriG:           total(ApplicationTriG),
	syntax.Turtle:         total(TextTurtle),
	syntax.XHTMLRDFa:      total(ApplicationXHTMLXML),
}

// Keyed by MediaType.Essence.
var mediaTypeToSyntax = map[string]Correspondent[syntax.Syntax]{
	TextHTML.Essence():            partial(syntax.HTMLRDFa),
	ApplicationJSONLD.Essence():   total(syntax.JSONLD),
	TextN3.Essence():              total(syntax.N3),
	ApplicationNQuads.Essence():   total(syntax.NQuads),
	ApplicationNTriples.Essence(): total(syntax.NTriples),
	TextOWLManchester.Essence():   total(syntax.OWL2Manchester),
	ApplicationOWLXML.Essence():   total(syntax.OWL2XML),
	ApplicationRDFXML.Essence():   total(syntax.RDFXML),
	ApplicationTriG.Essence():     total(syntax.TriG),
	TextTurtle.Essence():          total(syntax.Turtle),
	ApplicationXHTMLXML.Essence(): partial(syntax.XHTMLRDFa),
}
