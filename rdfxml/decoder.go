// Package rdfxml reads and writes RDF/XML.
//
// The decoder streams the document with encoding/xml and keeps at most one
// top-level node element worth of triples in memory.
package rdfxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

const (
	rdfNS   = rdf.RDFNS
	xmlNS   = "http://www.w3.org/XML/1998/namespace"
	xmlnsNS = "xmlns"
)

// DecodeOptions configures a Decoder.
type DecodeOptions struct {
	// BaseIRI resolves relative IRIs until an xml:base attribute overrides
	// it.
	BaseIRI string
}

type docState int

const (
	stateProlog docState = iota
	stateInRDF
	stateEpilog
)

// scope is the xml:base and xml:lang in effect for an element.
type scope struct {
	base string
	lang string
}

func (s scope) enter(attrs []xml.Attr) scope {
	for _, a := range attrs {
		if a.Name.Space != xmlNS {
			continue
		}
		switch a.Name.Local {
		case "base":
			s.base = rdf.ResolveIRI(s.base, a.Value)
		case "lang":
			s.lang = a.Value
		}
	}
	return s
}

// Decoder reads triples from an RDF/XML document.
type Decoder struct {
	xml    *xml.Decoder
	bnodes *rdf.BlankNodeGenerator
	ids    map[string]struct{}
	root   scope
	state  docState
	queue  []rdf.Triple
	err    error
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, opts DecodeOptions) *Decoder {
	return &Decoder{
		xml:    xml.NewDecoder(r),
		bnodes: rdf.NewBlankNodeGenerator(),
		ids:    map[string]struct{}{},
		root:   scope{base: opts.BaseIRI},
	}
}

// Next returns the next triple, or io.EOF at the end of the document. The
// first error is returned by every later call. Failures of the underlying
// reader are returned unchanged; everything else is an *Error.
func (d *Decoder) Next() (rdf.Triple, error) {
	for len(d.queue) == 0 {
		if d.err != nil {
			return rdf.Triple{}, d.err
		}
		if err := d.step(); err != nil {
			d.queue = nil
			d.err = d.wrap(err)
		}
	}
	t := d.queue[0]
	d.queue = d.queue[1:]
	return t, nil
}

func (d *Decoder) wrap(err error) error {
	var (
		perr *Error
		serr *xml.SyntaxError
	)
	switch {
	case err == io.EOF, errors.As(err, &perr):
		return err
	case errors.As(err, &serr):
		return &Error{Line: serr.Line, Err: errors.New(serr.Msg)}
	}
	return err
}

func (d *Decoder) errorf(format string, args ...any) error {
	line, col := d.xml.InputPos()
	return &Error{Line: line, Column: col, Err: fmt.Errorf(format, args...)}
}

func (d *Decoder) emit(s rdf.Term, p string, o rdf.Term) {
	d.queue = append(d.queue, rdf.Triple{S: s, P: rdf.IRI{Value: p}, O: o})
}

func (d *Decoder) resolve(sc scope, ref string) string {
	return rdf.ResolveIRI(sc.base, ref)
}

// token reads the next token inside an element, where the end of input is
// an error.
func (d *Decoder) token() (xml.Token, error) {
	tok, err := d.xml.Token()
	if err == io.EOF {
		return nil, d.errorf("unexpected end of document")
	}
	return tok, err
}

// step consumes one token at document level, decoding a whole node element
// when one starts.
func (d *Decoder) step() error {
	tok, err := d.xml.Token()
	if err != nil {
		if err == io.EOF && d.state == stateInRDF {
			return d.errorf("unexpected end of document")
		}
		return err
	}
	switch t := tok.(type) {
	case xml.StartElement:
		switch d.state {
		case stateProlog:
			if t.Name.Space == rdfNS && t.Name.Local == "RDF" {
				d.root = d.root.enter(t.Attr)
				d.state = stateInRDF
				return nil
			}
			d.state = stateEpilog
			_, err := d.nodeElement(t, d.root)
			return err
		case stateInRDF:
			_, err := d.nodeElement(t, d.root)
			return err
		default:
			return d.errorf("unexpected element %s after the document element", t.Name.Local)
		}
	case xml.EndElement:
		d.state = stateEpilog
	case xml.CharData:
		if d.state == stateInRDF && !isBlank(t) {
			return d.errorf("unexpected text inside rdf:RDF")
		}
	}
	return nil
}

// nodeElement decodes a node element whose start tag has been read,
// through its end tag, and returns the node it describes.
func (d *Decoder) nodeElement(start xml.StartElement, parent scope) (rdf.Term, error) {
	sc := parent.enter(start.Attr)
	if start.Name.Space == "" {
		return nil, d.errorf("element %s has no namespace", start.Name.Local)
	}
	if start.Name.Space == rdfNS && !allowedNodeElement(start.Name.Local) {
		return nil, d.errorf("rdf:%s is not allowed as a node element", start.Name.Local)
	}
	subject, err := d.subject(start.Attr, sc)
	if err != nil {
		return nil, err
	}
	if start.Name.Space != rdfNS || start.Name.Local != "Description" {
		d.emit(subject, rdf.RDFType, rdf.IRI{Value: start.Name.Space + start.Name.Local})
	}
	for _, a := range start.Attr {
		if isSyntaxAttr(a) {
			continue
		}
		if a.Name.Space == rdfNS && (a.Name.Local == "resource" || a.Name.Local == "datatype" || a.Name.Local == "parseType") {
			return nil, d.errorf("rdf:%s is not allowed on a node element", a.Name.Local)
		}
		if err := d.propertyAttr(subject, a, sc); err != nil {
			return nil, err
		}
	}
	return subject, d.propertyElements(subject, sc)
}

func allowedNodeElement(local string) bool {
	switch local {
	case "RDF", "ID", "about", "bagID", "parseType", "resource", "nodeID", "li", "aboutEach", "aboutEachPrefix":
		return false
	}
	return true
}

func (d *Decoder) subject(attrs []xml.Attr, sc scope) (rdf.Term, error) {
	var subject rdf.Term
	for _, a := range attrs {
		if a.Name.Space != rdfNS {
			continue
		}
		var next rdf.Term
		switch a.Name.Local {
		case "about":
			next = rdf.IRI{Value: d.resolve(sc, a.Value)}
		case "ID":
			iri, err := d.idIRI(sc, a.Value)
			if err != nil {
				return nil, err
			}
			next = iri
		case "nodeID":
			if !isNCName(a.Value) {
				return nil, d.errorf("invalid rdf:nodeID %q", a.Value)
			}
			next = rdf.BlankNode{ID: a.Value}
		default:
			continue
		}
		if subject != nil {
			return nil, d.errorf("a node element takes only one of rdf:about, rdf:ID or rdf:nodeID")
		}
		subject = next
	}
	if subject == nil {
		subject = d.bnodes.Next()
	}
	return subject, nil
}

// idIRI resolves an rdf:ID value. Each resolved IRI may be declared once
// per document.
func (d *Decoder) idIRI(sc scope, id string) (rdf.IRI, error) {
	if !isNCName(id) {
		return rdf.IRI{}, d.errorf("invalid rdf:ID %q", id)
	}
	iri := d.resolve(sc, "#"+id)
	if _, dup := d.ids[iri]; dup {
		return rdf.IRI{}, d.errorf("rdf:ID %q declared twice", id)
	}
	d.ids[iri] = struct{}{}
	return rdf.IRI{Value: iri}, nil
}

func isSyntaxAttr(a xml.Attr) bool {
	switch a.Name.Space {
	case xmlnsNS, xmlNS:
		return true
	case "":
		return a.Name.Local == "xmlns"
	case rdfNS:
		switch a.Name.Local {
		case "about", "ID", "nodeID":
			return true
		}
	}
	return false
}

// propertyAttr emits the triple of a property attribute. rdf:type values
// are IRIs; all others are literals in the current language.
func (d *Decoder) propertyAttr(subject rdf.Term, a xml.Attr, sc scope) error {
	if a.Name.Space == "" {
		return d.errorf("attribute %s has no namespace", a.Name.Local)
	}
	if a.Name.Space == rdfNS {
		switch a.Name.Local {
		case "li", "Description", "RDF", "bagID", "aboutEach", "aboutEachPrefix":
			return d.errorf("rdf:%s is not allowed as a property attribute", a.Name.Local)
		}
	}
	pred := a.Name.Space + a.Name.Local
	if pred == rdf.RDFType {
		d.emit(subject, pred, rdf.IRI{Value: d.resolve(sc, a.Value)})
		return nil
	}
	d.emit(subject, pred, rdf.Literal{Lexical: a.Value, Lang: sc.lang})
	return nil
}

// propertyElements decodes the property elements of subject through the
// end tag of the enclosing element.
func (d *Decoder) propertyElements(subject rdf.Term, sc scope) error {
	li := 0
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.propertyElement(t, subject, sc, &li); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if !isBlank(t) {
				return d.errorf("unexpected text between property elements")
			}
		}
	}
}

// propAttrs are the RDF attributes of a property element.
type propAttrs struct {
	id        string
	parseType string
	resource  string
	nodeID    string
	datatype  string
	props     []xml.Attr

	hasID, hasParseType, hasResource, hasNodeID bool
}

func (d *Decoder) readPropAttrs(attrs []xml.Attr) (propAttrs, error) {
	var pa propAttrs
	for _, a := range attrs {
		switch a.Name.Space {
		case xmlnsNS, xmlNS:
			continue
		case "":
			if a.Name.Local == "xmlns" {
				continue
			}
		case rdfNS:
			switch a.Name.Local {
			case "ID":
				pa.id, pa.hasID = a.Value, true
				continue
			case "parseType":
				pa.parseType, pa.hasParseType = a.Value, true
				continue
			case "resource":
				pa.resource, pa.hasResource = a.Value, true
				continue
			case "nodeID":
				if !isNCName(a.Value) {
					return pa, d.errorf("invalid rdf:nodeID %q", a.Value)
				}
				pa.nodeID, pa.hasNodeID = a.Value, true
				continue
			case "datatype":
				pa.datatype = a.Value
				continue
			case "about":
				return pa, d.errorf("rdf:about is not allowed on a property element")
			}
		}
		pa.props = append(pa.props, a)
	}
	switch {
	case pa.hasResource && pa.hasNodeID:
		return pa, d.errorf("rdf:resource and rdf:nodeID are mutually exclusive")
	case pa.hasParseType && (pa.hasResource || pa.hasNodeID || pa.datatype != "" || len(pa.props) > 0):
		return pa, d.errorf("rdf:parseType cannot be combined with other property attributes")
	case pa.datatype != "" && (pa.hasResource || pa.hasNodeID || len(pa.props) > 0):
		return pa, d.errorf("rdf:datatype cannot be combined with rdf:resource, rdf:nodeID or property attributes")
	}
	return pa, nil
}

func (d *Decoder) propertyElement(start xml.StartElement, subject rdf.Term, parent scope, li *int) error {
	sc := parent.enter(start.Attr)
	pred, err := d.predicate(start.Name, li)
	if err != nil {
		return err
	}
	pa, err := d.readPropAttrs(start.Attr)
	if err != nil {
		return err
	}
	var object rdf.Term
	switch {
	case !pa.hasParseType:
		object, err = d.propertyValue(pa, sc)
	case pa.parseType == "Resource":
		node := d.bnodes.Next()
		object, err = node, d.propertyElements(node, sc)
	case pa.parseType == "Collection":
		object, err = d.collection(sc)
	default:
		object, err = d.xmlLiteral()
	}
	if err != nil {
		return err
	}
	d.emit(subject, pred, object)
	if pa.hasID {
		stmt, err := d.idIRI(sc, pa.id)
		if err != nil {
			return err
		}
		d.emit(stmt, rdf.RDFType, rdf.IRI{Value: rdf.RDFStatement})
		d.emit(stmt, rdf.RDFSubject, subject)
		d.emit(stmt, rdf.RDFPredicate, rdf.IRI{Value: pred})
		d.emit(stmt, rdf.RDFObject, object)
	}
	return nil
}

// predicate maps a property element name to its IRI; rdf:li takes the
// next container membership property.
func (d *Decoder) predicate(name xml.Name, li *int) (string, error) {
	if name.Space == "" {
		return "", d.errorf("element %s has no namespace", name.Local)
	}
	if name.Space == rdfNS {
		switch name.Local {
		case "li":
			*li++
			return rdfNS + "_" + strconv.Itoa(*li), nil
		case "Description", "RDF", "ID", "about", "bagID", "parseType", "resource", "nodeID", "aboutEach", "aboutEachPrefix":
			return "", d.errorf("rdf:%s is not allowed as a property element", name.Local)
		}
	}
	return name.Space + name.Local, nil
}

// propertyValue decodes the content of a property element without
// rdf:parseType: a literal, a nested node element, or an empty element
// naming its object through attributes.
func (d *Decoder) propertyValue(pa propAttrs, sc scope) (rdf.Term, error) {
	var text bytes.Buffer
	for {
		tok, err := d.token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if !isBlank(text.Bytes()) {
				return nil, d.errorf("mixed text and element content")
			}
			if pa.hasResource || pa.hasNodeID || pa.datatype != "" || len(pa.props) > 0 {
				return nil, d.errorf("a property element with attributes cannot contain a node element")
			}
			object, err := d.nodeElement(t, sc)
			if err != nil {
				return nil, err
			}
			return object, d.closeProperty()
		case xml.EndElement:
			return d.emptyOrLiteral(pa, text.String(), sc)
		}
	}
}

func (d *Decoder) emptyOrLiteral(pa propAttrs, text string, sc scope) (rdf.Term, error) {
	if pa.datatype != "" {
		return rdf.Literal{Lexical: text, Datatype: rdf.IRI{Value: d.resolve(sc, pa.datatype)}}, nil
	}
	if !pa.hasResource && !pa.hasNodeID && len(pa.props) == 0 {
		return rdf.Literal{Lexical: text, Lang: sc.lang}, nil
	}
	if !isBlank([]byte(text)) {
		return nil, d.errorf("a property element with rdf:resource, rdf:nodeID or property attributes must be empty")
	}
	var object rdf.Term
	switch {
	case pa.hasResource:
		object = rdf.IRI{Value: d.resolve(sc, pa.resource)}
	case pa.hasNodeID:
		object = rdf.BlankNode{ID: pa.nodeID}
	default:
		object = d.bnodes.Next()
	}
	for _, a := range pa.props {
		if err := d.propertyAttr(object, a, sc); err != nil {
			return nil, err
		}
	}
	return object, nil
}

// closeProperty reads up to the end tag of a property element that held a
// node element.
func (d *Decoder) closeProperty() error {
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			return d.errorf("a property element holds at most one node element, found %s", t.Name.Local)
		case xml.CharData:
			if !isBlank(t) {
				return d.errorf("mixed text and element content")
			}
		}
	}
}

// collection decodes rdf:parseType="Collection" content into an RDF list
// and returns its head.
func (d *Decoder) collection(sc scope) (rdf.Term, error) {
	var items []rdf.Term
	for {
		tok, err := d.token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			item, err := d.nodeElement(t, sc)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case xml.EndElement:
			var head rdf.Term = rdf.IRI{Value: rdf.RDFNil}
			for i := len(items) - 1; i >= 0; i-- {
				node := d.bnodes.Next()
				d.emit(node, rdf.RDFFirst, items[i])
				d.emit(node, rdf.RDFRest, head)
				head = node
			}
			return head, nil
		case xml.CharData:
			if !isBlank(t) {
				return nil, d.errorf("unexpected text in a collection")
			}
		}
	}
}

// xmlLiteral re-encodes the content of an rdf:parseType="Literal" element.
func (d *Decoder) xmlLiteral() (rdf.Term, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	depth := 0
	for {
		tok, err := d.token()
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				if err := enc.Flush(); err != nil {
					return nil, err
				}
				return rdf.Literal{Lexical: buf.String(), Datatype: rdf.IRI{Value: rdf.RDFXMLLiteral}}, nil
			}
			depth--
		case xml.ProcInst, xml.Directive:
			continue
		}
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return nil, d.errorf("literal XML content: %v", err)
		}
	}
}

func isBlank(b []byte) bool {
	return len(bytes.TrimLeft(b, " \t\r\n")) == 0
}
