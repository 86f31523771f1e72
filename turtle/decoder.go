package turtle

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

type dialect int

const (
	dialectNTriples dialect = iota
	dialectNQuads
	dialectTurtle
	dialectTriG
)

func (d dialect) String() string {
	switch d {
	case dialectNTriples:
		return "ntriples"
	case dialectNQuads:
		return "nquads"
	case dialectTurtle:
		return "turtle"
	default:
		return "trig"
	}
}

func (d dialect) lineBased() bool { return d == dialectNTriples || d == dialectNQuads }

// decoder is the shared parser behind every public decoder. It parses one
// statement at a time and queues the quads it produces.
type decoder struct {
	lex     *lexer
	dialect dialect
	opts    DecodeOptions

	tok    token
	hasTok bool
	last   token // last consumed token of the current statement

	prefixes map[string]string
	base     string
	bnodes   *rdf.BlankNodeGenerator

	graph   rdf.Term
	inBlock bool

	pending []rdf.Quad
	err     error
}

func newDecoder(r io.Reader, d dialect, opts DecodeOptions) *decoder {
	dec := &decoder{
		lex:      newLexer(r),
		dialect:  d,
		opts:     opts,
		prefixes: map[string]string{},
		bnodes:   rdf.NewBlankNodeGenerator(),
	}
	if !d.lineBased() {
		dec.base = opts.BaseIRI
	}
	dec.lex.limit = opts.MaxStatementBytes
	return dec
}

func (d *decoder) next() (rdf.Quad, error) {
	for {
		if len(d.pending) > 0 {
			q := d.pending[0]
			d.pending = d.pending[1:]
			return q, nil
		}
		if d.err != nil {
			return rdf.Quad{}, d.err
		}
		d.pending = d.pending[:0]
		d.lex.mark = d.lex.consumed
		d.last = token{}
		err := d.parseStatement()
		if err == nil {
			continue
		}
		d.pending = nil
		if err == io.EOF {
			d.err = io.EOF
			return rdf.Quad{}, io.EOF
		}
		perr := d.wrap(err)
		// Nothing follows an error raised at end of input, so there is no
		// statement to resume at.
		atEOF := d.hasTok && d.tok.kind == tokEOF
		var serr *Error
		if d.opts.Recover && !atEOF && errors.As(perr, &serr) && !errors.Is(perr, ErrStatementTooLong) {
			serr.Recoverable = true
			d.recover(serr.Line)
			return rdf.Quad{}, serr
		}
		d.err = perr
		return rdf.Quad{}, perr
	}
}

// wrap converts positioned failures to *Error. Read failures of the
// underlying reader pass through unchanged.
func (d *decoder) wrap(err error) error {
	var serr *syntaxError
	switch {
	case errors.As(err, &serr):
		return &Error{Syntax: d.dialect.String(), Line: serr.line, Column: serr.col, Excerpt: serr.excerpt, Err: serr.err}
	case errors.Is(err, ErrStatementTooLong):
		return &Error{Syntax: d.dialect.String(), Line: d.lex.line, Column: d.lex.col + 1, Excerpt: d.lex.lineText.String(), Err: ErrStatementTooLong}
	default:
		return err
	}
}

// recover skips the rest of a malformed statement. errLine is the line the
// error was reported on.
func (d *decoder) recover(errLine int) {
	if d.hasTok {
		switch {
		case d.dialect.lineBased() && d.tok.line > errLine:
			return
		case d.tok.kind == tokRBrace && d.inBlock:
			return
		case d.tok.kind == tokDot && !d.dialect.lineBased():
			d.hasTok = false
			return
		}
		d.hasTok = false
	} else if d.last.kind == tokDot && !d.dialect.lineBased() {
		return
	}
	if d.dialect.lineBased() && d.lex.line > errLine {
		return
	}
	for {
		r := d.lex.peek()
		switch {
		case r == eof:
			return
		case d.dialect.lineBased():
			d.lex.advance()
			if r == '\n' {
				return
			}
		case r == '}' && d.inBlock:
			return
		case r == '.':
			d.lex.advance()
			if n := d.lex.peek(); n == eof || n == ' ' || n == '\t' || n == '\r' || n == '\n' || n == '#' {
				return
			}
		default:
			d.lex.advance()
		}
	}
}

func (d *decoder) peek() (token, error) {
	if !d.hasTok {
		tok, err := d.lex.next()
		if err != nil {
			return token{}, err
		}
		d.tok, d.hasTok = tok, true
	}
	return d.tok, nil
}

func (d *decoder) nextTok() (token, error) {
	tok, err := d.peek()
	if err != nil {
		return token{}, err
	}
	d.hasTok = false
	d.last = tok
	return tok, nil
}

func (d *decoder) expect(kind tokenKind) (token, error) {
	tok, err := d.nextTok()
	if err != nil {
		return token{}, err
	}
	if tok.kind != kind {
		return token{}, d.unexpected(tok, kind.String())
	}
	return tok, nil
}

func (d *decoder) unexpected(tok token, want string) error {
	found := tok.kind.String()
	if tok.kind == tokWord {
		found = fmt.Sprintf("%q", tok.text)
	}
	return d.lex.tokenErrorf(tok, "expected %s, found %s", want, found)
}

func (d *decoder) emit(s rdf.Term, p rdf.IRI, o rdf.Term) {
	d.pending = append(d.pending, rdf.Quad{S: s, P: p, O: o, G: d.graph})
}

func (d *decoder) parseStatement() error {
	if d.dialect.lineBased() {
		return d.parseLineStatement()
	}
	tok, err := d.peek()
	if err != nil {
		return err
	}
	if tok.kind == tokEOF {
		if d.inBlock {
			return d.lex.tokenErrorf(tok, "unterminated graph block")
		}
		return io.EOF
	}
	if isDirective(tok) {
		if d.inBlock {
			return d.lex.tokenErrorf(tok, "directives are not allowed inside a graph block")
		}
		return d.parseDirective()
	}
	if d.inBlock {
		if tok.kind == tokRBrace {
			d.hasTok = false
			d.inBlock, d.graph = false, nil
			return nil
		}
		if err := d.parseTriples(); err != nil {
			return err
		}
		tok, err := d.peek()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokDot:
			d.hasTok = false
		case tokRBrace:
		default:
			return d.unexpected(tok, "'.' or '}'")
		}
		return nil
	}
	if d.dialect == dialectTriG {
		switch {
		case tok.kind == tokLBrace:
			d.hasTok = false
			d.inBlock, d.graph = true, nil
			return nil
		case tok.kind == tokWord && strings.EqualFold(tok.text, "GRAPH"):
			d.hasTok = false
			label, err := d.parseGraphLabel()
			if err != nil {
				return err
			}
			if _, err := d.expect(tokLBrace); err != nil {
				return err
			}
			d.inBlock, d.graph = true, label
			return nil
		}
	}
	if err := d.parseTriples(); err != nil {
		return err
	}
	if d.inBlock {
		// the subject turned out to be a graph label
		return nil
	}
	_, err = d.expect(tokDot)
	return err
}

func isDirective(tok token) bool {
	switch tok.kind {
	case tokLangTag:
		return tok.text == "prefix" || tok.text == "base" || tok.text == "version"
	case tokWord:
		return strings.EqualFold(tok.text, "PREFIX") || strings.EqualFold(tok.text, "BASE") || strings.EqualFold(tok.text, "VERSION")
	}
	return false
}

func (d *decoder) parseDirective() error {
	tok, _ := d.nextTok()
	name := strings.ToLower(tok.text)
	switch name {
	case "prefix":
		ns, err := d.expect(tokPName)
		if err != nil {
			return err
		}
		if ns.local != "" {
			return d.lex.tokenErrorf(ns, "expected prefix declaration, found %s:%s", ns.text, ns.local)
		}
		iri, err := d.expect(tokIRI)
		if err != nil {
			return err
		}
		d.prefixes[ns.text] = d.resolve(iri.text)
	case "base":
		iri, err := d.expect(tokIRI)
		if err != nil {
			return err
		}
		d.base = d.resolve(iri.text)
	case "version":
		if _, err := d.expect(tokString); err != nil {
			return err
		}
	}
	if tok.kind == tokLangTag {
		_, err := d.expect(tokDot)
		return err
	}
	return nil
}

func (d *decoder) resolve(iri string) string {
	if d.base == "" {
		return iri
	}
	return rdf.ResolveIRI(d.base, iri)
}

func (d *decoder) parseGraphLabel() (rdf.Term, error) {
	tok, err := d.nextTok()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIRI:
		return rdf.IRI{Value: d.resolve(tok.text)}, nil
	case tokPName:
		return d.expandPName(tok)
	case tokBNode:
		return rdf.BlankNode{ID: tok.text}, nil
	case tokLBracket:
		if _, err := d.expect(tokRBracket); err != nil {
			return nil, err
		}
		return d.bnodes.Next(), nil
	}
	return nil, d.unexpected(tok, "graph name")
}

func (d *decoder) expandPName(tok token) (rdf.IRI, error) {
	ns, ok := d.prefixes[tok.text]
	if !ok {
		return rdf.IRI{}, d.lex.tokenErrorf(tok, "%w %q", ErrUndefinedPrefix, tok.text)
	}
	return rdf.IRI{Value: ns + tok.local}, nil
}

type subjectKind int

const (
	subjectPlain subjectKind = iota
	subjectAnon
	subjectPropertyList
	subjectCollection
)

func (d *decoder) parseTriples() error {
	subject, kind, err := d.parseSubject()
	if err != nil {
		return err
	}
	tok, err := d.peek()
	if err != nil {
		return err
	}
	if d.dialect == dialectTriG && !d.inBlock && tok.kind == tokLBrace {
		switch subject.(type) {
		case rdf.IRI, rdf.BlankNode:
			if kind == subjectPlain || kind == subjectAnon {
				d.hasTok = false
				d.inBlock, d.graph = true, subject
				return nil
			}
		}
	}
	if kind == subjectPropertyList && (tok.kind == tokDot || (d.inBlock && tok.kind == tokRBrace)) {
		return nil
	}
	return d.parsePredicateObjectList(subject)
}

func (d *decoder) parseSubject() (rdf.Term, subjectKind, error) {
	tok, err := d.nextTok()
	if err != nil {
		return nil, 0, err
	}
	switch tok.kind {
	case tokIRI:
		return rdf.IRI{Value: d.resolve(tok.text)}, subjectPlain, nil
	case tokPName:
		iri, err := d.expandPName(tok)
		return iri, subjectPlain, err
	case tokBNode:
		return rdf.BlankNode{ID: tok.text}, subjectPlain, nil
	case tokLBracket:
		return d.parseBlankNodePropertyList()
	case tokLParen:
		list, err := d.parseCollection()
		return list, subjectCollection, err
	case tokLTriple:
		t, err := d.parseQuotedTriple()
		return t, subjectPlain, err
	}
	return nil, 0, d.unexpected(tok, "subject")
}

// parseBlankNodePropertyList parses after the opening '['.
func (d *decoder) parseBlankNodePropertyList() (rdf.Term, subjectKind, error) {
	node := d.bnodes.Next()
	tok, err := d.peek()
	if err != nil {
		return nil, 0, err
	}
	if tok.kind == tokRBracket {
		d.hasTok = false
		return node, subjectAnon, nil
	}
	if err := d.parsePredicateObjectList(node); err != nil {
		return nil, 0, err
	}
	if _, err := d.expect(tokRBracket); err != nil {
		return nil, 0, err
	}
	return node, subjectPropertyList, nil
}

func (d *decoder) parsePredicateObjectList(subject rdf.Term) error {
	for {
		verb, err := d.parseVerb()
		if err != nil {
			return err
		}
		if err := d.parseObjectList(subject, verb); err != nil {
			return err
		}
		tok, err := d.peek()
		if err != nil {
			return err
		}
		if tok.kind != tokSemicolon {
			return nil
		}
		for tok.kind == tokSemicolon {
			d.hasTok = false
			if tok, err = d.peek(); err != nil {
				return err
			}
		}
		if !startsVerb(tok) {
			return nil
		}
	}
}

func startsVerb(tok token) bool {
	return tok.kind == tokIRI || tok.kind == tokPName || (tok.kind == tokWord && tok.text == "a")
}

func (d *decoder) parseVerb() (rdf.IRI, error) {
	tok, err := d.nextTok()
	if err != nil {
		return rdf.IRI{}, err
	}
	switch {
	case tok.kind == tokIRI:
		return rdf.IRI{Value: d.resolve(tok.text)}, nil
	case tok.kind == tokPName:
		return d.expandPName(tok)
	case tok.kind == tokWord && tok.text == "a":
		return rdf.IRI{Value: rdf.RDFType}, nil
	}
	return rdf.IRI{}, d.unexpected(tok, "predicate")
}

func (d *decoder) parseObjectList(subject rdf.Term, verb rdf.IRI) error {
	for {
		object, err := d.parseObject()
		if err != nil {
			return err
		}
		d.emit(subject, verb, object)
		tok, err := d.peek()
		if err != nil {
			return err
		}
		if tok.kind != tokComma {
			return nil
		}
		d.hasTok = false
	}
}

func (d *decoder) parseObject() (rdf.Term, error) {
	tok, err := d.nextTok()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIRI:
		return rdf.IRI{Value: d.resolve(tok.text)}, nil
	case tokPName:
		return d.expandPName(tok)
	case tokBNode:
		return rdf.BlankNode{ID: tok.text}, nil
	case tokLBracket:
		node, _, err := d.parseBlankNodePropertyList()
		return node, err
	case tokLParen:
		return d.parseCollection()
	case tokLTriple:
		return d.parseQuotedTriple()
	case tokString:
		return d.parseLiteralTail(tok.text)
	case tokInteger:
		return rdf.Literal{Lexical: tok.text, Datatype: rdf.IRI{Value: rdf.XSDInteger}}, nil
	case tokDecimal:
		return rdf.Literal{Lexical: tok.text, Datatype: rdf.IRI{Value: rdf.XSDDecimal}}, nil
	case tokDouble:
		return rdf.Literal{Lexical: tok.text, Datatype: rdf.IRI{Value: rdf.XSDDouble}}, nil
	case tokWord:
		if tok.text == "true" || tok.text == "false" {
			return rdf.Literal{Lexical: tok.text, Datatype: rdf.IRI{Value: rdf.XSDBoolean}}, nil
		}
	}
	return nil, d.unexpected(tok, "object")
}

func (d *decoder) parseLiteralTail(lexical string) (rdf.Term, error) {
	tok, err := d.peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokLangTag:
		d.hasTok = false
		return rdf.Literal{Lexical: lexical, Lang: tok.text}, nil
	case tokDatatype:
		d.hasTok = false
		dt, err := d.nextTok()
		if err != nil {
			return nil, err
		}
		switch {
		case dt.kind == tokIRI && d.dialect.lineBased():
			if !rdf.IsAbsoluteIRI(dt.text) {
				return nil, d.lex.tokenErrorf(dt, "relative IRI <%s> not allowed", dt.text)
			}
			return rdf.Literal{Lexical: lexical, Datatype: rdf.IRI{Value: dt.text}}, nil
		case dt.kind == tokIRI:
			return rdf.Literal{Lexical: lexical, Datatype: rdf.IRI{Value: d.resolve(dt.text)}}, nil
		case dt.kind == tokPName && !d.dialect.lineBased():
			iri, err := d.expandPName(dt)
			return rdf.Literal{Lexical: lexical, Datatype: iri}, err
		}
		return nil, d.unexpected(dt, "datatype IRI")
	}
	return rdf.Literal{Lexical: lexical}, nil
}

// parseCollection parses after the opening '('.
func (d *decoder) parseCollection() (rdf.Term, error) {
	var head, cur rdf.Term
	first := rdf.IRI{Value: rdf.RDFFirst}
	rest := rdf.IRI{Value: rdf.RDFRest}
	for {
		tok, err := d.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokRParen {
			d.hasTok = false
			break
		}
		if tok.kind == tokEOF {
			return nil, d.unexpected(tok, "')'")
		}
		node := d.bnodes.Next()
		if cur == nil {
			head = node
		} else {
			d.emit(cur, rest, node)
		}
		cur = node
		item, err := d.parseObject()
		if err != nil {
			return nil, err
		}
		d.emit(node, first, item)
	}
	nilIRI := rdf.IRI{Value: rdf.RDFNil}
	if cur == nil {
		return nilIRI, nil
	}
	d.emit(cur, rest, nilIRI)
	return head, nil
}

// parseQuotedTriple parses after the opening '<<'.
func (d *decoder) parseQuotedTriple() (rdf.Term, error) {
	subject, err := d.parseQuotedTerm(false)
	if err != nil {
		return nil, err
	}
	var predicate rdf.IRI
	if d.dialect.lineBased() {
		tok, err := d.expect(tokIRI)
		if err != nil {
			return nil, err
		}
		if predicate, err = d.absoluteIRI(tok); err != nil {
			return nil, err
		}
	} else if predicate, err = d.parseVerb(); err != nil {
		return nil, err
	}
	object, err := d.parseQuotedTerm(true)
	if err != nil {
		return nil, err
	}
	if _, err := d.expect(tokRTriple); err != nil {
		return nil, err
	}
	return rdf.TripleTerm{S: subject, P: predicate, O: object}, nil
}

func (d *decoder) parseQuotedTerm(object bool) (rdf.Term, error) {
	tok, err := d.peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokLParen:
		return nil, d.lex.tokenErrorf(tok, "collections are not allowed in quoted triples")
	case tokLBracket:
		d.hasTok = false
		if _, err := d.expect(tokRBracket); err != nil {
			return nil, err
		}
		return d.bnodes.Next(), nil
	}
	if d.dialect.lineBased() {
		return d.parseLineTerm(object)
	}
	if object {
		return d.parseObject()
	}
	t, _, err := d.parseSubject()
	return t, err
}

func (d *decoder) absoluteIRI(tok token) (rdf.IRI, error) {
	if !rdf.IsAbsoluteIRI(tok.text) {
		return rdf.IRI{}, d.lex.tokenErrorf(tok, "relative IRI <%s> not allowed", tok.text)
	}
	return rdf.IRI{Value: tok.text}, nil
}

// parseLineStatement parses one N-Triples or N-Quads statement.
func (d *decoder) parseLineStatement() error {
	tok, err := d.peek()
	if err != nil {
		return err
	}
	if tok.kind == tokEOF {
		return io.EOF
	}
	subject, err := d.parseLineTerm(false)
	if err != nil {
		return err
	}
	tok, err = d.expect(tokIRI)
	if err != nil {
		return err
	}
	predicate, err := d.absoluteIRI(tok)
	if err != nil {
		return err
	}
	object, err := d.parseLineTerm(true)
	if err != nil {
		return err
	}
	var graph rdf.Term
	if d.dialect == dialectNQuads {
		tok, err := d.peek()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokIRI:
			d.hasTok = false
			if graph, err = d.absoluteIRI(tok); err != nil {
				return err
			}
		case tokBNode:
			d.hasTok = false
			graph = rdf.BlankNode{ID: tok.text}
		}
	}
	if _, err := d.expect(tokDot); err != nil {
		return err
	}
	d.pending = append(d.pending, rdf.Quad{S: subject, P: predicate, O: object, G: graph})
	return nil
}

func (d *decoder) parseLineTerm(object bool) (rdf.Term, error) {
	tok, err := d.nextTok()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIRI:
		return d.absoluteIRI(tok)
	case tokBNode:
		return rdf.BlankNode{ID: tok.text}, nil
	case tokLTriple:
		return d.parseQuotedTriple()
	case tokString:
		if object {
			return d.parseLiteralTail(tok.text)
		}
	}
	if object {
		return nil, d.unexpected(tok, "object")
	}
	return nil, d.unexpected(tok, "subject")
}
