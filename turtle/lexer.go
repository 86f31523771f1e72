package turtle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI
	tokPName
	tokBNode
	tokString
	tokLangTag
	tokInteger
	tokDecimal
	tokDouble
	tokWord
	tokDot
	tokComma
	tokSemicolon
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokLTriple
	tokRTriple
	tokDatatype
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIRI:
		return "IRI"
	case tokPName:
		return "prefixed name"
	case tokBNode:
		return "blank node"
	case tokString:
		return "string"
	case tokLangTag:
		return "language tag"
	case tokInteger, tokDecimal, tokDouble:
		return "number"
	case tokWord:
		return "keyword"
	case tokDot:
		return "'.'"
	case tokComma:
		return "','"
	case tokSemicolon:
		return "';'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLTriple:
		return "'<<'"
	case tokRTriple:
		return "'>>'"
	case tokDatatype:
		return "'^^'"
	default:
		return "unknown token"
	}
}

type token struct {
	kind  tokenKind
	text  string // IRI, label, string value, tag, number or keyword
	local string // local part of a prefixed name; text holds the prefix
	line  int
	col   int
}

const eof = -1

// lexer turns a rune stream into tokens. It keeps a small lookahead
// buffer so the reader is never consumed further than one token plus a few
// runes.
type lexer struct {
	reader  *bufio.Reader
	ahead   []rune
	readErr error

	line     int
	col      int
	lineText strings.Builder
	consumed int

	// limit bounds consumed-mark; zero disables it
	limit int
	mark  int

	// position of the token being scanned
	tokLine int
	tokCol  int
}

// syntaxError is a positioned lexical or grammatical error; the decoder
// turns it into *Error.
type syntaxError struct {
	line, col int
	excerpt   string
	err       error
}

func (e *syntaxError) Error() string { return e.err.Error() }

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r), line: 1}
}

func (l *lexer) peekAt(i int) rune {
	for len(l.ahead) <= i {
		if l.readErr != nil {
			return eof
		}
		if l.limit > 0 && l.consumed-l.mark+len(l.ahead) > l.limit {
			l.readErr = ErrStatementTooLong
			return eof
		}
		r, _, err := l.reader.ReadRune()
		if err != nil {
			l.readErr = err
			return eof
		}
		l.ahead = append(l.ahead, r)
	}
	return l.ahead[i]
}

func (l *lexer) peek() rune { return l.peekAt(0) }

func (l *lexer) advance() rune {
	r := l.peek()
	if r == eof {
		return eof
	}
	l.ahead = l.ahead[1:]
	l.consumed += utf8.RuneLen(r)
	if r == '\n' {
		l.line++
		l.col = 0
		l.lineText.Reset()
	} else {
		l.col++
		l.lineText.WriteRune(r)
	}
	return r
}

// ioErr returns the read failure that ended the stream, if any.
func (l *lexer) ioErr() error {
	if l.readErr == nil || l.readErr == io.EOF {
		return nil
	}
	return l.readErr
}

// errorf reports a syntax error at the current position. A read failure
// that cut the token short takes precedence.
func (l *lexer) errorf(format string, args ...any) error {
	if err := l.ioErr(); err != nil {
		return err
	}
	return &syntaxError{line: l.line, col: l.col + 1, excerpt: l.lineText.String(), err: fmt.Errorf(format, args...)}
}

func (l *lexer) tokenErrorf(tok token, format string, args ...any) error {
	if err := l.ioErr(); err != nil {
		return err
	}
	return &syntaxError{line: tok.line, col: tok.col, excerpt: l.lineText.String(), err: fmt.Errorf(format, args...)}
}

func (l *lexer) skipSpaceAndComments() {
	for {
		switch r := l.peek(); r {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for r != '\n' && r != eof {
				l.advance()
				r = l.peek()
			}
		default:
			return
		}
	}
}

// next scans one token. Read failures of the underlying reader are
// returned unwrapped.
func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	l.tokLine, l.tokCol = l.line, l.col+1
	r := l.peek()
	if r == eof {
		if err := l.ioErr(); err != nil {
			return token{}, err
		}
		return l.tok(tokEOF, ""), nil
	}
	switch r {
	case '<':
		if l.peekAt(1) == '<' {
			l.advance()
			l.advance()
			return l.tok(tokLTriple, "<<"), nil
		}
		return l.scanIRI()
	case '>':
		l.advance()
		if l.peek() != '>' {
			return token{}, l.errorf("unexpected '>'")
		}
		l.advance()
		return l.tok(tokRTriple, ">>"), nil
	case '"', '\'':
		return l.scanString()
	case '_':
		return l.scanBlankNode()
	case '@':
		return l.scanLangTag()
	case '^':
		l.advance()
		if l.peek() != '^' {
			return token{}, l.errorf("expected '^^'")
		}
		l.advance()
		return l.tok(tokDatatype, "^^"), nil
	case '.':
		if isDigit(l.peekAt(1)) {
			return l.scanNumber()
		}
		l.advance()
		return l.tok(tokDot, "."), nil
	case ',':
		l.advance()
		return l.tok(tokComma, ","), nil
	case ';':
		l.advance()
		return l.tok(tokSemicolon, ";"), nil
	case '[':
		l.advance()
		return l.tok(tokLBracket, "["), nil
	case ']':
		l.advance()
		return l.tok(tokRBracket, "]"), nil
	case '(':
		l.advance()
		return l.tok(tokLParen, "("), nil
	case ')':
		l.advance()
		return l.tok(tokRParen, ")"), nil
	case '{':
		l.advance()
		return l.tok(tokLBrace, "{"), nil
	case '}':
		l.advance()
		return l.tok(tokRBrace, "}"), nil
	case '+', '-':
		return l.scanNumber()
	}
	if isDigit(r) {
		return l.scanNumber()
	}
	if r == ':' || isPNCharsBase(r) {
		return l.scanName()
	}
	l.advance()
	return token{}, l.errorf("unexpected character %q", r)
}

func (l *lexer) tok(kind tokenKind, text string) token {
	return token{kind: kind, text: text, line: l.tokLine, col: l.tokCol}
}

func (l *lexer) scanIRI() (token, error) {
	l.advance() // '<'
	var b strings.Builder
	for {
		r := l.peek()
		switch {
		case r == eof:
			return token{}, l.errorf("unterminated IRI")
		case r == '>':
			l.advance()
			return l.tok(tokIRI, b.String()), nil
		case r == '\\':
			l.advance()
			u, err := l.scanUChar()
			if err != nil {
				return token{}, err
			}
			b.WriteRune(u)
		case r <= ' ' || strings.ContainsRune("<\"{}|^`", r):
			l.advance()
			return token{}, l.errorf("invalid character %q in IRI", r)
		default:
			b.WriteRune(l.advance())
		}
	}
}

// scanUChar reads the part of a \u or \U escape after the backslash.
func (l *lexer) scanUChar() (rune, error) {
	var n int
	switch l.advance() {
	case 'u':
		n = 4
	case 'U':
		n = 8
	default:
		return 0, l.errorf("invalid escape sequence")
	}
	var hex [8]byte
	for i := 0; i < n; i++ {
		r := l.advance()
		if !isHex(r) {
			return 0, l.errorf("invalid hex digit in escape sequence")
		}
		hex[i] = byte(r)
	}
	cp := decodeUChar(string(hex[:n]))
	if !isValidCodePoint(cp) {
		return 0, l.errorf("invalid code point U+%X", cp)
	}
	return cp, nil
}

func (l *lexer) scanString() (token, error) {
	quote := l.advance()
	long := false
	if l.peek() == quote {
		if l.peekAt(1) != quote {
			l.advance()
			return l.tok(tokString, ""), nil
		}
		l.advance()
		l.advance()
		long = true
	}
	var b strings.Builder
	for {
		r := l.peek()
		switch {
		case r == eof:
			return token{}, l.errorf("unterminated string")
		case r == quote && !long:
			l.advance()
			return l.tok(tokString, b.String()), nil
		case r == quote && l.peekAt(1) == quote && l.peekAt(2) == quote && l.peekAt(3) != quote:
			l.advance()
			l.advance()
			l.advance()
			return l.tok(tokString, b.String()), nil
		case !long && (r == '\n' || r == '\r'):
			return token{}, l.errorf("line break in short string")
		case r == '\\':
			l.advance()
			if err := l.scanStringEscape(&b); err != nil {
				return token{}, err
			}
		default:
			b.WriteRune(l.advance())
		}
	}
}

func (l *lexer) scanStringEscape(b *strings.Builder) error {
	switch r := l.peek(); r {
	case 't':
		b.WriteByte('\t')
	case 'b':
		b.WriteByte('\b')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 'f':
		b.WriteByte('\f')
	case '"', '\'', '\\':
		b.WriteRune(r)
	case 'u', 'U':
		u, err := l.scanUChar()
		if err != nil {
			return err
		}
		b.WriteRune(u)
		return nil
	default:
		l.advance()
		return l.errorf("invalid escape sequence \\%c", r)
	}
	l.advance()
	return nil
}

func (l *lexer) scanBlankNode() (token, error) {
	l.advance() // '_'
	if l.peek() != ':' {
		return token{}, l.errorf("expected ':' after '_'")
	}
	l.advance()
	r := l.peek()
	if !isPNCharsU(r) && !isDigit(r) {
		return token{}, l.errorf("invalid blank node label")
	}
	var b strings.Builder
	b.WriteRune(l.advance())
	l.scanNameTail(&b, isPNChars)
	return l.tok(tokBNode, b.String()), nil
}

// scanNameTail consumes runes accepted by ok, plus dots that are followed
// by such a rune.
func (l *lexer) scanNameTail(b *strings.Builder, ok func(rune) bool) {
	for {
		r := l.peek()
		if ok(r) {
			b.WriteRune(l.advance())
			continue
		}
		if r != '.' {
			return
		}
		n := 0
		for l.peekAt(n) == '.' {
			n++
		}
		if !ok(l.peekAt(n)) {
			return
		}
		for ; n > 0; n-- {
			b.WriteRune(l.advance())
		}
	}
}

func (l *lexer) scanLangTag() (token, error) {
	l.advance() // '@'
	var b strings.Builder
	for isAlpha(l.peek()) {
		b.WriteRune(l.advance())
	}
	if b.Len() == 0 {
		return token{}, l.errorf("expected language tag or directive after '@'")
	}
	for l.peek() == '-' && isAlnum(l.peekAt(1)) {
		b.WriteRune(l.advance())
		for isAlnum(l.peek()) {
			b.WriteRune(l.advance())
		}
	}
	return l.tok(tokLangTag, b.String()), nil
}

func (l *lexer) scanNumber() (token, error) {
	var b strings.Builder
	kind := tokInteger
	if r := l.peek(); r == '+' || r == '-' {
		b.WriteRune(l.advance())
	}
	digits := 0
	for isDigit(l.peek()) {
		b.WriteRune(l.advance())
		digits++
	}
	if l.peek() == '.' {
		switch {
		case isDigit(l.peekAt(1)):
			kind = tokDecimal
			b.WriteRune(l.advance())
			for isDigit(l.peek()) {
				b.WriteRune(l.advance())
				digits++
			}
		case digits > 0 && l.hasExponentAt(1):
			b.WriteRune(l.advance())
		}
	}
	if digits == 0 {
		return token{}, l.errorf("invalid number")
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		if !l.hasExponentAt(0) {
			return token{}, l.errorf("invalid exponent")
		}
		kind = tokDouble
		b.WriteRune(l.advance())
		if r := l.peek(); r == '+' || r == '-' {
			b.WriteRune(l.advance())
		}
		for isDigit(l.peek()) {
			b.WriteRune(l.advance())
		}
	}
	return l.tok(kind, b.String()), nil
}

func (l *lexer) hasExponentAt(i int) bool {
	if r := l.peekAt(i); r != 'e' && r != 'E' {
		return false
	}
	r := l.peekAt(i + 1)
	if r == '+' || r == '-' {
		r = l.peekAt(i + 2)
	}
	return isDigit(r)
}

// scanName scans a prefixed name or a bare keyword.
func (l *lexer) scanName() (token, error) {
	var prefix strings.Builder
	if l.peek() != ':' {
		prefix.WriteRune(l.advance())
		l.scanNameTail(&prefix, isPNChars)
	}
	if l.peek() != ':' {
		return l.tok(tokWord, prefix.String()), nil
	}
	l.advance()
	local, err := l.scanLocal()
	if err != nil {
		return token{}, err
	}
	tok := l.tok(tokPName, prefix.String())
	tok.local = local
	return tok, nil
}

func (l *lexer) scanLocal() (string, error) {
	var b strings.Builder
	r := l.peek()
	if !isPNCharsU(r) && r != ':' && !isDigit(r) && r != '%' && r != '\\' {
		return "", nil
	}
	for {
		r = l.peek()
		switch {
		case r == '%':
			l.advance()
			h1, h2 := l.advance(), l.advance()
			if !isHex(h1) || !isHex(h2) {
				return "", l.errorf("invalid percent encoding in local name")
			}
			b.WriteRune('%')
			b.WriteRune(h1)
			b.WriteRune(h2)
		case r == '\\':
			l.advance()
			esc := l.advance()
			if !strings.ContainsRune("_~.-!$&'()*+,;=/?#@%", esc) {
				return "", l.errorf("invalid escape in local name")
			}
			b.WriteRune(esc)
		case isPNChars(r) || r == ':':
			b.WriteRune(l.advance())
		case r == '.':
			n := 0
			for l.peekAt(n) == '.' {
				n++
			}
			next := l.peekAt(n)
			if !isPNChars(next) && next != ':' && next != '%' && next != '\\' {
				return b.String(), nil
			}
			for ; n > 0; n-- {
				b.WriteRune(l.advance())
			}
		default:
			return b.String(), nil
		}
	}
}

var errNotHex = errors.New("invalid hex digit")

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isAlnum(r rune) bool { return isAlpha(r) || isDigit(r) }

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isPNCharsBase(r rune) bool {
	switch {
	case isAlpha(r):
		return true
	case r >= 0x00C0 && r <= 0x00D6, r >= 0x00D8 && r <= 0x00F6, r >= 0x00F8 && r <= 0x02FF,
		r >= 0x0370 && r <= 0x037D, r >= 0x037F && r <= 0x1FFF, r >= 0x200C && r <= 0x200D,
		r >= 0x2070 && r <= 0x218F, r >= 0x2C00 && r <= 0x2FEF, r >= 0x3001 && r <= 0xD7FF,
		r >= 0xF900 && r <= 0xFDCF, r >= 0xFDF0 && r <= 0xFFFD, r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

func isPNCharsU(r rune) bool { return isPNCharsBase(r) || r == '_' }

func isPNChars(r rune) bool {
	switch {
	case isPNCharsU(r), isDigit(r), r == '-', r == 0x00B7:
		return true
	case r >= 0x0300 && r <= 0x036F, r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}

func decodeUChar(hex string) rune {
	var cp rune
	for i := 0; i < len(hex); i++ {
		d, err := hexValue(hex[i])
		if err != nil {
			return -1
		}
		cp = cp*16 + rune(d)
	}
	return cp
}

func hexValue(ch byte) (int, error) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), nil
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, nil
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, nil
	}
	return 0, errNotHex
}

func isValidCodePoint(cp rune) bool {
	return cp >= 0 && cp <= 0x10FFFF && (cp < 0xD800 || cp > 0xDFFF)
}
