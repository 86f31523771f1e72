package turtle

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/geoknoesis/rdf-dynsyn/rdf"
)

// termWriter renders terms. With no prefixes, no base and pretty unset it
// produces N-Triples syntax.
type termWriter struct {
	prefixes map[string]string
	base     string
	pretty   bool
	ascii    bool
}

func (w *termWriter) statement(t rdf.Triple) (string, error) {
	s, err := w.term(t.S)
	if err != nil {
		return "", err
	}
	o, err := w.term(t.O)
	if err != nil {
		return "", err
	}
	return s + " " + w.predicate(t.P) + " " + o, nil
}

func (w *termWriter) predicate(p rdf.IRI) string {
	if w.pretty && p.Value == rdf.RDFType {
		return "a"
	}
	return w.iri(p.Value)
}

func (w *termWriter) term(t rdf.Term) (string, error) {
	switch v := t.(type) {
	case rdf.IRI:
		return w.iri(v.Value), nil
	case rdf.BlankNode:
		return "_:" + blankLabel(v.ID), nil
	case rdf.Literal:
		return w.literal(v), nil
	case rdf.TripleTerm:
		s, err := w.term(v.S)
		if err != nil {
			return "", err
		}
		o, err := w.term(v.O)
		if err != nil {
			return "", err
		}
		return "<< " + s + " " + w.iri(v.P.Value) + " " + o + " >>", nil
	case nil:
		return "", fmt.Errorf("turtle: nil term")
	}
	switch t.Kind() {
	case rdf.TermIRI:
		return w.iri(t.String()), nil
	case rdf.TermBlankNode:
		return "_:" + blankLabel(strings.TrimPrefix(t.String(), "_:")), nil
	}
	return "", fmt.Errorf("turtle: unsupported term %T", t)
}

func (w *termWriter) iri(value string) string {
	if qname, ok := abbreviate(value, w.prefixes); ok {
		return qname
	}
	if w.base != "" && !strings.Contains(w.base, "#") && strings.HasPrefix(value, w.base+"#") {
		return w.iriRef(value[len(w.base):])
	}
	return w.iriRef(value)
}

func (w *termWriter) iriRef(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('<')
	for _, r := range value {
		switch {
		case r <= 0x20 || strings.ContainsRune("<>\"{}|^`\\", r):
			fmt.Fprintf(&b, "\\u%04X", r)
		case w.ascii && r >= utf8.RuneSelf:
			writeUEscape(&b, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('>')
	return b.String()
}

func (w *termWriter) literal(l rdf.Literal) string {
	if w.pretty && l.Lang == "" {
		switch l.Datatype.Value {
		case rdf.XSDInteger:
			if isIntegerLexical(l.Lexical) {
				return l.Lexical
			}
		case rdf.XSDBoolean:
			if l.Lexical == "true" || l.Lexical == "false" {
				return l.Lexical
			}
		}
	}
	out := w.quote(l.Lexical)
	switch {
	case l.Lang != "":
		return out + "@" + l.Lang
	case l.Datatype.Value != "" && l.Datatype.Value != rdf.XSDString:
		return out + "^^" + w.iri(l.Datatype.Value)
	}
	return out
}

func (w *termWriter) quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case r < 0x20 || r == 0x7F:
				fmt.Fprintf(&b, "\\u%04X", r)
			case w.ascii && r >= utf8.RuneSelf:
				writeUEscape(&b, r)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeUEscape(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		fmt.Fprintf(b, "\\U%08X", r)
		return
	}
	fmt.Fprintf(b, "\\u%04X", r)
}

func isIntegerLexical(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// blankLabel returns id when it is a valid label and a hex encoding of it
// otherwise. Hex encodings start with x, so valid ids starting with x are
// encoded too and distinct ids stay distinct.
func blankLabel(id string) string {
	if isValidBlankLabel(id) && !strings.HasPrefix(id, "x") {
		return id
	}
	return "x" + hex.EncodeToString([]byte(id))
}

func isValidBlankLabel(id string) bool {
	if id == "" || strings.HasSuffix(id, ".") {
		return false
	}
	for i, r := range id {
		if i == 0 {
			if !isPNCharsU(r) && !isDigit(r) {
				return false
			}
			continue
		}
		if !isPNChars(r) && r != '.' {
			return false
		}
	}
	return true
}

// abbreviate picks the longest namespace in prefixes that turns iri into
// a valid prefixed name.
func abbreviate(iri string, prefixes map[string]string) (string, bool) {
	best, bestNS, found := "", "", false
	for prefix, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if found && (len(ns) < len(bestNS) || len(ns) == len(bestNS) && prefix > best) {
			continue
		}
		if !isPlainLocal(iri[len(ns):]) {
			continue
		}
		best, bestNS, found = prefix, ns, true
	}
	if !found {
		return "", false
	}
	return best + ":" + iri[len(bestNS):], true
}

// isPlainLocal reports whether local can follow a prefix without escapes.
func isPlainLocal(local string) bool {
	if local == "" {
		return true
	}
	if strings.HasSuffix(local, ".") {
		return false
	}
	for i, r := range local {
		if i == 0 {
			if !isPNCharsU(r) && !isDigit(r) && r != ':' {
				return false
			}
			continue
		}
		if !isPNChars(r) && r != '.' && r != ':' {
			return false
		}
	}
	return true
}
