package dynsyn

import (
	"bytes"
	"strings"

	"github.com/geoknoesis/rdf-dynsyn/syntax"
)

// sniffLen is how much of a document DetectSyntax looks at.
const sniffLen = 512

// DetectSyntax guesses the syntax of a document from its first bytes. It
// is a heuristic: prefer ResolveSyntax whenever a path or media type is
// known.
func DetectSyntax(sample []byte) (syntax.Syntax, bool) {
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}
	text := strings.TrimSpace(string(bytes.TrimPrefix(sample, []byte("\xef\xbb\xbf"))))
	body := skipComments(text)
	if body == "" {
		return syntax.Unknown, false
	}

	switch {
	case body[0] == '{' || body[0] == '[':
		if strings.Contains(body, "@context") || strings.Contains(body, "@id") || strings.Contains(body, "@graph") {
			return syntax.JSONLD, true
		}
		if body[0] == '{' {
			return syntax.TriG, true
		}
		return syntax.Turtle, true
	case strings.HasPrefix(body, "<?xml"), strings.HasPrefix(body, "<rdf:"), strings.HasPrefix(body, "<rdf "):
		return syntax.RDFXML, true
	}

	upper := strings.ToUpper(body)
	for _, directive := range []string{"@PREFIX", "PREFIX", "@BASE", "BASE", "@VERSION", "VERSION"} {
		if strings.HasPrefix(upper, directive) {
			if hasGraphs(body, upper) {
				return syntax.TriG, true
			}
			return syntax.Turtle, true
		}
	}

	if hasGraphs(body, upper) {
		return syntax.TriG, true
	}
	if body[0] == '<' || strings.HasPrefix(body, "_:") {
		return lineBased(body, len(sample) == sniffLen), true
	}
	if strings.Contains(body, ":") {
		return syntax.Turtle, true
	}
	return syntax.Unknown, false
}

func skipComments(text string) string {
	for strings.HasPrefix(text, "#") {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return ""
		}
		text = strings.TrimSpace(text[i+1:])
	}
	return text
}

func hasGraphs(body, upper string) bool {
	return strings.Contains(body, "{") || strings.Contains(upper, "GRAPH ")
}

// lineBased tells N-Quads from N-Triples by the number of terms per
// statement. Anything that is not a plain statement line means Turtle. The
// last line of a truncated sample is ignored.
func lineBased(body string, truncated bool) syntax.Syntax {
	lines := strings.Split(body, "\n")
	if truncated && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}
	quads := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		switch countTerms(line) {
		case 3:
		case 4:
			quads = true
		default:
			return syntax.Turtle
		}
	}
	if quads {
		return syntax.NQuads
	}
	return syntax.NTriples
}

// countTerms counts the terms of a line-based statement, or returns -1 when
// the line uses anything beyond N-Quads term syntax.
func countTerms(line string) int {
	n := 0
	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '.':
			return n
		case c == '<':
			end := strings.IndexByte(line[i:], '>')
			if end < 0 {
				return -1
			}
			i += end + 1
			n++
		case c == '_' && strings.HasPrefix(line[i:], "_:"):
			for i < len(line) && line[i] != ' ' && line[i] != '\t' {
				i++
			}
			n++
		case c == '"':
			i = skipLiteral(line, i+1)
			if i < 0 {
				return -1
			}
			n++
		default:
			return -1
		}
	}
	return -1
}

// skipLiteral returns the index after the literal whose lexical form starts
// at i, including any language tag or datatype.
func skipLiteral(line string, i int) int {
	for ; i < len(line); i++ {
		if line[i] == '\\' {
			i++
			continue
		}
		if line[i] == '"' {
			break
		}
	}
	if i >= len(line) {
		return -1
	}
	i++
	switch {
	case strings.HasPrefix(line[i:], "^^<"):
		end := strings.IndexByte(line[i:], '>')
		if end < 0 {
			return -1
		}
		return i + end + 1
	case i < len(line) && line[i] == '@':
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			i++
		}
	}
	return i
}
