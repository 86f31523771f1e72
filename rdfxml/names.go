package rdfxml

import "unicode"

// isNCName reports whether s is a non-colonized XML name, as required for
// rdf:ID and rdf:nodeID values and for element local names.
func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if r != '_' && !unicode.IsLetter(r) {
				return false
			}
			continue
		}
		if r != '_' && r != '-' && r != '.' && r != 0xB7 && !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
			!unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Mc, r) {
			return false
		}
	}
	return true
}

// splitQName splits iri into a namespace and the longest suffix that is an
// NCName.
func splitQName(iri string) (ns, local string, ok bool) {
	for i := range iri {
		if i > 0 && isNCName(iri[i:]) {
			return iri[:i], iri[i:], true
		}
	}
	return "", "", false
}
