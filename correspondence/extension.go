package correspondence

import (
	"path/filepath"
	"strings"
)

// FileExtension is a file name extension without the leading dot.
// Comparison is exact: "TTL" and "ttl" are different extensions.
type FileExtension string

// Known extensions.
const (
	ExtHTML     FileExtension = "html"
	ExtJSON     FileExtension = "json"
	ExtJSONLD   FileExtension = "jsonld"
	ExtN3       FileExtension = "n3"
	ExtNQ       FileExtension = "nq"
	ExtNQuads   FileExtension = "nquads"
	ExtNT       FileExtension = "nt"
	ExtNTriples FileExtension = "ntriples"
	ExtOMN      FileExtension = "omn"
	ExtOWL      FileExtension = "owl"
	ExtOWX      FileExtension = "owx"
	ExtRDF      FileExtension = "rdf"
	ExtRDFXML   FileExtension = "rdfxml"
	ExtTriG     FileExtension = "trig"
	ExtTTL      FileExtension = "ttl"
	ExtTurtle   FileExtension = "turtle"
	ExtXHTML    FileExtension = "xhtml"
)

func (e FileExtension) String() string { return string(e) }

// ExtensionFromPath extracts the extension of the last path element.
// It reports false when the name has no extension, or when the only dot
// starts the name (".profile").
func ExtensionFromPath(path string) (FileExtension, bool) {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return "", false
	}
	return FileExtension(base[i+1:]), true
}
