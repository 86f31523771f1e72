// Package correspondence maps file extensions and media types to RDF
// syntaxes and back.
//
// The tables are fixed at package initialisation and only read afterwards,
// so every function here is safe for concurrent use.
package correspondence

import (
	"fmt"
	"log/slog"

	"github.com/geoknoesis/rdf-dynsyn/syntax"
)

// NotRdfMediaTypeError reports a media type with no corresponding syntax.
type NotRdfMediaTypeError struct {
	MediaType MediaType
}

func (e *NotRdfMediaTypeError) Error() string {
	return fmt.Sprintf("correspondence: media type %s does not correspond to any rdf syntax", e.MediaType.Essence())
}

// NotRdfFileExtensionError reports a file extension with no corresponding
// syntax.
type NotRdfFileExtensionError struct {
	Extension FileExtension
}

func (e *NotRdfFileExtensionError) Error() string {
	return fmt.Sprintf("correspondence: file extension %q does not correspond to any rdf syntax", string(e.Extension))
}

// SyntaxFromMediaType resolves the syntax for a media type. Parameters are
// ignored.
func SyntaxFromMediaType(mt MediaType) (Correspondent[syntax.Syntax], error) {
	c, ok := mediaTypeToSyntax[mt.Essence()]
	if !ok {
		slog.Debug("media type cannot be resolved", "media_type", mt.Essence())
		return Correspondent[syntax.Syntax]{}, &NotRdfMediaTypeError{MediaType: mt}
	}
	slog.Debug("media type resolved", "media_type", mt.Essence(), "syntax", c.Value.String(), "total", c.IsTotal)
	return c, nil
}

// SyntaxFromExtension resolves the syntax for a file extension.
func SyntaxFromExtension(ext FileExtension) (Correspondent[syntax.Syntax], error) {
	c, ok := extensionToSyntax[ext]
	if !ok {
		slog.Debug("file extension cannot be resolved", "file_extension", string(ext))
		return Correspondent[syntax.Syntax]{}, &NotRdfFileExtensionError{Extension: ext}
	}
	slog.Debug("file extension resolved", "file_extension", string(ext), "syntax", c.Value.String(), "total", c.IsTotal)
	return c, nil
}

// PreferredExtension returns the canonical extension of a known syntax.
func PreferredExtension(s syntax.Syntax) (Correspondent[FileExtension], bool) {
	c, ok := syntaxToExtension[s]
	return c, ok
}

// CanonicalMediaType returns the canonical media type of a known syntax.
func CanonicalMediaType(s syntax.Syntax) (Correspondent[MediaType], bool) {
	c, ok := syntaxToMediaType[s]
	return c, ok
}
