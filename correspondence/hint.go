package correspondence

import (
	"errors"
	"fmt"

	"github.com/geoknoesis/rdf-dynsyn/syntax"
)

// ErrNoHint is returned by ResolveHint when the hint names neither a media
// type nor a path.
var ErrNoHint = errors.New("correspondence: empty syntax hint")

// Hint carries what a caller knows about a document's syntax. Either field
// may be empty.
type Hint struct {
	Path      string
	MediaType string
}

// ResolveHint resolves the media type first, then the path extension. A
// media type that does not parse counts as a miss. When both miss, the
// returned error joins the individual failures.
func ResolveHint(h Hint) (Correspondent[syntax.Syntax], error) {
	if h.Path == "" && h.MediaType == "" {
		return Correspondent[syntax.Syntax]{}, ErrNoHint
	}
	var errs []error
	if h.MediaType != "" {
		mt, err := ParseMediaType(h.MediaType)
		if err == nil {
			c, lookupErr := SyntaxFromMediaType(mt)
			if lookupErr == nil {
				return c, nil
			}
			err = lookupErr
		}
		errs = append(errs, err)
	}
	if h.Path != "" {
		ext, ok := ExtensionFromPath(h.Path)
		if !ok {
			errs = append(errs, fmt.Errorf("correspondence: path %q has no file extension", h.Path))
		} else {
			c, err := SyntaxFromExtension(ext)
			if err == nil {
				return c, nil
			}
			errs = append(errs, err)
		}
	}
	return Correspondent[syntax.Syntax]{}, errors.Join(errs...)
}
