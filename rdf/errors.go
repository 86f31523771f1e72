package rdf

import "errors"

// SourceError reports that the statement producer failed while a stream
// was being drained, typically because the input was malformed.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string { return "rdf: source: " + e.Err.Error() }

func (e *SourceError) Unwrap() error { return e.Err }

// SinkError reports that the statement consumer failed while a stream was
// being drained. Sink errors are never retried.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "rdf: sink: " + e.Err.Error() }

func (e *SinkError) Unwrap() error { return e.Err }

// IsSourceError reports whether err carries a *SourceError.
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

// IsSinkError reports whether err carries a *SinkError.
func IsSinkError(err error) bool {
	var se *SinkError
	return errors.As(err, &se)
}
