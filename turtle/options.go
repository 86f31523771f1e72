package turtle

// DecodeOptions configures the decoders.
type DecodeOptions struct {
	// BaseIRI resolves relative IRIs until the document sets its own base.
	// Ignored by the N-Triples and N-Quads decoders.
	BaseIRI string

	// MaxStatementBytes bounds the size of a single statement; zero means
	// no limit.
	MaxStatementBytes int

	// Recover makes the decoder skip a malformed statement, report it as a
	// recoverable *Error and continue with the next one.
	Recover bool
}
