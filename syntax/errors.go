package syntax

import "fmt"

// UnknownSyntaxError reports a syntax with no parsing or serializing
// engine for the requested operation. Known syntaxes such as JSON-LD
// produce it too.
type UnknownSyntaxError struct {
	Syntax Syntax
}

func (e *UnknownSyntaxError) Error() string {
	return fmt.Sprintf("syntax: no engine for %s", e.Syntax)
}
