// Package diagnostics defines the structured error value carried by every
// scanning and parsing failure. The per-stage error taxonomies are closed
// sets of code constants declared next to the code that raises them.
package diagnostics

import (
	"errors"
	"fmt"
)

// Diagnostic is a compile-stage error with a stable machine-readable code
// and source coordinates.
type Diagnostic struct {
	Code    string
	Message string
	File    string
	Line    int
	Snippet string
}

// Error formats the diagnostic as file:line [CODE]: message.
func (d Diagnostic) Error() string {
	location := d.File
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	if d.Code == "" {
		return fmt.Sprintf("%s: %s", location, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", location, d.Code, d.Message)
}

// New constructs a Diagnostic value.
func New(code string, file string, line int, msg string, snippet string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: msg,
		File:    file,
		Line:    line,
		Snippet: snippet,
	}
}

// FromError recovers the Diagnostic wrapped in err, or builds a generic one
// so report writers always have a code to show.
func FromError(file string, err error) Diagnostic {
	var d Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return Diagnostic{
		Code:    "ERROR",
		Message: err.Error(),
		File:    file,
	}
}
