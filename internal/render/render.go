// Package render produces the PDF and audio artifacts for finalized chapters.
package render

import "fmt"

// Error tags a failed render with the artifact kind ("pdf" or "audio").
// Earlier text artifacts stay valid when rendering fails.
type Error struct {
	Kind string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
