// Package rendering turns assembled offer documents into HTML or PDF artifacts.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a document template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// IncompleteArtifactError is returned when a rendered artifact does not carry every section
// of its document
type IncompleteArtifactError struct {
	Format   string
	What     string
	Expected int
	Found    int
}

func (e *IncompleteArtifactError) Error() string {
	return fmt.Sprintf("incomplete %s artifact: expected %d %s, found %d", e.Format, e.Expected, e.What, e.Found)
}
