// Package experience loads, normalizes and imports catalogs of employees, projects, offers and
// wage rates.
package experience

import "fmt"

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NormalizationError represents catalog content that cannot be normalized
type NormalizationError struct {
	Message string
	Cause   error
}

func (e *NormalizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("normalization error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("normalization error: %s", e.Message)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// ImportError reports the entity an import stopped at
type ImportError struct {
	Kind  string
	ID    string
	Cause error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import of %s %s failed: %v", e.Kind, e.ID, e.Cause)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
