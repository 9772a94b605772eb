// Package document resolves document configurations into complete documents and hands the
// rendered artifact to a download collaborator.
package document

import (
	"fmt"

	"github.com/google/uuid"
)

// EntityKind names the kind of entity a lookup was for
type EntityKind string

// Entity kinds resolved during generation
const (
	EntityOffer    EntityKind = "offer"
	EntitySnapshot EntityKind = "shown_employee_properties"
	EntityEmployee EntityKind = "employee"
	EntityProject  EntityKind = "project"
	EntityRate     EntityKind = "wage_rate"
)

// NotFoundError represents a referenced entity that could not be resolved
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// StaleReferenceError represents a configuration whose snapshot subset no longer matches its offer
type StaleReferenceError struct {
	ConfigurationID uuid.UUID
	Cause           error
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("stale document configuration %s: %v", e.ConfigurationID, e.Cause)
}

func (e *StaleReferenceError) Unwrap() error {
	return e.Cause
}

// LookupError represents a collaborator that failed while resolving an entity
type LookupError struct {
	Kind  EntityKind
	ID    string
	Cause error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup error: %s %s: %v", e.Kind, e.ID, e.Cause)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure turning a document into an artifact
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

// HandOffError represents a download collaborator that did not accept the artifact
type HandOffError struct {
	Filename string
	Cause    error
}

func (e *HandOffError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("hand-off of %s failed: %v", e.Filename, e.Cause)
	}
	return fmt.Sprintf("hand-off of %s was not accepted", e.Filename)
}

func (e *HandOffError) Unwrap() error {
	return e.Cause
}

// PanicError is a collaborator panic recovered on a resolution goroutine
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("collaborator panicked: %v", e.Value)
}
