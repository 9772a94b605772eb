package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrEmployeeAlreadyProposed is returned when an employee already has a snapshot on the offer
var ErrEmployeeAlreadyProposed = errors.New("employee is already proposed on this offer")

// ValidationError represents an entity that failed a field check
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// SelectionError is returned when an experience outside the snapshot is selected
type SelectionError struct {
	SnapshotID   uuid.UUID
	ExperienceID uuid.UUID
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("experience %s is not part of snapshot %s", e.ExperienceID, e.SnapshotID)
}

// StaleReferenceError is returned when a configuration names snapshots its offer no longer holds
type StaleReferenceError struct {
	ConfigurationID uuid.UUID
	OfferID         uuid.UUID
	Missing         []uuid.UUID
}

func (e *StaleReferenceError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = id.String()
	}
	return fmt.Sprintf("document configuration %s references snapshots not on offer %s: %s",
		e.ConfigurationID, e.OfferID, strings.Join(ids, ", "))
}
