/*
errors.go - Centralized error types for the booking engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The only recoverable, caller-facing error in the core is a scheduling
  conflict; everything else degrades to "nothing changed" or "treated as
  empty" and is never fatal.

USAGE:
  Callers can branch on the sentinel:

    if errors.Is(err, booking.ErrConflict) {
        // surface the message, let the user pick another time
    }

  or unwrap the structured form for details:

    var conflict *booking.ConflictError
    if errors.As(err, &conflict) {
        fmt.Println(conflict.Conflicting.CustomerName)
    }

SEE ALSO:
  - engine.go: the only producer of ConflictError
*/
package booking

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrConflict is returned when a new appointment overlaps an existing
	// one on the same calendar day. The store is left unmodified.
	ErrConflict = errors.New("appointment conflict")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConflictError reports the first appointment (in day-local start order)
// that overlaps the rejected candidate slot.
type ConflictError struct {
	Conflicting Appointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"cannot book this slot: %s already has an appointment from %s to %s; please pick another time",
		e.Conflicting.CustomerName,
		e.Conflicting.StartTime.Format("15:04"),
		e.Conflicting.EndTime.Format("15:04"),
	)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IsConflict returns true if the error is a scheduling conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
