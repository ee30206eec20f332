/*
Package booking provides the core scheduling engine for a single-operator
appointment book.

PURPOSE:
  This package owns the live appointment collection and the two operations
  that drive everything else: conflict-checked scheduling and the one-way
  completion transition. Completed appointments feed two independently
  persisted derived stores (the earnings ledger and the completed
  appointments archive) through the CompletionRecorder interface.

KEY CONCEPTS IN THIS FILE (types.go):
  - Service: a priced offering (immutable id, editable title/price)
  - Appointment: a scheduled customer slot with computed end time
  - Clock: injectable time source so tests can pin "now"

DESIGN PRINCIPLES:
  1. Value snapshots: an Appointment carries a copy of its Service, not a
     live reference. Renaming a service later does not rewrite history.
  2. Computed end: EndTime is always StartTime + Duration, recomputed at
     creation and on every edit.
  3. Stale-by-design completion: the Completed flag logically means
     "now is past EndTime" but is only recomputed when the transitioner
     runs. Callers advance the transitioner before trusting it.
  4. Precision: uses decimal.Decimal for prices to avoid floating-point
     errors.

SEE ALSO:
  - engine.go: conflict detection and mutation
  - transition.go: the scheduled -> completed state machine
  - store.go: persisted appointment collection
*/
package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Clock supplies "now". Production code uses time.Now; tests substitute a
// fixed instant.
type Clock func() time.Time

// =============================================================================
// SERVICE - Priced offering
// =============================================================================

// Service is an offering the operator sells. The id is permanent; title
// and price may be edited. Prices are whole currency units.
type Service struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// NewService creates a service with a fresh id. The price is truncated to
// whole units.
func NewService(title string, price decimal.Decimal) Service {
	return Service{
		ID:    uuid.NewString(),
		Title: title,
		Price: price.Truncate(0),
	}
}

// =============================================================================
// APPOINTMENT - Scheduled customer slot
// =============================================================================

// Appointment is a booked time slot. It occupies the half-open interval
// [StartTime, EndTime); two appointments that merely touch at a boundary
// do not overlap.
type Appointment struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	Service         Service   `json:"service"`
	DurationMinutes int       `json:"duration_minutes"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Completed       bool      `json:"completed"`
}

// NewAppointment builds an appointment, deriving EndTime from the duration
// and the initial Completed flag from now.
func NewAppointment(customerName string, svc Service, durationMinutes int, start time.Time, now time.Time) Appointment {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return Appointment{
		ID:              uuid.NewString(),
		CustomerName:    customerName,
		Service:         svc,
		DurationMinutes: durationMinutes,
		StartTime:       start,
		EndTime:         end,
		Completed:       now.After(end),
	}
}

// Overlaps reports whether the half-open intervals of a and b intersect.
// Touching endpoints (a ends exactly when b starts, or vice versa) are not
// an overlap: back-to-back bookings are allowed.
func (a Appointment) Overlaps(b Appointment) bool {
	return a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime)
}

// Overdue reports whether the appointment's end time has passed.
func (a Appointment) Overdue(now time.Time) bool {
	return now.After(a.EndTime)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
