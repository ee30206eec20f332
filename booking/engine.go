/*
engine.go - Scheduling engine with conflict detection

PURPOSE:
  The Engine is the only component that creates, edits and deletes
  appointments. Its core job is the add-time conflict check: a new booking
  is rejected atomically if its half-open interval overlaps any existing
  booking on the same calendar day.

CONFLICT POLICY:
  Candidate [start, end) conflicts with existing [s, e) iff
      start < e AND end > s
  Touching boundaries (end == s, or start == e) are NOT conflicts:
  back-to-back bookings are allowed. On conflict the first overlapping
  appointment in day-local start order is reported and the store is left
  unmodified - no partial write.

KNOWN GAPS (intentional, preserved behavior):
  - The conflict scan is scoped to the candidate's calendar day. A booking
    that logically spans midnight is never checked against the adjacent
    day's bookings.
  - Update does NOT re-run conflict detection: an edit can silently create
    an overlap.

SEE ALSO:
  - errors.go: ConflictError
  - transition.go: completion handling (the other mutator)
*/
package booking

import (
	"log"
	"time"
)

// Engine validates and mutates the appointment store.
type Engine struct {
	Store    *AppointmentStore
	Notifier NotificationScheduler

	// Now is the time source; tests pin it.
	Now Clock
}

func NewEngine(store *AppointmentStore, notifier NotificationScheduler) *Engine {
	if notifier == nil {
		notifier = LogScheduler{}
	}
	return &Engine{Store: store, Notifier: notifier, Now: time.Now}
}

// Add books a new appointment after checking it against the same-day
// working set. On conflict the store is untouched and a *ConflictError
// describing the blocking appointment is returned. On success the
// appointment is appended, persisted and a reminder is requested.
func (e *Engine) Add(customerName string, svc Service, durationMinutes int, start time.Time) (Appointment, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	candidate := Appointment{StartTime: start, EndTime: end}
	for _, existing := range e.Store.On(start) {
		if candidate.Overlaps(existing) {
			return Appointment{}, &ConflictError{Conflicting: existing}
		}
	}

	appt := NewAppointment(customerName, svc, durationMinutes, start, e.Now())
	e.Store.Append(appt)

	// Fire-and-forget: a reminder that cannot be scheduled must not undo
	// the booking.
	if err := e.Notifier.Schedule(appt.ID, appt.CustomerName, appt.StartTime); err != nil {
		log.Printf("booking: reminder scheduling failed for %s: %v", appt.ID, err)
	}
	return appt, nil
}

// Update edits an existing appointment, recomputing its end time and
// completed flag. It deliberately skips conflict detection, so an edit can
// create an overlap without error. Unknown ids are a no-op.
func (e *Engine) Update(id, newName string, newService Service, newDuration int, newStart time.Time) {
	appt, ok := e.Store.Get(id)
	if !ok {
		return
	}

	appt.CustomerName = newName
	appt.Service = newService
	appt.DurationMinutes = newDuration
	appt.StartTime = newStart
	appt.EndTime = newStart.Add(time.Duration(newDuration) * time.Minute)
	appt.Completed = e.Now().After(appt.EndTime)
	e.Store.Replace(appt)
}

// Delete removes the appointment from the live store only. Ledger and
// archive entries derived from it are never touched: deletion must not
// erase financial or statistical history. Unknown ids are a no-op.
func (e *Engine) Delete(id string) {
	e.Store.Remove(id)
}

// AppointmentsOn returns the day view for the given date, sorted by start
// time. The UI calls this whenever the selected date changes.
func (e *Engine) AppointmentsOn(date time.Time) []Appointment {
	return e.Store.On(date)
}
