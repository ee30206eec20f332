/*
notify.go - Reminder scheduling collaborator

PURPOSE:
  The engine asks a NotificationScheduler to set up a customer reminder
  once per successful booking. The call is fire-and-forget: its result is
  never awaited or inspected by the core, and a failed schedule does not
  fail the booking.

SEE ALSO:
  - engine.go: the single call site
*/
package booking

import (
	"log"
	"time"
)

// ReminderLead is how long before the appointment start the reminder
// should fire.
const ReminderLead = 10 * time.Minute

// NotificationScheduler schedules a customer reminder for a booking.
// Implementations decide the delivery mechanism; the core only hands over
// the identifying details.
type NotificationScheduler interface {
	Schedule(appointmentID, customerName string, start time.Time) error
}

// LogScheduler is the default scheduler: it records the reminder intent in
// the log. Delivery is out of scope for the core.
type LogScheduler struct{}

func (LogScheduler) Schedule(appointmentID, customerName string, start time.Time) error {
	fireAt := start.Add(-ReminderLead)
	log.Printf("notify: reminder for %s (%s) scheduled at %s", customerName, appointmentID, fireAt.Format(time.RFC3339))
	return nil
}

// NopScheduler discards reminders. Used in tests.
type NopScheduler struct{}

func (NopScheduler) Schedule(string, string, time.Time) error { return nil }
