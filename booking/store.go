/*
store.go - Persisted appointment collection

PURPOSE:
  AppointmentStore owns the live appointment collection. It is the single
  source of truth for scheduled bookings and is mutated only by the
  scheduling engine and the completion transitioner.

ACCESS PATTERN:
  Load-entire-collection / mutate-in-memory / save-entire-collection.
  Every mutation re-serializes the whole collection under one storage key.
  A blob that fails to decode is treated as an empty collection.

OWNERSHIP:
  Deleting an appointment here never touches the earnings ledger or the
  completed appointments archive - financial and statistical history must
  survive deletion of the live booking.

SEE ALSO:
  - storage/storage.go: the KV interface and blob helpers
  - engine.go, transition.go: the two mutators
*/
package booking

import (
	"sort"
	"time"

	"github.com/warp/booking-engine/storage"
)

// AppointmentsKey is the storage key for the live appointment collection.
const AppointmentsKey = "appointments_storage_key"

// AppointmentStore persists the appointment collection as one blob.
type AppointmentStore struct {
	kv storage.KV
}

func NewAppointmentStore(kv storage.KV) *AppointmentStore {
	return &AppointmentStore{kv: kv}
}

// All loads the full collection. Decode failures yield an empty slice.
func (s *AppointmentStore) All() []Appointment {
	var appts []Appointment
	storage.LoadJSON(s.kv, AppointmentsKey, &appts)
	return appts
}

// SaveAll rewrites the full collection. Best-effort; failures are logged
// inside the storage helpers.
func (s *AppointmentStore) SaveAll(appts []Appointment) {
	storage.SaveJSON(s.kv, AppointmentsKey, appts)
}

// Append adds one appointment and persists.
func (s *AppointmentStore) Append(a Appointment) {
	s.SaveAll(append(s.All(), a))
}

// Replace overwrites the appointment with a matching id and persists.
// Unknown ids are a no-op.
func (s *AppointmentStore) Replace(a Appointment) {
	appts := s.All()
	for i := range appts {
		if appts[i].ID == a.ID {
			appts[i] = a
			s.SaveAll(appts)
			return
		}
	}
}

// Remove deletes the appointment with the given id and persists.
// Unknown ids are a no-op.
func (s *AppointmentStore) Remove(id string) {
	appts := s.All()
	for i := range appts {
		if appts[i].ID == id {
			s.SaveAll(append(appts[:i], appts[i+1:]...))
			return
		}
	}
}

// Get returns the appointment with the given id.
func (s *AppointmentStore) Get(id string) (Appointment, bool) {
	for _, a := range s.All() {
		if a.ID == id {
			return a, true
		}
	}
	return Appointment{}, false
}

// On returns the appointments whose start time falls on the same calendar
// day as date, sorted by start time. This is the working set for both the
// day view and conflict detection.
func (s *AppointmentStore) On(date time.Time) []Appointment {
	var day []Appointment
	for _, a := range s.All() {
		if SameDay(a.StartTime, date) {
			day = append(day, a)
		}
	}
	sort.Slice(day, func(i, j int) bool { return day[i].StartTime.Before(day[j].StartTime) })
	return day
}
