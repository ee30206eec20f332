/*
Package stats keeps permanent snapshots of completed appointments and
aggregates weekly activity from them.

PURPOSE:
  The archive exists so that statistics survive deletion of the live
  booking. When an appointment completes, an immutable snapshot is stored
  here; the live appointment can then be deleted freely without losing
  history.

CRITICAL INVARIANTS:
  1. WRITE-ONCE: there is no update path. Records are appended and only
     removed by the explicit ClearAll test/reset hook.
  2. DEDUPLICATED: appointmentId is unique across the archive.
     RecordIfNeeded re-checks before inserting, which is what makes the
     repeated completion sweeps safe.

SEE ALSO:
  - aggregator.go: weekly per-day and per-service aggregation
  - booking/transition.go: the producer of completions
*/
package stats

import (
	"time"

	"github.com/google/uuid"

	"github.com/warp/booking-engine/booking"
	"github.com/warp/booking-engine/storage"
)

// ArchiveKey is the storage key for the completed appointment collection.
const ArchiveKey = "completed_appointments_storage_key"

// CompletedAppointment is an immutable snapshot of a finished booking.
// All fields are copies; the live appointment may be edited or deleted
// afterwards without affecting this record.
type CompletedAppointment struct {
	ID              string    `json:"id"`
	AppointmentID   string    `json:"appointment_id"`
	CustomerName    string    `json:"customer_name"`
	ServiceTitle    string    `json:"service_title"`
	DurationMinutes int       `json:"duration_minutes"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	CompletedAt     time.Time `json:"completed_at"`
}

// Archive persists completed appointment snapshots.
type Archive struct {
	kv storage.KV

	// Now stamps CompletedAt; tests pin it.
	Now booking.Clock
}

func NewArchive(kv storage.KV) *Archive {
	return &Archive{kv: kv, Now: time.Now}
}

// GetAll loads the full archive. Decode failures yield an empty slice.
func (a *Archive) GetAll() []CompletedAppointment {
	var records []CompletedAppointment
	storage.LoadJSON(a.kv, ArchiveKey, &records)
	return records
}

// RecordIfNeeded appends a snapshot for the appointment unless one already
// exists for its id. Not-yet-completed appointments are ignored. Safe to
// call any number of times per appointment.
func (a *Archive) RecordIfNeeded(appt booking.Appointment) {
	if !appt.Completed {
		return
	}
	records := a.GetAll()
	for _, r := range records {
		if r.AppointmentID == appt.ID {
			return
		}
	}
	records = append(records, CompletedAppointment{
		ID:              uuid.NewString(),
		AppointmentID:   appt.ID,
		CustomerName:    appt.CustomerName,
		ServiceTitle:    appt.Service.Title,
		DurationMinutes: appt.DurationMinutes,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime,
		CompletedAt:     a.Now(),
	})
	storage.SaveJSON(a.kv, ArchiveKey, records)
}

// ClearAll wipes the archive unconditionally. Test/reset hook only.
func (a *Archive) ClearAll() {
	if err := a.kv.Remove(ArchiveKey); err != nil {
		storage.SaveJSON(a.kv, ArchiveKey, []CompletedAppointment{})
	}
}
