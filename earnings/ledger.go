/*
Package earnings derives financial records and summaries from completed
appointments.

PURPOSE:
  The Ledger is the append-only money trail of the business. Every
  appointment that transitions to completed yields exactly one earning
  record, no matter how many times the completion sweep runs or from how
  many call sites. Records survive deletion of the originating booking.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: records are never mutated or deleted, except by the
     explicit ClearAll test/reset hook.
  2. DEDUPLICATED: appointmentId is unique across the ledger. RecordIfNeeded
     re-checks for an existing record before inserting - this check, not
     the caller, is the exactly-once mechanism.
  3. SNAPSHOT: amount and service title are copied at completion time.
     Later edits to the service do not rewrite history.

AGGREGATION WINDOWS:
  day   - same calendar day as "now"
  week  - same ISO week-of-year and ISO year as "now"
  month - same calendar month and year as "now"

SEE ALSO:
  - trophies.go: milestone unlocking over the ledger count
  - booking/transition.go: the producer of completions
*/
package earnings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/booking-engine/booking"
	"github.com/warp/booking-engine/storage"
)

// LedgerKey is the storage key for the earning record collection.
const LedgerKey = "earnings_storage_key"

// =============================================================================
// RECORD - Immutable financial entry
// =============================================================================

// Record is one completed appointment's contribution to revenue.
// Date is the originating appointment's end time.
type Record struct {
	ID            string          `json:"id"`
	AppointmentID string          `json:"appointment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	ServiceTitle  string          `json:"service_title"`
}

// =============================================================================
// AGGREGATION WINDOW
// =============================================================================

type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Summary is the aggregate over one window.
type Summary struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int             `json:"count"`
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger persists earning records and answers windowed aggregates.
type Ledger struct {
	kv storage.KV

	// Now is the reference instant for Aggregate; tests pin it.
	Now booking.Clock
}

func NewLedger(kv storage.KV) *Ledger {
	return &Ledger{kv: kv, Now: time.Now}
}

// All loads the full record collection. Decode failures yield empty.
func (l *Ledger) All() []Record {
	var records []Record
	storage.LoadJSON(l.kv, LedgerKey, &records)
	return records
}

// Count returns the number of earning records.
func (l *Ledger) Count() int {
	return len(l.All())
}

// RecordIfNeeded appends an earning record for the appointment unless one
// already exists for its id. Not-yet-completed appointments are ignored.
// Safe to call any number of times per appointment.
func (l *Ledger) RecordIfNeeded(appt booking.Appointment) {
	if !appt.Completed {
		return
	}
	records := l.All()
	for _, r := range records {
		if r.AppointmentID == appt.ID {
			return
		}
	}
	records = append(records, Record{
		ID:            uuid.NewString(),
		AppointmentID: appt.ID,
		Amount:        appt.Service.Price,
		Date:          appt.EndTime,
		ServiceTitle:  appt.Service.Title,
	})
	storage.SaveJSON(l.kv, LedgerKey, records)
}

// Aggregate sums the records whose date falls in the window's calendar
// bucket around "now".
func (l *Ledger) Aggregate(w Window) Summary {
	now := l.Now()
	total := decimal.Zero
	count := 0
	for _, r := range l.All() {
		if !inWindow(r.Date, now, w) {
			continue
		}
		total = total.Add(r.Amount)
		count++
	}
	return Summary{TotalAmount: total, Count: count}
}

// ClearAll wipes the ledger unconditionally. Test/reset hook only.
func (l *Ledger) ClearAll() {
	if err := l.kv.Remove(LedgerKey); err != nil {
		storage.SaveJSON(l.kv, LedgerKey, []Record{})
	}
}

func inWindow(date, now time.Time, w Window) bool {
	switch w {
	case WindowDay:
		return booking.SameDay(date, now)
	case WindowWeek:
		dy, dw := date.ISOWeek()
		ny, nw := now.ISOWeek()
		return dy == ny && dw == nw
	case WindowMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	default:
		return false
	}
}
