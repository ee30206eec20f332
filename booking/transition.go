/*
transition.go - The scheduled -> completed state machine

PURPOSE:
  Each appointment moves through a two-state, one-way lifecycle: once its
  end time has passed it becomes completed and stays completed. The
  Transitioner performs that flip and notifies the downstream record sinks
  (earnings ledger, completed appointments archive).

INVOCATION MODEL:
  There is no timer. Advance() is invoked opportunistically - on app
  activation, before rendering summaries, from an HTTP endpoint - and MUST
  be called before the Completed flag or any derived summary is trusted.
  That precondition is the contract, not a hidden lifecycle hook.

RE-ENTRANCY:
  Advance() offers no exactly-once guarantee of its own. Calling it any
  number of times, from any number of call sites, yields the same end
  state because every sink independently re-checks for an existing record
  by appointment id before inserting. The dedupe in the sinks is the
  actual correctness mechanism.

SEE ALSO:
  - earnings/ledger.go, stats/archive.go: the two CompletionRecorder sinks
*/
package booking

import "time"

// CompletionRecorder receives an appointment that has transitioned to
// completed. Implementations must dedupe by appointment id: RecordIfNeeded
// is called at least once per completion, possibly many times.
type CompletionRecorder interface {
	RecordIfNeeded(appt Appointment)
}

// Transitioner scans the appointment store and advances overdue bookings.
type Transitioner struct {
	Store     *AppointmentStore
	Recorders []CompletionRecorder

	// Now is the time source; tests pin it.
	Now Clock
}

func NewTransitioner(store *AppointmentStore, recorders ...CompletionRecorder) *Transitioner {
	return &Transitioner{Store: store, Recorders: recorders, Now: time.Now}
}

// Advance flips every overdue appointment to completed, persists the
// collection, and feeds each newly completed appointment to the recorders.
// Returns the number of appointments transitioned by this call.
func (t *Transitioner) Advance() int {
	now := t.Now()
	appts := t.Store.All()

	transitioned := 0
	for i := range appts {
		if appts[i].Completed || !appts[i].Overdue(now) {
			continue
		}
		appts[i].Completed = true

		// Persist before notifying the sinks so a re-run over the same
		// data sees the flag already set. The sinks dedupe regardless.
		t.Store.SaveAll(appts)

		for _, r := range t.Recorders {
			r.RecordIfNeeded(appts[i])
		}
		transitioned++
	}
	return transitioned
}
