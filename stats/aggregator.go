/*
aggregator.go - Weekly activity statistics over the archive

PURPOSE:
  Buckets the current ISO week's completed appointments two ways:
  per weekday (index 0=Monday .. 6=Sunday) and per service title. Both
  halves are computed concurrently from the same point-in-time snapshot of
  the archive, so one half never reflects a different data version than
  the other.

REFRESH POLICY:
  Recomputation is cheap, so the cache is time-boxed rather than
  invalidated on write: a refresh within 60 seconds of the previous one is
  skipped, including explicit Refresh() calls.

KNOWN GAP (intentional, preserved behavior):
  Per-service buckets are keyed by the service's display title, not its
  stable id. Renaming a service splits its historical bucket under the new
  title.
*/
package stats

import (
	"sync"
	"time"

	"github.com/warp/booking-engine/booking"
)

// RefreshThreshold is the minimum interval between recomputations.
const RefreshThreshold = 60 * time.Second

// WeekdayCount is the number of completed appointments per weekday of the
// current ISO week, index 0=Monday through 6=Sunday.
type WeekdayCount [7]int

// Aggregator computes the weekly statistics view.
type Aggregator struct {
	Archive *Archive

	// Now is the reference instant for week selection and the refresh
	// window; tests pin it.
	Now booking.Clock

	mu          sync.Mutex
	lastRefresh time.Time
	perWeekday  WeekdayCount
	perService  map[string]int
}

func NewAggregator(archive *Archive) *Aggregator {
	return &Aggregator{
		Archive:    archive,
		Now:        time.Now,
		perService: make(map[string]int),
	}
}

// Refresh recomputes both buckets from a single archive snapshot. The
// call is skipped when the previous refresh happened within
// RefreshThreshold of "now".
func (a *Aggregator) Refresh() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.Now()
	if !a.lastRefresh.IsZero() && now.Sub(a.lastRefresh) < RefreshThreshold {
		return
	}

	// One snapshot for both halves: weekday and per-service counts must
	// describe the same data version.
	week := currentWeek(a.Archive.GetAll(), now)

	var weekday WeekdayCount
	perService := make(map[string]int)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, r := range week {
			weekday[weekdayIndex(r.StartTime)]++
		}
	}()
	go func() {
		defer wg.Done()
		for _, r := range week {
			perService[r.ServiceTitle]++
		}
	}()
	wg.Wait()

	a.perWeekday = weekday
	a.perService = perService
	a.lastRefresh = now
}

// CompletedPerWeekday returns the per-weekday counts from the last
// refresh.
func (a *Aggregator) CompletedPerWeekday() WeekdayCount {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.perWeekday
}

// CompletedPerService returns the per-service counts from the last
// refresh.
func (a *Aggregator) CompletedPerService() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]int, len(a.perService))
	for k, v := range a.perService {
		out[k] = v
	}
	return out
}

// currentWeek filters records whose start time shares "now"'s ISO week and
// ISO year.
func currentWeek(records []CompletedAppointment, now time.Time) []CompletedAppointment {
	ny, nw := now.ISOWeek()
	var week []CompletedAppointment
	for _, r := range records {
		ry, rw := r.StartTime.ISOWeek()
		if ry == ny && rw == nw {
			week = append(week, r)
		}
	}
	return week
}

// weekdayIndex maps time.Weekday (Sunday=0) to 0=Monday .. 6=Sunday.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
