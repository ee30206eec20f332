package earnings_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/booking-engine/earnings"
	"github.com/warp/booking-engine/storage"
)

func TestEarnedIndexes_Thresholds(t *testing.T) {
	// Milestones: [10 25 50 80 100 ...]
	assert.Empty(t, earnings.EarnedIndexes(0))
	assert.Empty(t, earnings.EarnedIndexes(9))
	assert.Equal(t, []int{0}, earnings.EarnedIndexes(10))
	assert.Equal(t, []int{0, 1, 2, 3}, earnings.EarnedIndexes(80))
	assert.Equal(t, []int{0, 1, 2, 3}, earnings.EarnedIndexes(99))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, earnings.EarnedIndexes(100))
}

func TestEarnedIndexes_AllMilestones(t *testing.T) {
	earned := earnings.EarnedIndexes(1500)
	require.Len(t, earned, len(earnings.Milestones))
	for i, idx := range earned {
		assert.Equal(t, i, idx)
	}
}

func TestEarnedIndexes_AlwaysContiguousFromZero(t *testing.T) {
	// Unlocked trophies form a contiguous prefix for any count.
	for _, count := range []int{0, 1, 10, 11, 79, 80, 150, 1499, 1500, 9000} {
		earned := earnings.EarnedIndexes(count)
		for i, idx := range earned {
			assert.Equal(t, i, idx, "count %d: gap in earned indexes", count)
		}
	}
}

func TestTrophyBoard_TracksLedgerCount(t *testing.T) {
	// GIVEN: a ledger crossing the first two milestones
	// WHEN: the board is consulted
	// THEN: trophy indexes follow the record count

	ledger := earnings.NewLedger(storage.NewMemory())
	board := earnings.NewTrophyBoard(ledger)

	end := time.Date(2025, time.June, 11, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		ledger.RecordIfNeeded(completedAppt(fmt.Sprintf("appt-%d", i), 30, end))
	}

	assert.Equal(t, 25, board.TotalShaveCount())
	assert.Equal(t, []int{0, 1}, board.EarnedIndexes())
}

func TestTrophyBoard_DuplicatesDoNotInflateCount(t *testing.T) {
	ledger := earnings.NewLedger(storage.NewMemory())
	board := earnings.NewTrophyBoard(ledger)

	end := time.Date(2025, time.June, 11, 10, 0, 0, 0, time.UTC)
	appt := completedAppt("appt-1", 30, end)
	for i := 0; i < 15; i++ {
		ledger.RecordIfNeeded(appt)
	}

	assert.Equal(t, 1, board.TotalShaveCount())
	assert.Empty(t, board.EarnedIndexes())
}
