/*
trophies.go - Milestone ("trophy") unlocking over the ledger

PURPOSE:
  The operator earns trophies at fixed cumulative completion counts. A
  trophy, once reached, stays permanently unlocked: the ledger is
  append-only, so the count never goes backwards.

MODEL:
  Milestones is a fixed ascending threshold list. EarnedIndexes is the
  contiguous prefix of indexes whose threshold is satisfied by the current
  ledger count. There is no persisted unlock state - earned trophies are
  recomputed from the ledger on demand.
*/
package earnings

// Milestones is the ascending trophy threshold sequence.
var Milestones = []int{
	10, 25, 50, 80, 100, 150, 200, 300, 400, 500,
	600, 700, 800, 900, 1000, 1100, 1200, 1300, 1400, 1500,
}

// TrophyBoard exposes milestone progress derived from the ledger.
type TrophyBoard struct {
	Ledger *Ledger
}

func NewTrophyBoard(ledger *Ledger) *TrophyBoard {
	return &TrophyBoard{Ledger: ledger}
}

// TotalShaveCount is the number of completed services recorded so far.
func (b *TrophyBoard) TotalShaveCount() int {
	return b.Ledger.Count()
}

// EarnedIndexes returns the indexes of all satisfied milestones. The
// result is contiguous from 0 up to the highest threshold the count
// reaches.
func (b *TrophyBoard) EarnedIndexes() []int {
	return EarnedIndexes(b.TotalShaveCount())
}

// EarnedIndexes computes the satisfied milestone indexes for a count.
func EarnedIndexes(count int) []int {
	var earned []int
	for i, milestone := range Milestones {
		if count >= milestone {
			earned = append(earned, i)
		}
	}
	return earned
}
