package siftsweep

import (
	"math"
)

// Objective maps a sweep result to a totally ordered score.  Higher is
// better; to minimize a quantity, negate it.
type Objective func(SweepResult) float64

// ObjectiveKeypointCount is the default objective: the raw number of
// detected keypoints.  It is a simplistic proxy for detector quality but
// is the documented selection behavior of this tool.
func ObjectiveKeypointCount(r SweepResult) float64 {
	return float64(r.Count)
}

// SelectionOutcome is the chosen sweep result together with the objective
// score that justified the choice
type SelectionOutcome struct {
	// Index of the chosen result in grid enumeration order
	Index  int
	Result SweepResult
	Score  float64
}

// SelectBest scans the results once in enumeration order and returns the
// first result with the maximal objective score.  The current best is
// replaced only on strict improvement, so ties resolve to the earliest
// grid point; this tie-break is observable behavior and must not change.
// Failed best-effort results score -Inf and are never selected unless
// every result failed.  A nil objective uses ObjectiveKeypointCount.
func SelectBest(results []SweepResult, obj Objective) (SelectionOutcome, error) {

	if len(results) == 0 {
		return SelectionOutcome{}, ErrEmptySweep
	}

	if obj == nil {
		obj = ObjectiveKeypointCount
	}

	score := func(r SweepResult) float64 {
		if r.Failed() {
			return math.Inf(-1)
		}
		return obj(r)
	}

	best := SelectionOutcome{
		Index:  0,
		Result: results[0],
		Score:  score(results[0]),
	}

	for i := 1; i < len(results); i++ {
		s := score(results[i])

		// strict improvement only, first maximal element wins
		if s > best.Score {
			best = SelectionOutcome{Index: i, Result: results[i], Score: s}
		}
	}

	return best, nil
}
