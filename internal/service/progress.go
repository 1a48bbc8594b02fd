package service

import "math"

// Progress is a recruiter's standing against a goal.
type Progress struct {
	TotalEarned float64
	Remaining   float64
	ProgressPct float64
}

// EarnedCredit applies the commission rate percentage to each logged amount and sums the result.
func EarnedCredit(amounts []float64, ratePct float64) float64 {
	total := 0.0
	for _, amount := range amounts {
		total += amount * (ratePct / 100)
	}
	return total
}

// ComputeProgress derives earned-to-date, remaining and progress percentage for a goal amount.
// Progress is capped at 100 and rounded half-up to one decimal; a non-positive goal yields 0.
func ComputeProgress(goalAmount float64, amounts []float64, ratePct float64) Progress {
	earned := EarnedCredit(amounts, ratePct)

	pct := 0.0
	if goalAmount > 0 {
		pct = math.Min(100, earned/goalAmount*100)
	}

	return Progress{
		TotalEarned: earned,
		Remaining:   math.Max(0, goalAmount-earned),
		ProgressPct: roundTenth(pct),
	}
}
