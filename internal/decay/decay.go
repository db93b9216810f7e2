// Package decay models radioactive decay for waste containers.
//
// Two deliberately different half-life policies are in play:
//   - EstimateDecayDate uses the longest half-life present (worst case,
//     so the disposal date is never optimistic).
//   - CurrentActivity uses the average half-life (best-estimate reading).
//
// Keep them separate; unifying them would change regulatory semantics.
package decay

import (
	"fmt"
	"math"
	"time"
)

// SafeThresholdBq is the activity at which a container is considered
// safe for disposal.
const SafeThresholdBq = 1000

// emptyCompositionDays is the conservative fallback horizon when a
// container declares no isotopes.
const emptyCompositionDays = 365

// EstimateDecayDate returns the estimated time at which a container's
// activity falls to SafeThresholdBq. The result is always >= now.
// Negative activity is rejected.
func EstimateDecayDate(isotopes []string, activityBq float64, now time.Time) (time.Time, error) {
	if activityBq < 0 {
		return time.Time{}, fmt.Errorf("negative activity %g Bq", activityBq)
	}

	if len(isotopes) == 0 {
		return addDays(now, emptyCompositionDays), nil
	}

	if activityBq <= SafeThresholdBq {
		return now, nil
	}

	maxHalfLife := HalfLifeYears(isotopes[0])
	for _, iso := range isotopes[1:] {
		if hl := HalfLifeYears(iso); hl > maxHalfLife {
			maxHalfLife = hl
		}
	}

	// t = t_half * log(A0/A) / log(2)
	years := maxHalfLife * math.Log(activityBq/SafeThresholdBq) / math.Ln2
	return addDays(now, years*365), nil
}

// CurrentActivity recomputes a container's present activity from its
// initial activity and elapsed time since registration, using the
// average half-life of the listed isotopes (one year when none are
// listed). Monotonically non-increasing as now advances.
func CurrentActivity(isotopes []string, initialActivityBq float64, createdAt, now time.Time) float64 {
	avgHalfLife := defaultHalfLifeYears
	if len(isotopes) > 0 {
		sum := 0.0
		for _, iso := range isotopes {
			sum += HalfLifeYears(iso)
		}
		avgHalfLife = sum / float64(len(isotopes))
	}

	elapsedYears := now.Sub(createdAt).Hours() / 24 / 365.25
	if elapsedYears <= 0 {
		return initialActivityBq
	}

	// A = A0 * (1/2)^(t / t_half)
	return initialActivityBq * math.Pow(0.5, elapsedYears/avgHalfLife)
}

// addDays adds a possibly fractional, possibly very large number of
// days. Long-lived isotopes push decay dates centuries out, past what a
// single time.Duration can represent, so whole days go through AddDate.
func addDays(t time.Time, days float64) time.Time {
	whole := math.Floor(days)
	frac := days - whole
	return t.AddDate(0, 0, int(whole)).Add(time.Duration(frac * float64(24*time.Hour)))
}
