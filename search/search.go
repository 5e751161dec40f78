// Package search finds the marker density that yields a requested number of
// selected markers. The count is treated as a black box of the density, so
// each evaluation may be an arbitrarily expensive full pass over a map.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/BenLubar/memoize"
)

const (
	// BracketStep is how far the density moves per bracketing attempt.
	BracketStep = 0.5

	// MaxBracketSteps bounds the bracketing phase.
	MaxBracketSteps = 100

	// MaxBisections bounds the bisection phase.
	MaxBisections = 100

	// Tolerance is the interval width below which bisection gives up on an
	// exact hit.
	Tolerance = 1e-6
)

var (
	// ErrUnreachable means the target exceeds the markers that could ever be
	// selected.
	ErrUnreachable = errors.New("search: target exceeds the markers available for selection")

	// ErrNoInterval means no density pair straddling the target was found
	// within MaxBracketSteps.
	ErrNoInterval = errors.New("search: failed to find a density interval containing the target")
)

// CountFunc reports how many markers are selected at a density.
type CountFunc func(density float64) (int, error)

// Interval is a density range. Low selects at most the target and High selects
// more than it, except for the degenerate interval where Low == High already
// selects exactly the target.
type Interval struct {
	Low  float64
	High float64
}

func (iv Interval) Width() float64 {
	return iv.High - iv.Low
}

func (iv Interval) Mid() float64 {
	return (iv.Low + iv.High) * 0.5
}

// Result summarizes a completed search.
type Result struct {
	Density     float64
	Count       int
	Target      int
	Interval    Interval
	Evaluations int
}

// Exact reports whether the search hit the target.
func (r Result) Exact() bool {
	return r.Count == r.Target
}

// Memoize caches count by density. Evaluations must be deterministic.
func Memoize(count CountFunc) CountFunc {
	return CountFunc(memoize.Memoize((func(float64) (int, error))(count)).(func(float64) (int, error)))
}

// Bracket finds an interval straddling target, starting from initial. available
// is the number of markers that could be selected at all.
func Bracket(count CountFunc, initial float64, target, available int) (Interval, int, error) {
	evaluations := 0

	initialCount, err := count(initial)
	evaluations++
	if err != nil {
		return Interval{}, evaluations, err
	}

	if target > available {
		return Interval{}, evaluations, fmt.Errorf("%w: %d requested, %d available", ErrUnreachable, target, available)
	}

	if initialCount == target {
		return Interval{Low: initial, High: initial}, evaluations, nil
	}

	step := BracketStep
	if initialCount > target {
		step = -BracketStep
	}

	other := initial
	otherCount := initialCount
	for attempts := 1; ; attempts++ {
		if attempts > MaxBracketSteps {
			return Interval{}, evaluations, fmt.Errorf("%w after %d attempts from density %v", ErrNoInterval, MaxBracketSteps, initial)
		}

		next := other + step
		if next <= 0 {
			// Halve toward zero rather than stepping past it
			next = other * 0.5
		}
		other = next

		otherCount, err = count(other)
		evaluations++
		if err != nil {
			return Interval{}, evaluations, err
		}

		if (otherCount < target && initialCount > target) ||
			(otherCount > target && initialCount <= target) {
			break
		}
	}

	if otherCount <= target && initialCount > target {
		return Interval{Low: other, High: initial}, evaluations, nil
	}

	return Interval{Low: initial, High: other}, evaluations, nil
}

// Bisect narrows iv until the midpoint selects exactly target, the interval is
// narrower than Tolerance, or MaxBisections midpoints have been tried. The
// density with the count closest to target is returned.
func Bisect(count CountFunc, iv Interval, target int) (Result, error) {
	best := Result{Target: target, Count: -1}

	for i := 0; i < MaxBisections; i++ {
		density := iv.Mid()
		n, err := count(density)
		best.Evaluations++
		if err != nil {
			return best, err
		}

		if best.Count < 0 || distance(n, target) < distance(best.Count, target) {
			best.Density = density
			best.Count = n
		}

		if n == target || iv.Width() < Tolerance {
			break
		} else if n > target {
			iv.High = density
		} else {
			iv.Low = density
		}
	}

	best.Interval = iv
	return best, nil
}

// Search brackets and then bisects toward target.
func Search(count CountFunc, initial float64, target, available int) (Result, error) {
	if !(initial > 0) || math.IsInf(initial, 0) {
		return Result{}, fmt.Errorf("search: initial density must be positive, got %v", initial)
	}

	count = Memoize(count)

	iv, evaluations, err := Bracket(count, initial, target, available)
	if err != nil {
		return Result{Target: target, Evaluations: evaluations}, err
	}

	res, err := Bisect(count, iv, target)
	res.Evaluations += evaluations

	return res, err
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
