// Package thinner selects an approximately evenly spaced subset of the markers
// on one chromosome.
package thinner

import (
	"errors"
	"fmt"
	"math"
)

// BasePairScale converts a density expressed per 10^6 base pairs into a step
// measured in base pairs.
const BasePairScale = 1000000

var (
	// ErrDensity is returned when the requested density cannot produce a
	// finite, positive step.
	ErrDensity = errors.New("thinner: density must be a positive number")

	// ErrStep is returned by Thin when it is handed a step that is not
	// positive.
	ErrStep = errors.New("thinner: step size must be positive")
)

// Marker is one SNP on a chromosome. A Distance of exactly 0 means that the
// position is missing.
type Marker struct {
	Distance float64 // cM, or base pair position
	Include  bool
}

// Missing reports whether the marker has no usable distance.
func (m Marker) Missing() bool {
	return m.Distance == 0
}

// Step converts markers-per-unit into the spacing between selected markers.
// With basePair set, density is markers per 10^6 base pairs.
func Step(density float64, basePair bool) (float64, error) {
	if !(density > 0) || math.IsInf(density, 1) {
		return 0, fmt.Errorf("%w: got %v", ErrDensity, density)
	}

	step := 1.0 / density
	if basePair {
		step *= BasePairScale
	}

	return step, nil
}

// Thin marks the markers to keep. Working forward from the first non-missing
// marker, each time a marker passes the next target position the closer of it
// and its predecessor is kept, unless the predecessor was already kept.
// Decisions are never revisited. Missing markers are skipped and never kept.
func Thin(markers []Marker, step float64) error {
	if !(step > 0) {
		return fmt.Errorf("%w: got %v", ErrStep, step)
	}

	first := -1
	for i := range markers {
		if !markers[i].Missing() {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}

	markers[first].Include = true
	target := markers[first].Distance + step
	lastIncluded := markers[first].Distance

	prev := &markers[first]
	for i := first + 1; i < len(markers); i++ {
		cur := &markers[i]
		if cur.Missing() {
			continue
		}

		if cur.Distance > target {
			chosen := prev
			if (cur.Distance-target) < (target-prev.Distance) || prev.Include {
				chosen = cur
			}

			// Collapse duplicate positions
			if chosen.Distance != lastIncluded {
				chosen.Include = true
			}
			lastIncluded = chosen.Distance

			// The target always moves at least one step past its last use.
			for {
				next := target + step
				if next == target {
					// step is below the float resolution at this position
					target = math.Nextafter(math.Max(target, lastIncluded), math.Inf(1))
					break
				}
				target = next
				if target > lastIncluded {
					break
				}
			}
		}

		prev = cur
	}

	return nil
}

// Count returns the number of included markers.
func Count(markers []Marker) int {
	n := 0
	for _, m := range markers {
		if m.Include {
			n++
		}
	}
	return n
}
