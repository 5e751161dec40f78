// Package mapthin thins PLINK style map and BIM files to a requested marker
// density, or to a requested number or percentage of markers.
package mapthin

import (
	"errors"
	"fmt"
	"io"

	"github.com/carbocation/mapthin/search"
	"github.com/carbocation/mapthin/thinner"
	"github.com/carbocation/pfx"
)

// ErrInfeasibleTarget is returned when the requested number of markers cannot
// be reached by thinning.
var ErrInfeasibleTarget = errors.New("infeasible target")

// Options fixes everything about a thinning except the density.
type Options struct {
	// Thin on the base pair position instead of the genetic distance.
	// Densities are then quoted per 10^6 base pairs.
	BasePair bool

	// Write only the SNP identifier of each selected marker.
	NameOnly bool
}

// Sinks receive the rows of a pass. Either may be nil, in which case nothing
// is written for it.
type Sinks struct {
	Out     io.Writer
	Missing io.Writer
}

// GroupSummary describes one chromosome group after thinning.
type GroupSummary struct {
	Chromosome string
	Markers    int
	Missing    int
	Selected   int
	Unordered  bool
}

// Result is the outcome of one full pass at one density.
type Result struct {
	Density   float64
	Selection *Selection
	Groups    []GroupSummary
	Scan      ScanSummary
}

// Selected is the number of markers kept.
func (r *Result) Selected() int {
	return r.Selection.Total()
}

// Thinner runs passes over one map file.
type Thinner struct {
	src    *Source
	opts   Options
	census Census
}

// New surveys src and returns a Thinner for it.
func New(src *Source, opts Options) (*Thinner, error) {
	census, err := Survey(src, opts.BasePair)
	if err != nil {
		return nil, err
	}

	return &Thinner{
		src:    src,
		opts:   opts,
		census: census,
	}, nil
}

func (t *Thinner) Census() Census {
	return t.census
}

// Run makes one full pass over the map at density, thinning each chromosome
// group as soon as it is complete and writing to sinks.
func (t *Thinner) Run(density float64, sinks Sinks) (*Result, error) {
	step, err := thinner.Step(density, t.opts.BasePair)
	if err != nil {
		return nil, err
	}

	r, err := OpenMap(t.src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	res := &Result{
		Density:   density,
		Selection: NewSelection(),
	}

	layout := t.src.Layout
	res.Scan, err = ScanGroups(r, t.opts.BasePair, func(g *Group) error {
		if sinks.Missing != nil && g.Missing > 0 {
			if err := WriteMissing(sinks.Missing, g, layout, t.opts.NameOnly); err != nil {
				return pfx.Err(err)
			}
		}

		if err := thinner.Thin(g.Markers, step); err != nil {
			return err
		}

		if sinks.Out != nil {
			if err := WriteSelected(sinks.Out, g, layout, t.opts.NameOnly); err != nil {
				return pfx.Err(err)
			}
		}

		res.Selection.Add(g)
		res.Groups = append(res.Groups, GroupSummary{
			Chromosome: g.Chromosome,
			Markers:    g.Len(),
			Missing:    g.Missing,
			Selected:   g.Selected(),
			Unordered:  g.Unordered,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.src.Path, err)
	}

	return res, nil
}

// Count is the number of markers kept at density. Nothing is written.
func (t *Thinner) Count(density float64) (int, error) {
	res, err := t.Run(density, Sinks{})
	if err != nil {
		return 0, err
	}
	return res.Selected(), nil
}

// CheckTarget rejects targets that no density could reach: the target must be
// positive and smaller than the number of markers with a position.
func (t *Thinner) CheckTarget(target int) error {
	if target <= 0 || target >= t.census.Available() {
		return fmt.Errorf("%w: the number of markers to keep must be between 0 and %d (exclusive), got %d", ErrInfeasibleTarget, t.census.Available(), target)
	}
	return nil
}

// InitialDensity is the density that would spread target markers evenly over
// the covered distance, or fallback when the map covers no distance.
func (t *Thinner) InitialDensity(target int, fallback float64) float64 {
	if t.census.Covered > 0 {
		return float64(target) / t.census.Covered
	}
	return fallback
}

// Search finds the density that keeps target markers, or as close to it as
// the search gets.
func (t *Thinner) Search(target int, fallback float64) (search.Result, error) {
	if err := t.CheckTarget(target); err != nil {
		return search.Result{Target: target}, err
	}

	return search.Search(t.Count, t.InitialDensity(target, fallback), target, t.census.Available())
}

// TargetFromPercent converts a percentage of all markers, including those with
// missing positions, to a marker count, rounding half up.
func TargetFromPercent(total int, percent float64) int {
	return int(float64(total)*(percent*0.01) + 0.5)
}
