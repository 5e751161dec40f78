package mapthin

import (
	"github.com/carbocation/mapthin/thinner"
	"github.com/carbocation/pfx"
)

// Census is gathered in one pass over the map before any thinning.
type Census struct {
	Markers         int
	Missing         int
	Chromosomes     int
	FirstChromosome string

	// Sum over chromosomes of the last non-missing position, in the units
	// that densities are quoted in: cM, or 10^6 base pairs.
	Covered float64

	Unordered bool
	Repeated  []string
}

// Available is the number of markers that could possibly be selected.
func (c Census) Available() int {
	return c.Markers - c.Missing
}

// Survey counts the markers in src and the distance they cover.
func Survey(src *Source, basePair bool) (Census, error) {
	r, err := OpenMap(src)
	if err != nil {
		return Census{}, err
	}
	defer r.Close()

	census := Census{}
	summary, err := ScanGroups(r, basePair, func(g *Group) error {
		if census.FirstChromosome == "" {
			census.FirstChromosome = g.Chromosome
		}
		if last, ok := g.Last(); ok {
			census.Covered += last
		}
		return nil
	})
	if err != nil {
		return Census{}, pfx.Err(err)
	}

	if basePair {
		census.Covered /= thinner.BasePairScale
	}

	census.Markers = summary.Markers
	census.Missing = summary.Missing
	census.Chromosomes = summary.Groups
	census.Unordered = summary.Unordered
	census.Repeated = summary.Repeated

	return census, nil
}
