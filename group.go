package mapthin

import (
	"github.com/carbocation/mapthin/thinner"
)

// Group is the run of contiguous rows that share a chromosome label. Markers
// and Rows are parallel.
type Group struct {
	Chromosome string
	Markers    []thinner.Marker
	Rows       []Row

	// Number of markers whose position is missing.
	Missing int

	// Set when a position is smaller than the one before it.
	Unordered bool

	// Set when the label already had a group earlier in the file.
	Repeated bool
}

func (g *Group) add(row Row, distance float64) {
	g.Markers = append(g.Markers, thinner.Marker{Distance: distance})
	g.Rows = append(g.Rows, row)
}

// Len is the number of markers in the group.
func (g *Group) Len() int {
	return len(g.Markers)
}

// Selected returns the number of markers marked for inclusion.
func (g *Group) Selected() int {
	return thinner.Count(g.Markers)
}

// Last returns the position of the last marker that is not missing.
func (g *Group) Last() (float64, bool) {
	for i := len(g.Markers) - 1; i >= 0; i-- {
		if !g.Markers[i].Missing() {
			return g.Markers[i].Distance, true
		}
	}
	return 0, false
}

// ScanSummary describes one full pass over a map.
type ScanSummary struct {
	Markers   int
	Missing   int
	Groups    int
	Unordered bool

	// Chromosome labels that were split across non-contiguous runs
	Repeated []string
}

// ScanGroups reads every row from r and calls fn with each chromosome group in
// file order. Chromosome labels are expected to be contiguous; a label that
// reappears later becomes a group of its own and is reported in
// ScanSummary.Repeated. Only one group is held at a time.
func ScanGroups(r *MapReader, basePair bool, fn func(*Group) error) (ScanSummary, error) {
	summary := ScanSummary{}
	seen := make(map[string]struct{})

	var group *Group
	var prevDistance float64
	hasPrev := false

	flush := func() error {
		if group == nil {
			return nil
		}

		summary.Groups++
		summary.Markers += group.Len()
		summary.Missing += group.Missing
		summary.Unordered = summary.Unordered || group.Unordered
		if group.Repeated {
			summary.Repeated = append(summary.Repeated, group.Chromosome)
		}

		err := fn(group)
		group = nil
		return err
	}

	for row := r.Read(); row != nil; row = r.Read() {
		if group == nil || row.Chromosome != group.Chromosome {
			if err := flush(); err != nil {
				return summary, err
			}

			group = &Group{Chromosome: row.Chromosome}
			if _, exists := seen[row.Chromosome]; exists {
				group.Repeated = true
			}
			seen[row.Chromosome] = struct{}{}
			hasPrev = false
		}

		distance := ParseDistance(row.Position(basePair))
		if distance == 0 {
			group.Missing++
		} else {
			if hasPrev && distance < prevDistance {
				group.Unordered = true
			}
			prevDistance = distance
			hasPrev = true
		}

		group.add(*row, distance)
	}

	if err := r.Err(); err != nil {
		return summary, err
	}

	return summary, flush()
}

// Selection holds the positions of the selected markers of each chromosome, in
// file order. A label that comes back after another chromosome starts a new
// run; runs are kept apart so no gap is measured across them.
type Selection struct {
	order []string
	runs  map[string][][]float64
}

func NewSelection() *Selection {
	return &Selection{runs: make(map[string][][]float64)}
}

// Add records the included markers of g as one run of its chromosome.
func (s *Selection) Add(g *Group) {
	if _, exists := s.runs[g.Chromosome]; !exists {
		s.order = append(s.order, g.Chromosome)
	}

	run := make([]float64, 0)
	for _, m := range g.Markers {
		if m.Include {
			run = append(run, m.Distance)
		}
	}
	s.runs[g.Chromosome] = append(s.runs[g.Chromosome], run)
}

// Chromosomes returns the labels in the order they were first added.
func (s *Selection) Chromosomes() []string {
	return s.order
}

// Runs returns the selected positions of each contiguous run of chromosome.
func (s *Selection) Runs(chromosome string) [][]float64 {
	return s.runs[chromosome]
}

// Distances returns every selected position of chromosome, runs concatenated.
func (s *Selection) Distances(chromosome string) []float64 {
	out := make([]float64, 0)
	for _, run := range s.runs[chromosome] {
		out = append(out, run...)
	}
	return out
}

// Total is the number of selected markers across all chromosomes.
func (s *Selection) Total() int {
	n := 0
	for _, runs := range s.runs {
		for _, run := range runs {
			n += len(run)
		}
	}
	return n
}
