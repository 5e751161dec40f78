package report

import (
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/mapthin"
	"github.com/carbocation/runningvariance"
	"github.com/montanaflynn/stats"
)

// Spacing accumulates the gaps between consecutive selected markers on the
// same chromosome.
type Spacing struct {
	runningvariance.RunningStat
	Min float64
	Max float64

	gaps []float64
}

func NewSpacing() *Spacing {
	return &Spacing{
		RunningStat: *runningvariance.NewRunningStat(),
		Min:         math.Inf(1),
		Max:         math.Inf(-1),
	}
}

func (s *Spacing) Push(gap float64) {
	s.RunningStat.Push(gap)
	s.gaps = append(s.gaps, gap)

	if gap > s.Max {
		s.Max = gap
	}
	if gap < s.Min {
		s.Min = gap
	}
}

// PushDistances adds the gaps between consecutive positions of one run.
func (s *Spacing) PushDistances(distances []float64) {
	for i := 1; i < len(distances); i++ {
		s.Push(distances[i] - distances[i-1])
	}
}

// Len is the number of gaps seen.
func (s *Spacing) Len() int {
	return len(s.gaps)
}

func (s *Spacing) Median() (float64, error) {
	return stats.Median(stats.Float64Data(s.gaps))
}

// Percentile of the gaps, p in (0, 100].
func (s *Spacing) Percentile(p float64) (float64, error) {
	return stats.Percentile(stats.Float64Data(s.gaps), p)
}

// Histogram draws the distribution of gaps with the given number of bins.
func (s *Spacing) Histogram(w io.Writer, bins int) error {
	if len(s.gaps) == 0 {
		return nil
	}
	return histogram.Fprint(w, histogram.Hist(bins, s.gaps), histogram.Linear(40))
}

// SpacingOf gathers the gaps of every chromosome in sel.
func SpacingOf(sel *mapthin.Selection) *Spacing {
	s := NewSpacing()
	for _, chromosome := range sel.Chromosomes() {
		s.pushRuns(sel.Runs(chromosome))
	}
	return s
}

func (s *Spacing) pushRuns(runs [][]float64) {
	for _, run := range runs {
		s.PushDistances(run)
	}
}
