package report

import (
	"io"

	"github.com/carbocation/mapthin"
	"github.com/gocarina/gocsv"
)

// ChromosomeSummary is one line of the per-chromosome summary table.
type ChromosomeSummary struct {
	Chromosome  string  `csv:"chromosome"`
	Markers     int     `csv:"markers"`
	Missing     int     `csv:"missing"`
	Selected    int     `csv:"selected"`
	First       float64 `csv:"first"`
	Last        float64 `csv:"last"`
	MeanSpacing float64 `csv:"mean_spacing"`
	SDSpacing   float64 `csv:"sd_spacing"`
	Unordered   bool    `csv:"unordered"`
}

// Summarize folds the groups of res into one row per chromosome label, in the
// order the labels first appeared.
func Summarize(res *mapthin.Result) []*ChromosomeSummary {
	byLabel := make(map[string]*ChromosomeSummary)
	out := make([]*ChromosomeSummary, 0)

	for _, g := range res.Groups {
		row, exists := byLabel[g.Chromosome]
		if !exists {
			row = &ChromosomeSummary{Chromosome: g.Chromosome}
			byLabel[g.Chromosome] = row
			out = append(out, row)
		}
		row.Markers += g.Markers
		row.Missing += g.Missing
		row.Selected += g.Selected
		row.Unordered = row.Unordered || g.Unordered
	}

	for _, row := range out {
		distances := res.Selection.Distances(row.Chromosome)
		if len(distances) == 0 {
			continue
		}
		row.First = distances[0]
		row.Last = distances[len(distances)-1]

		spacing := NewSpacing()
		spacing.pushRuns(res.Selection.Runs(row.Chromosome))
		if spacing.Len() == 0 {
			continue
		}
		row.MeanSpacing = spacing.Mean()
		if spacing.Len() > 1 {
			row.SDSpacing = spacing.StandardDeviation()
		}
	}

	return out
}

// WriteSummary writes Summarize(res) as CSV with a header line.
func WriteSummary(w io.Writer, res *mapthin.Result) error {
	rows := Summarize(res)
	return gocsv.Marshal(&rows, w)
}
