// Package report prints what a thinning did: parameters, summary statistics of
// the selected markers, and warnings about the input.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/mapthin"
)

// Reporter writes human readable reports. Pass io.Discard as W to silence it.
type Reporter struct {
	W        io.Writer
	Input    string
	BasePair bool

	// MissingPath is where markers without a position were written, if
	// anywhere.
	MissingPath string
}

// Parameters echoes the run configuration.
type Parameters struct {
	Input    string
	Output   string
	NameOnly bool
	Density  float64
	Target   int
	Percent  float64
	BasePair bool
}

func (r *Reporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.W, format, args...)
}

// Header prints the program banner.
func (r *Reporter) Header(version string) {
	title := fmt.Sprintf("mapthin (%s): thin map files to an even marker density", version)
	r.printf("\n%s\n%s\n\n", title, strings.Repeat("-", len(title)))
}

func (r *Reporter) Parameters(p Parameters) {
	r.printf("Parameters:\n")
	r.printf("Input file: %s\n", p.Input)
	r.printf("Output file: %s", p.Output)
	if p.NameOnly {
		r.printf(" - SNP names only")
	}
	r.printf("\n")

	switch {
	case p.Target > 0:
		r.printf("Total SNPs to keep: %d\n", p.Target)
	case p.Percent > 0:
		r.printf("Percentage of SNPs to keep: %v\n", p.Percent)
	case p.BasePair:
		r.printf("SNPs per 10^6 base pair position (in file): %v\n", p.Density)
	default:
		r.printf("SNPs per cM: %v\n", p.Density)
	}

	if p.BasePair && (p.Target > 0 || p.Percent > 0) {
		r.printf("Using base pair position\n")
	}
	r.printf("\n")
}

// Totals prints the marker count of the original file.
func (r *Reporter) Totals(census mapthin.Census) {
	r.printf("Statistics:\n")
	r.printf("Total number of SNPs in original file: %d\n\n", census.Markers)
}

// Missing prints how many markers lacked a position, if any.
func (r *Reporter) Missing(missing int) {
	if missing == 0 {
		return
	}

	what := "genetic distances"
	if r.BasePair {
		what = "base pair positions"
	}
	r.printf("Number of SNPs with missing %s: %d\n", what, missing)
	if r.MissingPath != "" {
		r.printf("\t(Written to file %s)\n", r.MissingPath)
	}
	r.printf("\n")
}

// Warnings prints the non-fatal irregularities found in the input.
func (r *Reporter) Warnings(unordered bool, repeated []string) {
	if unordered {
		what := "genetic distance"
		if r.BasePair {
			what = "base pair position"
		}
		r.printf("Warning: SNPs in %q are not ordered on the %s!\n\n", r.Input, what)
	}

	if len(repeated) > 0 {
		r.printf("Warning: chromosomes %s in %q are split across non-contiguous lines; each run was thinned separately!\n\n", strings.Join(repeated, ", "), r.Input)
	}
}

// Final prints the statistics of a completed thinning. searched is set when
// the density was found by a search and should be echoed.
func (r *Reporter) Final(census mapthin.Census, res *mapthin.Result, searched bool) {
	selected := res.Selected()

	r.printf("Statistics:\n")
	r.printf("Total number of SNPs in original file: %d\n", census.Markers)
	r.printf("Number of SNPs in thinned file: %d (%v%%)\n", selected, percent(selected, census.Markers))

	r.Missing(census.Missing)

	if selected < 2 {
		r.printf("\nThat's a bit too thin!\n")
		return
	}

	spacing := SpacingOf(res.Selection)

	r.printf("\n")
	if searched {
		if r.BasePair {
			r.printf("SNPs per 10^6 base pair position (in file): %v\n", res.Density)
		} else {
			r.printf("SNPs per cM: %v\n", res.Density)
		}
	}

	if spacing.Len() == 0 {
		r.printf("No chromosome kept more than one SNP\n\n")
		r.Warnings(census.Unordered, census.Repeated)
		return
	}

	what, unit := "genetic distance", "cM"
	if r.BasePair {
		what, unit = "base pair position (in file)", "bpp"
	}

	// Averages run over gaps inside a chromosome, never across two of them.
	r.printf("Mean %s between SNPs: %v %s (over %d within-chromosome gaps)\n", what, spacing.Mean(), unit, spacing.Len())
	r.printf("St. dev. of %s between SNPs: %v %s\n", what, spacing.StandardDeviation(), unit)
	if median, err := spacing.Median(); err == nil {
		r.printf("Median %s between SNPs: %v %s\n", what, median, unit)
	}
	if p90, err := spacing.Percentile(90); err == nil {
		r.printf("90th percentile of %s between SNPs: %v %s\n", what, p90, unit)
	}
	r.printf("Range of %s between SNPs: (%v, %v)\n\n", what, spacing.Min, spacing.Max)

	r.Warnings(census.Unordered, census.Repeated)
}

// Histogram prints the distribution of the spacing between selected markers.
func (r *Reporter) Histogram(res *mapthin.Result, bins int) error {
	spacing := SpacingOf(res.Selection)
	if spacing.Len() == 0 {
		return nil
	}

	r.printf("Spacing between selected SNPs:\n")
	if err := spacing.Histogram(r.W, bins); err != nil {
		return err
	}
	r.printf("\n")

	return nil
}

// Hint suggests the other distance mode after a failed search.
func Hint(basePair bool) string {
	if basePair {
		return "Consider using genetic distance instead (do not use the -b option)!"
	}
	return "Consider using the base pair position option (-b)!"
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
