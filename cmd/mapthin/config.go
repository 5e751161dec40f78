package main

import (
	"fmt"

	"github.com/carbocation/mapthin"
)

const (
	// DefaultDensity is in markers per cM.
	DefaultDensity = 2.4

	// DefaultBasePairDensity is in markers per 10^6 base pairs, used with -b
	// unless -t is given.
	DefaultBasePairDensity = 6.7

	HistogramBins = 20
)

type config struct {
	Input       string
	Output      string
	MissingPath string
	SummaryPath string

	Density  float64
	Target   int
	Percent  float64
	BasePair bool
	NameOnly bool
	Quiet    bool
	Hist     bool
}

// searching reports whether the density is to be found rather than given.
func (c config) searching() bool {
	return c.Target > 0 || c.Percent > 0
}

func (c config) options() mapthin.Options {
	return mapthin.Options{
		BasePair: c.BasePair,
		NameOnly: c.NameOnly,
	}
}

func (c config) paths() []string {
	return []string{c.Input, c.Output, c.MissingPath, c.SummaryPath}
}

// validate rejects flag combinations before any file is opened.
func (c config) validate() error {
	if c.Input == "" || c.Output == "" {
		return fmt.Errorf("both an input and an output map file are required")
	}

	if c.Input == c.Output {
		return fmt.Errorf("the output file must differ from the input file %q", c.Input)
	}

	if c.Target < 0 {
		return fmt.Errorf("the number of SNPs to keep must be positive, got %d", c.Target)
	}

	if c.Percent != 0 && !(c.Percent > 0 && c.Percent < 100) {
		return fmt.Errorf("the percentage of SNPs to keep must be between 0 and 100, got %v", c.Percent)
	}

	if c.Target > 0 && c.Percent > 0 {
		return fmt.Errorf("-s and -p cannot be used together")
	}

	if !(c.Density > 0) {
		return fmt.Errorf("the number of SNPs per unit distance must be positive, got %v", c.Density)
	}

	return nil
}
