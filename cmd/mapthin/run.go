package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/mapthin"
	"github.com/carbocation/mapthin/compileinfo"
	"github.com/carbocation/mapthin/report"
	"github.com/carbocation/mapthin/search"
)

func screen(quiet bool) io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stdout
}

func run(cfg config, client *storage.Client, w io.Writer) error {
	rep := &report.Reporter{W: w, Input: cfg.Input, BasePair: cfg.BasePair, MissingPath: cfg.MissingPath}
	rep.Header(compileinfo.Version)
	rep.Parameters(report.Parameters{
		Input:    cfg.Input,
		Output:   cfg.Output,
		NameOnly: cfg.NameOnly,
		Density:  cfg.Density,
		Target:   cfg.Target,
		Percent:  cfg.Percent,
		BasePair: cfg.BasePair,
	})

	src, err := mapthin.NewSource(cfg.Input, client)
	if err != nil {
		return err
	}

	t, err := mapthin.New(src, cfg.options())
	if err != nil {
		return fmt.Errorf("Cannot read map file %s: %w", cfg.Input, err)
	}
	census := t.Census()

	density := cfg.Density
	if cfg.searching() {
		target := cfg.Target
		if cfg.Percent > 0 {
			target = mapthin.TargetFromPercent(census.Markers, cfg.Percent)
		}

		found, err := t.Search(target, cfg.Density)
		if errors.Is(err, search.ErrNoInterval) || errors.Is(err, search.ErrUnreachable) {
			rep.MissingPath = ""
			rep.Totals(census)
			rep.Missing(census.Missing)
			rep.Warnings(census.Unordered, census.Repeated)
			return fmt.Errorf("Failed to thin SNPs for these settings: %w. %s", err, report.Hint(cfg.BasePair))
		} else if err != nil {
			return err
		}

		if !found.Exact() {
			log.Printf("Closest achievable number of SNPs is %d (target %d)\n", found.Count, found.Target)
		}
		density = found.Density
	}

	res, err := write(t, density, cfg, client)
	if err != nil {
		return err
	}

	rep.Final(census, res, cfg.searching())

	if cfg.Hist {
		if err := rep.Histogram(res, HistogramBins); err != nil {
			return err
		}
	}

	if cfg.SummaryPath != "" {
		if err := writeSummary(cfg.SummaryPath, client, res); err != nil {
			return err
		}
	}

	return nil
}

// write makes the one pass that produces the thinned file and, if any
// position is missing, the side file listing those markers.
func write(t *mapthin.Thinner, density float64, cfg config, client *storage.Client) (*mapthin.Result, error) {
	out, err := mapthin.Create(cfg.Output, client)
	if err != nil {
		return nil, err
	}

	missing := mapthin.NewLazyFile(cfg.MissingPath, client)

	res, err := t.Run(density, mapthin.Sinks{Out: out, Missing: missing})
	if err != nil {
		out.Close()
		missing.Close()
		return nil, err
	}

	if err := out.Close(); err != nil {
		missing.Close()
		return nil, err
	}

	if err := missing.Close(); err != nil {
		return nil, err
	}

	return res, nil
}

func writeSummary(path string, client *storage.Client, res *mapthin.Result) error {
	w, err := mapthin.Create(path, client)
	if err != nil {
		return err
	}

	if err := report.WriteSummary(w, res); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}
