package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/mapthin"
	"github.com/carbocation/mapthin/compileinfo"
	"github.com/carbocation/mapthin/report"
)

func main() {
	cfg := config{}
	flag.Float64Var(&cfg.Density, "t", DefaultDensity, "SNPs per cM (or per 10^6 base pairs with -b)")
	flag.IntVar(&cfg.Target, "s", 0, "Total number of SNPs to keep")
	flag.Float64Var(&cfg.Percent, "p", 0, "Percentage of SNPs to keep")
	flag.BoolVar(&cfg.BasePair, "b", false, fmt.Sprintf("Use the base pair position instead of the genetic distance. Unless -t is set, thins to %v SNPs per 10^6 base pairs", DefaultBasePairDensity))
	flag.BoolVar(&cfg.NameOnly, "n", false, "Output the name of the SNPs only")
	flag.BoolVar(&cfg.Quiet, "so", false, "Suppress output to screen")
	flag.BoolVar(&cfg.Hist, "hist", false, "Print a histogram of the spacing between the selected SNPs")
	flag.StringVar(&cfg.SummaryPath, "summary", "", "Optional path for a per-chromosome CSV summary of the thinned file. May be a google storage URL (gs://)")
	flag.StringVar(&cfg.MissingPath, "missing", "", "Path for SNPs with a missing position. Defaults to missingGeneticDis.txt or missingBasePairPosition.txt in the working directory")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(0)
	}
	cfg.Input = flag.Arg(0)
	cfg.Output = flag.Arg(1)

	densitySet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			densitySet = true
		}
	})
	if cfg.BasePair && !densitySet {
		cfg.Density = DefaultBasePairDensity
	}

	if cfg.MissingPath == "" {
		cfg.MissingPath = mapthin.MissingFileName(cfg.BasePair)
	}

	if !cfg.Quiet {
		compileinfo.PrintToStdErr()
	}

	if err := cfg.validate(); err != nil {
		log.Fatalln(err)
	}

	var client *storage.Client
	for _, path := range cfg.paths() {
		if mapthin.IsGoogleStoragePath(path) {
			var err error
			client, err = storage.NewClient(context.Background())
			if err != nil {
				log.Fatalln(err)
			}
			defer client.Close()
			break
		}
	}

	if err := run(cfg, client, screen(cfg.Quiet)); err != nil {
		log.Fatalln(err)
	}
}

func usage() {
	r := report.Reporter{W: os.Stderr}
	r.Header(compileinfo.Version)

	fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] data-in.map data-out.map\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Files ending in .bim (optionally compressed) are read with 6 columns, others with 4.\n")
	fmt.Fprintf(os.Stderr, "Either file may be a google storage URL (gs://).\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
