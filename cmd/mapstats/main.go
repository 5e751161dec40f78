package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/mapthin"
	_ "github.com/carbocation/mapthin/compileinfoprint"
	"github.com/carbocation/mapthin/report"
)

func main() {
	var path string
	var basePair, hist bool
	var bins int
	flag.StringVar(&path, "path", "", "Path to a .map or .bim file (optionally compressed). May be a google storage URL (gs://)")
	flag.BoolVar(&basePair, "b", false, "Use the base pair position instead of the genetic distance")
	flag.BoolVar(&hist, "hist", false, "Print a histogram of the spacing between markers")
	flag.IntVar(&bins, "bins", 20, "Number of histogram bins")
	flag.Parse()

	if path == "" {
		flag.PrintDefaults()
		log.Fatalln("No path provided")
	}

	var client *storage.Client
	if mapthin.IsGoogleStoragePath(path) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	if err := run(os.Stdout, path, client, basePair, hist, bins); err != nil {
		log.Fatalln(err)
	}
}

// run describes every marker of the map, as if all of them had been kept.
func run(w io.Writer, path string, client *storage.Client, basePair, hist bool, bins int) error {
	src, err := mapthin.NewSource(path, client)
	if err != nil {
		return err
	}

	r, err := mapthin.OpenMap(src)
	if err != nil {
		return err
	}
	defer r.Close()

	res := &mapthin.Result{Selection: mapthin.NewSelection()}
	res.Scan, err = mapthin.ScanGroups(r, basePair, func(g *mapthin.Group) error {
		for i := range g.Markers {
			g.Markers[i].Include = !g.Markers[i].Missing()
		}
		res.Selection.Add(g)
		res.Groups = append(res.Groups, mapthin.GroupSummary{
			Chromosome: g.Chromosome,
			Markers:    g.Len(),
			Missing:    g.Missing,
			Selected:   g.Selected(),
			Unordered:  g.Unordered,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(w, "%s file with %d markers on %d chromosome groups\n", src.Layout, res.Scan.Markers, res.Scan.Groups)

	census := mapthin.Census{
		Markers:   res.Scan.Markers,
		Missing:   res.Scan.Missing,
		Unordered: res.Scan.Unordered,
		Repeated:  res.Scan.Repeated,
	}
	rep := &report.Reporter{W: w, Input: path, BasePair: basePair}
	rep.Final(census, res, false)

	if hist {
		if err := rep.Histogram(res, bins); err != nil {
			return err
		}
	}

	return report.WriteSummary(w, res)
}
