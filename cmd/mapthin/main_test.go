package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/mapthin"
	"github.com/carbocation/mapthin/search"
)

func TestValidate(t *testing.T) {
	base := config{Input: "in.map", Output: "out.map", Density: DefaultDensity}

	for name, v := range map[string]struct {
		Mutate func(c *config)
		OK     bool
	}{
		"defaults":         {func(c *config) {}, true},
		"target":           {func(c *config) { c.Target = 10 }, true},
		"percent":          {func(c *config) { c.Percent = 12.5 }, true},
		"percent too big":  {func(c *config) { c.Percent = 100 }, false},
		"percent negative": {func(c *config) { c.Percent = -5 }, false},
		"target negative":  {func(c *config) { c.Target = -5 }, false},
		"both targets":     {func(c *config) { c.Target = 10; c.Percent = 10 }, false},
		"zero density":     {func(c *config) { c.Density = 0 }, false},
		"no output":        {func(c *config) { c.Output = "" }, false},
		"same file":        {func(c *config) { c.Output = c.Input }, false},
	} {
		c := base
		v.Mutate(&c)
		if err := c.validate(); (err == nil) != v.OK {
			t.Errorf("%s: expected ok=%v, got %v", name, v.OK, err)
		}
	}
}

func fixture(t *testing.T, dir string) string {
	t.Helper()

	var b strings.Builder
	for chr := 1; chr <= 2; chr++ {
		fmt.Fprintf(&b, "%d rs%d_missing 0 1\n", chr, chr)
		for i := 1; i <= 40; i++ {
			fmt.Fprintf(&b, "%d rs%d_%d %.2f %d\n", chr, chr, i, float64(i)*0.25*float64(chr), i*25000*chr)
		}
	}

	path := filepath.Join(dir, "in.map")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func countLines(t *testing.T, path string) int {
	t.Helper()

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return len(strings.Split(strings.TrimSpace(string(contents)), "\n"))
}

func TestRunFixedDensity(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		Input:       fixture(t, dir),
		Output:      filepath.Join(dir, "out.map"),
		MissingPath: filepath.Join(dir, mapthin.MissingGeneticDistanceFile),
		SummaryPath: filepath.Join(dir, "summary.csv"),
		Density:     1,
		Hist:        true,
	}

	if err := run(cfg, nil, io.Discard); err != nil {
		t.Fatal(err)
	}

	// chr1 spans 0.25-10 cM and chr2 0.5-20 cM
	if n := countLines(t, cfg.Output); n < 25 || n > 35 {
		t.Fatalf("unexpected number of thinned SNPs: %d", n)
	}
	if n := countLines(t, cfg.MissingPath); n != 2 {
		t.Fatalf("expected 2 SNPs with missing positions, got %d", n)
	}
	if n := countLines(t, cfg.SummaryPath); n != 3 {
		t.Fatalf("expected a header and 2 chromosomes in the summary, got %d lines", n)
	}
}

func TestRunTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		Input:       fixture(t, dir),
		Output:      filepath.Join(dir, "out.map"),
		MissingPath: filepath.Join(dir, mapthin.MissingGeneticDistanceFile),
		Density:     DefaultDensity,
		Target:      20,
		NameOnly:    true,
	}

	if err := run(cfg, nil, io.Discard); err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	if d := len(lines) - cfg.Target; d > 1 || d < -1 {
		t.Fatalf("expected about %d SNPs, got %d", cfg.Target, len(lines))
	}
	if strings.Contains(lines[0], "\t") {
		t.Fatalf("expected names only, got %q", lines[0])
	}
}

func TestRunInfeasibleTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		Input:       fixture(t, dir),
		Output:      filepath.Join(dir, "out.map"),
		MissingPath: filepath.Join(dir, mapthin.MissingGeneticDistanceFile),
		Density:     DefaultDensity,
		Target:      80,
	}

	err := run(cfg, nil, io.Discard)
	if !errors.Is(err, mapthin.ErrInfeasibleTarget) {
		t.Fatalf("expected ErrInfeasibleTarget, got %v", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Fatalf("no output should be written for an infeasible target")
	}
}

func TestRunNoInterval(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "stacked.map")
	if err := os.WriteFile(input, []byte("1 a 1 1\n1 b 1 2\n1 c 1 3\n1 d 1 4\n1 e 1 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config{
		Input:       input,
		Output:      filepath.Join(dir, "out.map"),
		MissingPath: filepath.Join(dir, mapthin.MissingGeneticDistanceFile),
		Density:     DefaultDensity,
		Target:      3,
	}

	err := run(cfg, nil, io.Discard)
	if !errors.Is(err, search.ErrNoInterval) {
		t.Fatalf("expected ErrNoInterval, got %v", err)
	}
	if !strings.Contains(err.Error(), "(-b)") {
		t.Fatalf("expected the base pair hint, got %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		Input:   filepath.Join(dir, "nope.map"),
		Output:  filepath.Join(dir, "out.map"),
		Density: DefaultDensity,
	}

	if err := run(cfg, nil, io.Discard); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestRunPercentMatchesAbsoluteTarget(t *testing.T) {
	dir := t.TempDir()
	input := fixture(t, dir)

	percent := config{
		Input:       input,
		Output:      filepath.Join(dir, "percent.map"),
		MissingPath: filepath.Join(dir, "percent-missing.txt"),
		Density:     DefaultDensity,
		Percent:     25,
	}
	if err := run(percent, nil, io.Discard); err != nil {
		t.Fatal(err)
	}

	// 80 markers with a position plus 2 without
	absolute := config{
		Input:       input,
		Output:      filepath.Join(dir, "absolute.map"),
		MissingPath: filepath.Join(dir, "absolute-missing.txt"),
		Density:     DefaultDensity,
		Target:      mapthin.TargetFromPercent(82, 25),
	}
	if err := run(absolute, nil, io.Discard); err != nil {
		t.Fatal(err)
	}

	p, err := os.ReadFile(percent.Output)
	if err != nil {
		t.Fatal(err)
	}
	a, err := os.ReadFile(absolute.Output)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) == 0 || !bytes.Equal(p, a) {
		t.Fatalf("percent and absolute targets wrote different files:\n%s\n---\n%s", p, a)
	}
}
