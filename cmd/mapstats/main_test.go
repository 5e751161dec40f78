package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.bim")
	contents := "1\trs1\t0\t100\tA\tG\n1\trs2\t1\t200\tA\tG\n1\trs3\t3\t300\tA\tG\n2\trs4\t2\t400\tC\tT\n2\trs5\t4\t500\tC\tT\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := run(&buf, path, nil, false, true, 4); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, expected := range []string{
		"bim file with 5 markers on 2 chromosome groups",
		"Number of SNPs with missing genetic distances: 1",
		"Range of genetic distance between SNPs: (2, 2)",
		"chromosome,markers,missing,selected",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in:\n%s", expected, out)
		}
	}
	if strings.Contains(out, "Written to file") {
		t.Errorf("no side file is written:\n%s", out)
	}
}
