package mapthin

import (
	"path/filepath"
	"strings"
)

// Map columns in the map and BIM files to their positions
const (
	Chromosome int = iota
	SNPIdentifier
	GeneticDistance
	BasePairPosition
	Allele1
	Allele2
)

// Layout is the column layout of a map file.
type Layout int

const (
	// LayoutMap is the 4 column PLINK .map layout.
	LayoutMap Layout = iota

	// LayoutBIM is the 6 column PLINK .bim layout, with two allele columns.
	LayoutBIM
)

// Columns is the number of whitespace delimited fields each line must carry.
func (l Layout) Columns() int {
	if l == LayoutBIM {
		return Allele2 + 1
	}
	return BasePairPosition + 1
}

func (l Layout) String() string {
	if l == LayoutBIM {
		return "bim"
	}
	return "map"
}

var compressionSuffixes = []string{".gz", ".bgz", ".bz2", ".xz", ".zip", ".zz", ".zst"}

// DetectLayout picks the layout from the file name: a .bim extension (in any
// case, and ignoring a trailing compression extension) selects LayoutBIM.
func DetectLayout(path string) Layout {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}

	if strings.HasSuffix(name, ".bim") {
		return LayoutBIM
	}

	return LayoutMap
}

// Row is one line of a map file. Values are kept as they appeared in the file
// so that they can be written back out untouched.
type Row struct {
	Chromosome       string
	SNPIdentifier    string // E.g., RSID
	GeneticDistance  string // cM (PLINK permits Morgans; the scale is irrelevant here)
	BasePairPosition string // Labeled "position" by most applications
	Allele1          string // Only in LayoutBIM
	Allele2          string // Only in LayoutBIM
}

// Fields returns the row's values in column order for the layout.
func (r Row) Fields(l Layout) []string {
	out := []string{r.Chromosome, r.SNPIdentifier, r.GeneticDistance, r.BasePairPosition}
	if l == LayoutBIM {
		out = append(out, r.Allele1, r.Allele2)
	}
	return out
}

// Position returns the text of the column that thinning is driven by.
func (r Row) Position(basePair bool) string {
	if basePair {
		return r.BasePairPosition
	}
	return r.GeneticDistance
}
