package mapthin

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// MapReader reads rows from a whitespace delimited map or BIM file.
type MapReader struct {
	layout  Layout
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	err     error
}

// NewMapReader reads rows of the given layout from r.
func NewMapReader(r io.Reader, layout Layout) *MapReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &MapReader{
		layout:  layout,
		scanner: scanner,
	}
}

// OpenMap opens a local or gs:// map file, decompressing it if needed. The
// layout is taken from the file name.
func OpenMap(src *Source) (*MapReader, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}

	m := NewMapReader(rc, src.Layout)
	m.closer = rc

	return m, nil
}

func (m *MapReader) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer.Close()
}

func (m *MapReader) Err() error {
	if m.err != nil {
		return m.err
	}

	return m.scanner.Err()
}

// Read returns the next row, or nil at the end of the input or on error; check
// Err to tell them apart. Blank lines are skipped. Columns beyond those of the
// layout are ignored.
func (m *MapReader) Read() *Row {
	if m.err != nil {
		return nil
	}

	for m.scanner.Scan() {
		m.line++

		cols := strings.Fields(m.scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if len(cols) < m.layout.Columns() {
			m.err = fmt.Errorf("line %d: expected %d columns for a %s file, found %d", m.line, m.layout.Columns(), m.layout, len(cols))
			return nil
		}

		row := &Row{
			Chromosome:       cols[Chromosome],
			SNPIdentifier:    cols[SNPIdentifier],
			GeneticDistance:  cols[GeneticDistance],
			BasePairPosition: cols[BasePairPosition],
		}
		if m.layout == LayoutBIM {
			row.Allele1 = cols[Allele1]
			row.Allele2 = cols[Allele2]
		}

		return row
	}

	return nil
}

// ParseDistance converts a distance column to a number. Text that is not a
// finite number is treated like an explicit 0, i.e., as missing.
func ParseDistance(text string) float64 {
	d, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}
