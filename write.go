package mapthin

import (
	"io"
	"strings"
)

// WriteRow writes one row as a tab delimited line with the layout's columns,
// or only the SNP identifier when nameOnly is set.
func WriteRow(w io.Writer, row Row, layout Layout, nameOnly bool) error {
	line := row.SNPIdentifier
	if !nameOnly {
		line = strings.Join(row.Fields(layout), "\t")
	}

	_, err := io.WriteString(w, line+"\n")
	return err
}

// WriteSelected writes the original text of every included marker of g.
func WriteSelected(w io.Writer, g *Group, layout Layout, nameOnly bool) error {
	for i, m := range g.Markers {
		if !m.Include {
			continue
		}
		if err := WriteRow(w, g.Rows[i], layout, nameOnly); err != nil {
			return err
		}
	}
	return nil
}

// WriteMissing writes every marker of g whose position is missing.
func WriteMissing(w io.Writer, g *Group, layout Layout, nameOnly bool) error {
	for i, m := range g.Markers {
		if !m.Missing() {
			continue
		}
		if err := WriteRow(w, g.Rows[i], layout, nameOnly); err != nil {
			return err
		}
	}
	return nil
}
