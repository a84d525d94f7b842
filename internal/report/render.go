//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// ErrUnknownFormat is returned by Render for an unsupported format.
var ErrUnknownFormat = errors.New("unknown format")

// Output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatCSV, FormatJSON}

// Render writes tables to w in the given format.
func Render(w io.Writer, format string, tables []Table) error {
	switch format {
	case FormatText, "":
		return WriteText(w, tables)
	case FormatCSV:
		return WriteCSV(w, tables)
	case FormatJSON:
		return WriteJSON(w, tables)
	default:
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// WriteText writes each table as aligned columns under its name.
func WriteText(w io.Writer, tables []Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", t.Name)
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
		fmt.Fprintln(tw, strings.Join(underline(t.Columns), "\t"))
		if len(t.Rows) == 0 {
			fmt.Fprintln(tw, "(no rows)")
		}
		for _, row := range t.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	return tw.Flush()
}

// WriteCSV writes each table as a header row followed by data rows, with
// an empty line between tables.
func WriteCSV(w io.Writer, tables []Table) error {
	writer := csv.NewWriter(w)
	for i, t := range tables {
		if i > 0 {
			writer.Flush()
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writer.Write(t.Columns); err != nil {
			return err
		}
		if err := writer.WriteAll(t.Rows); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the tables as an indented JSON array.
func WriteJSON(w io.Writer, tables []Table) error {
	if tables == nil {
		tables = []Table{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tables)
}

func underline(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = strings.Repeat("-", len(c))
	}
	return out
}
