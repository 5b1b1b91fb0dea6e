// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/apidiff/internal/config"
	"github.com/tfctl/apidiff/internal/difference"
	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/severity"
)

// Options controls how a report is rendered.
type Options struct {
	// Format is "text" (the default), "json" or "yaml".
	Format string
	// Color styles the table. It is ignored unless w is a terminal.
	Color bool
	// Titles adds a header row to the table.
	Titles bool
	// Padding is the left padding of every column but the first.
	Padding int
	// Sort re-orders the rendered rows (see SortRows).
	Sort string
	// NoSummary suppresses the summary line after the table.
	NoSummary bool
}

// Render writes diffs to w in the requested format. The json and yaml forms
// are plain difference lists that can be replayed with the report command.
// The text form is a table followed by the summary line built from counts.
func Render(w io.Writer, diffs []*difference.Difference, counts map[severity.Severity]int, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch strings.ToLower(opts.Format) {
	case "json":
		return writeJSON(w, diffs)
	case "yaml", "yml":
		out, err := yaml.Marshal(diffs)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		if err := TableWriter(w, diffs, opts); err != nil {
			return err
		}
		if !opts.NoSummary {
			_, err := fmt.Fprintln(w, Summary(counts))
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown output format: %s", opts.Format)
}

// writeJSON writes diffs as a pretty printed JSON array including each
// difference's maximumSeverity.
func writeJSON(w io.Writer, diffs []*difference.Difference) error {
	docs := make([]string, 0, len(diffs))
	for _, d := range diffs {
		doc, err := d.JSON()
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		docs = append(docs, doc)
	}

	pretty := gjson.Get("["+strings.Join(docs, ",")+"]", "@pretty").Raw
	_, err := io.WriteString(w, strings.TrimRight(pretty, "\n")+"\n")
	return err
}

// TableWriter renders diffs as a borderless table honoring color, titles,
// padding and sort options. Nothing is written for an empty list.
func TableWriter(w io.Writer, diffs []*difference.Difference, opts Options) error {
	if len(diffs) == 0 {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(diffs))
	for _, d := range diffs {
		row, err := Row(d)
		if err != nil {
			return fmt.Errorf("failed to build row for %s: %w", d, err)
		}
		rows = append(rows, row)
	}
	SortRows(rows, opts.Sort)

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
		sevStyles    = map[severity.Severity]lipgloss.Style{}
	)

	if ColorEnabled(w, opts.Color) {
		p := getColors("colors")

		headerStyle = headerStyle.Foreground(p.title).Bold(true)
		evenRowStyle = evenRowStyle.Foreground(p.even)
		oddRowStyle = oddRowStyle.Foreground(p.odd)
		for sev, c := range p.severity {
			sevStyles[sev] = cellStyle.Foreground(c).Bold(sev == severity.Error)
		}
	}

	cells := make([][]string, 0, len(rows))
	sevs := make([]severity.Severity, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, 0, len(Columns))
		for _, col := range Columns {
			cell = append(cell, InterfaceToString(row[col], "-"))
		}
		cells = append(cells, cell)

		sev, _ := severity.ParseSeverity(InterfaceToString(row["severity"]))
		sevs = append(sevs, sev)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if row != table.HeaderRow && col == 0 {
				if st, ok := sevStyles[sevs[row]]; ok {
					style = st
				}
			}

			if col > 0 {
				style = style.PaddingLeft(opts.Padding)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(Columns...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// ColorEnabled reports whether color was requested and w is a terminal.
// NO_COLOR turns color off regardless.
func ColorEnabled(w io.Writer, requested bool) bool {
	if !requested || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		log.Debugf("color disabled: output is not a file")
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// palette holds the resolved table colors.
type palette struct {
	title, even, odd color.Color
	severity         map[severity.Severity]color.Color
}

// getColors returns configured color values for table rendering. Each color
// falls back to a default picked for the terminal background so output is
// reasonably visible on light and dark themes.
func getColors(key string) palette {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	return palette{
		title: resolveColor(key+".title", "#b08800", "#f6be00"),
		even:  resolveColor(key+".even", "#333333", "#ffffff"),
		odd:   resolveColor(key+".odd", "#0088a0", "#00c8f0"),
		severity: map[severity.Severity]color.Color{
			severity.Error:   resolveColor(key+".error", "#c00000", "#ff5f5f"),
			severity.Warning: resolveColor(key+".warning", "#b05800", "#ffaf00"),
			severity.Info:    resolveColor(key+".info", "#006080", "#5fafff"),
		},
	}
}
