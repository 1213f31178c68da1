// Package report prints run summaries to the console
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Reporter writes the processed/doubled counters and, on request, tables
// of labels and duplicated addresses
type Reporter struct {
	out        io.Writer
	useColors  bool
	withLabels bool
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer, useColors bool) *Reporter {
	return &Reporter{out: out, useColors: useColors}
}

// WithLabels adds the label table to Finish
func (r *Reporter) WithLabels(on bool) *Reporter {
	r.withLabels = on
	return r
}

// Accept lets the reporter sit in the parser's sink chain; it only reads
// the finished state
func (r *Reporter) Accept(models.Record) bool {
	return false
}

// Finish prints the summary, followed by the label table when enabled
func (r *Reporter) Finish(_ context.Context, state *aggregate.State) error {
	r.Summary(state)
	if r.withLabels {
		return r.Labels(state)
	}
	return nil
}

// Summary prints the two counter lines
func (r *Reporter) Summary(state *aggregate.State) {
	fmt.Fprintf(r.out, "Processed %s bookmarks\n", r.number(state.Processed()))
	fmt.Fprintf(r.out, "Doubled URLs in %s bookmarks\n", r.number(len(state.Duplicates())))
}

// Labels prints every label with the number of bookmarks carrying it
func (r *Reporter) Labels(state *aggregate.State) error {
	counts := make(map[string]int)
	for _, entry := range state.Entries() {
		for _, label := range entry.Folders.Names() {
			counts[label]++
		}
	}

	rows := make([][]string, 0, len(counts))
	for _, label := range state.Labels() {
		rows = append(rows, []string{label, strconv.Itoa(counts[label])})
	}
	return r.table([]string{"Label", "Bookmarks"}, rows)
}

// Duplicates prints every address targeted by more than one bookmark
func (r *Reporter) Duplicates(state *aggregate.State) error {
	dups := state.Duplicates()
	if len(dups) == 0 {
		fmt.Fprintln(r.out, "No duplicate bookmarks found.")
		return nil
	}

	rows := make([][]string, 0, len(dups))
	for _, addr := range dups {
		entry, _ := state.Lookup(addr)
		rows = append(rows, []string{addr, strconv.Itoa(entry.Seen), strings.Join(entry.Folders.Names(), ", ")})
	}
	return r.table([]string{"URL", "Seen", "Labels"}, rows)
}

func (r *Reporter) number(n int) string {
	if r.useColors {
		return color.New(color.Bold).Sprint(n)
	}
	return strconv.Itoa(n)
}

func (r *Reporter) table(header []string, rows [][]string) error {
	table := tablewriter.NewTable(r.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
