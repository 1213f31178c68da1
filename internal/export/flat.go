package export

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/models"
)

// DefaultTitleThreshold is the title length, in runes, above which the
// flat export repeats the title in the description
const DefaultTitleThreshold = 50

const flatHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<meta http-equiv="content-type" content="text/html; charset=utf-8">
<title>Bookmarks</title>
<h1>Bookmarks</h1>
<dl><p>
`

// FlatExporter writes one folder section per label, listing every bookmark
// carrying that label. A bookmark with several labels appears in each of
// their sections; one with no label is left out.
type FlatExporter struct {
	passive
	w              io.Writer
	titleThreshold int
}

// NewFlatExporter creates a flat exporter writing to w
func NewFlatExporter(w io.Writer, titleThreshold int) *FlatExporter {
	return &FlatExporter{w: w, titleThreshold: titleThreshold}
}

// Name identifies the exporter in logs
func (e *FlatExporter) Name() string {
	return "flat"
}

// Finish writes the whole document
func (e *FlatExporter) Finish(ctx context.Context, state *aggregate.State) error {
	bw := bufio.NewWriter(e.w)
	bw.WriteString(flatHeader)

	for _, group := range groupByLabel(state) {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(bw, "<dt><h3>%s</h3></dt>\n", html.EscapeString(TitleCase(group.label)))
		bw.WriteString("<dl><p>\n")
		for _, entry := range group.entries {
			title := TitleCase(entry.JoinedTitle())
			desc := e.description(entry.Desc, title)
			fmt.Fprintf(bw, "<dt><a href=\"%s\">%s</a>\n", html.EscapeString(entry.Address), html.EscapeString(title))
			if strings.TrimSpace(desc) != "" {
				fmt.Fprintf(bw, "<dd>%s\n", html.EscapeString(desc))
			}
		}
		bw.WriteString("</dl><p>\n")
	}

	bw.WriteString("</dl><p>\n")
	return bw.Flush()
}

// description joins the description parts and, for titles too long to read
// in a list, puts the full title in front of them
func (e *FlatExporter) description(desc []string, title string) string {
	result := strings.TrimSpace(strings.Join(desc, " "))
	if utf8.RuneCountInString(title) <= e.titleThreshold {
		return result
	}
	if result == "" {
		return title
	}
	return title + " -- " + result
}

type labelGroup struct {
	label   string
	entries []*models.Entry
}

// groupByLabel fans entries out to each of their labels. Groups come in
// order of the label's first appearance, entries in address order.
func groupByLabel(state *aggregate.State) []labelGroup {
	index := make(map[string]int)
	var groups []labelGroup
	for _, entry := range state.Entries() {
		for _, label := range entry.Folders.Names() {
			i, ok := index[label]
			if !ok {
				i = len(groups)
				index[label] = i
				groups = append(groups, labelGroup{label: label})
			}
			groups[i].entries = append(groups[i].entries, entry)
		}
	}
	return groups
}
