package export

import (
	"bufio"
	"context"
	_ "embed"
	"io"
	"strings"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
)

var (
	//go:embed templates/formupload_head.html
	formHead string
	//go:embed templates/formupload_tail.html
	formTail string
)

// FormUploadExporter writes a page that turns an embedded bookmark array
// into the XML expected by the bulk upload form and posts it
type FormUploadExporter struct {
	passive
	w io.Writer
}

// NewFormUploadExporter creates a form-upload exporter writing to w
func NewFormUploadExporter(w io.Writer) *FormUploadExporter {
	return &FormUploadExporter{w: w}
}

// Name identifies the exporter in logs
func (e *FormUploadExporter) Name() string {
	return "form-upload"
}

// Finish writes the page with one object literal per address:
// a = address, t = title, o = description, e = labels (only when present)
func (e *FormUploadExporter) Finish(ctx context.Context, state *aggregate.State) error {
	bw := bufio.NewWriter(e.w)
	bw.WriteString(formHead)

	for i, entry := range state.Entries() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			bw.WriteString(",")
		}
		bw.WriteString(` {"a": ` + ScriptString(entry.Address))
		bw.WriteString(`, "t": ` + ScriptString(TitleCase(strings.Join(entry.Title, " "))))
		bw.WriteString(`, "o": ` + ScriptString(strings.Join(entry.Desc, " ")))
		if entry.Folders.Len() > 0 {
			labels := make([]string, 0, entry.Folders.Len())
			for _, name := range entry.Folders.Names() {
				labels = append(labels, ScriptString(TitleCase(name)))
			}
			bw.WriteString(`, "e":[` + strings.Join(labels, ", ") + `]`)
		}
		bw.WriteString("}\n")
	}

	bw.WriteString(formTail)
	return bw.Flush()
}
