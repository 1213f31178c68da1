// Package export renders a finished aggregate into the output formats:
// a flat tag-organized bookmark file, a form-upload page and a SQLite
// snapshot.
package export

import (
	"context"
	"strings"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Exporter renders a finished State. It also sits in the parser's sink
// chain, but all of its output is produced by Finish.
type Exporter interface {
	Accept(rec models.Record) bool
	Name() string
	Finish(ctx context.Context, state *aggregate.State) error
}

// passive is the record hook shared by exporters: it ignores the record
// and lets it through
type passive struct{}

func (passive) Accept(models.Record) bool { return false }

// TitleCase upper-cases the first letter of every word and lower-cases the rest
func TitleCase(s string) string {
	// Casers keep state, so each call gets its own.
	return cases.Title(language.Und).String(s)
}

var scriptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\r", `\r`,
	"\n", `\n`,
	"</", `<\/`,
)

// ScriptString quotes s as a single-quoted script string literal
func ScriptString(s string) string {
	return "'" + scriptEscaper.Replace(s) + "'"
}
