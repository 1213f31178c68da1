package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dastanaron/bookmarks-flatten/internal/models"

	"golang.org/x/net/html"
)

// Sink receives parsed records. Returning true keeps the record away from
// the sinks that follow in the chain; the next record starts over.
type Sink interface {
	Accept(rec models.Record) (stop bool)
}

// SinkFunc adapts a plain function to Sink
type SinkFunc func(rec models.Record) bool

// Accept calls f(rec)
func (f SinkFunc) Accept(rec models.Record) bool {
	return f(rec)
}

// MissingAttributeError reports a tag that lacks a required attribute
type MissingAttributeError struct {
	Tag    string
	Attr   string
	Line   int
	Column int
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing %s attribute in <%s> at line %d, column %d", e.Attr, e.Tag, e.Line, e.Column)
}

// Parser parses HTML bookmark files
type Parser struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewParser creates a parser feeding every record to sinks, in order
func NewParser(sinks ...Sink) *Parser {
	return &Parser{sinks: sinks, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger used for folder tracing
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Parse reads a bookmark export and emits one record per link in document
// order. It stops at the first link without an address.
func (p *Parser) Parse(r io.Reader) error {
	w := &walker{parser: p, pos: position{line: 1, col: 1}}
	z := html.NewTokenizer(r)

	for {
		tt := z.Next()
		at := w.pos
		// Raw must be consumed before TagAttr/Text rewrite the buffer.
		w.pos.advance(z.Raw())

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				w.flush()
				return nil
			}
			return z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if err := w.startTag(string(name), hasAttr, z, at); err != nil {
				return err
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			w.endTag(string(name))

		case html.TextToken:
			w.text(string(z.Text()))
		}
	}
}

// folder is one level of the <dl> nesting; the root list has no name
type folder struct {
	name  string
	named bool
}

type walker struct {
	parser  *Parser
	pos     position
	folders []folder

	inHeading bool
	heading   strings.Builder
	nextName  *string // heading waiting for its <dl>

	pending bool
	inLink  bool
	inDesc  bool
	rec     models.Record
}

func (w *walker) startTag(name string, hasAttr bool, z *html.Tokenizer, at position) error {
	switch name {
	case "dt":
		w.flush()
	case "h3":
		w.inHeading = true
		w.heading.Reset()
	case "dl":
		w.openFolder()
	case "dd":
		if w.pending {
			w.inDesc = true
		}
	case "a":
		// A link without its own <dt> still gets its own record.
		w.flush()
		href, ok := attr(z, hasAttr, "href")
		if !ok || href == "" {
			return &MissingAttributeError{Tag: "a", Attr: "href", Line: at.line, Column: at.col}
		}
		w.pending = true
		w.inLink = true
		w.rec = models.Record{Address: href, FolderPath: w.path()}
	}
	return nil
}

func (w *walker) endTag(name string) {
	switch name {
	case "dl":
		w.flush()
		w.closeFolder()
	case "h3":
		if w.inHeading {
			w.inHeading = false
			name := strings.TrimSpace(w.heading.String())
			w.nextName = &name
		}
	case "a":
		w.inLink = false
	}
}

func (w *walker) text(s string) {
	if w.inHeading {
		w.heading.WriteString(s)
	}
	if w.inLink {
		w.rec.TitleParts = append(w.rec.TitleParts, s)
	}
	if w.inDesc {
		w.rec.DescParts = append(w.rec.DescParts, s)
	}
}

func (w *walker) openFolder() {
	f := folder{}
	if w.nextName != nil && *w.nextName != "" {
		f = folder{name: *w.nextName, named: true}
	}
	w.nextName = nil
	w.folders = append(w.folders, f)
	w.parser.logger.Debug("folder opened", "name", f.name, "depth", len(w.folders))
}

func (w *walker) closeFolder() {
	if len(w.folders) == 0 {
		return
	}
	w.folders = w.folders[:len(w.folders)-1]
}

func (w *walker) path() []string {
	var out []string
	for _, f := range w.folders {
		if f.named {
			out = append(out, f.name)
		}
	}
	return out
}

// flush hands the pending record to the sink chain and resets it
func (w *walker) flush() {
	if !w.pending {
		return
	}
	rec := w.rec
	for _, s := range w.parser.sinks {
		if s.Accept(rec) {
			break
		}
	}
	w.pending = false
	w.inLink = false
	w.inDesc = false
	w.rec = models.Record{}
}

func attr(z *html.Tokenizer, more bool, key string) (string, bool) {
	var (
		val   string
		found bool
	)
	for more {
		var k, v []byte
		k, v, more = z.TagAttr()
		if !found && string(k) == key {
			val, found = string(v), true
		}
	}
	return val, found
}

// position is a 1-based line and rune column in the input
type position struct {
	line int
	col  int
}

func (p *position) advance(raw []byte) {
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		raw = raw[size:]
		if r == '\n' {
			p.line++
			p.col = 1
			continue
		}
		p.col++
	}
}
