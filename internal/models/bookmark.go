package models

import "strings"

// DoubledMarker is inserted into a merged title before the parts of every
// further record that targets an already known address.
const DoubledMarker = "--Doubled--"

// Record is one parsed link, emitted by the parser in document order.
type Record struct {
	Address    string
	TitleParts []string
	DescParts  []string
	FolderPath []string // folder names from root to immediate parent
}

// Entry is the merged view of every record sharing one address.
type Entry struct {
	Address string
	Title   []string
	Desc    []string
	Folders *Labels
	Seen    int // number of records merged into this entry
}

// Labels is a string set that remembers insertion order.
type Labels struct {
	index map[string]struct{}
	names []string
}

// NewLabels creates a set holding the given names once each
func NewLabels(names ...string) *Labels {
	l := &Labels{index: make(map[string]struct{}, len(names))}
	l.Add(names...)
	return l
}

// Add inserts names not already present
func (l *Labels) Add(names ...string) {
	for _, name := range names {
		if l.Contains(name) {
			continue
		}
		l.index[name] = struct{}{}
		l.names = append(l.names, name)
	}
}

// Contains reports whether name is in the set
func (l *Labels) Contains(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Len returns the number of distinct names
func (l *Labels) Len() int {
	return len(l.names)
}

// Names returns a copy of the names in insertion order
func (l *Labels) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// JoinedTitle returns the title parts joined by spaces and trimmed
func (e *Entry) JoinedTitle() string {
	return strings.TrimSpace(strings.Join(e.Title, " "))
}

// JoinedDesc returns the description parts joined by spaces and trimmed
func (e *Entry) JoinedDesc() string {
	return strings.TrimSpace(strings.Join(e.Desc, " "))
}

// Label is a folder name stored as a tag
type Label struct {
	ID   int64
	Name string
}

// Bookmark is the flat, single-string form of an Entry, as stored in a
// snapshot or shown in the browser
type Bookmark struct {
	ID          int64
	URL         string
	Title       string
	Description string
	Labels      []string
	Seen        int
}
