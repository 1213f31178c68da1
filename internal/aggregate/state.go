// Package aggregate merges parsed bookmark records into one address-keyed
// view, counting every record and remembering which addresses repeat.
package aggregate

import (
	"slices"

	"github.com/dastanaron/bookmarks-flatten/internal/models"
)

// State is the address-keyed merge of every record seen in a run. It is
// mutated only through an Aggregator and must be treated as read-only once
// parsing has finished.
type State struct {
	entries   map[string]*models.Entry
	order     []string
	processed int
	doubled   map[string]struct{}
	doubles   []string
}

// NewState creates an empty state
func NewState() *State {
	return &State{
		entries: make(map[string]*models.Entry),
		doubled: make(map[string]struct{}),
	}
}

// Processed returns the number of records accepted, duplicates included
func (s *State) Processed() int {
	return s.processed
}

// Len returns the number of distinct addresses
func (s *State) Len() int {
	return len(s.order)
}

// Entries returns the merged entries in order of first appearance.
// Callers must not modify them.
func (s *State) Entries() []*models.Entry {
	out := make([]*models.Entry, 0, len(s.order))
	for _, addr := range s.order {
		out = append(out, s.entries[addr])
	}
	return out
}

// Lookup returns the entry for an address
func (s *State) Lookup(address string) (*models.Entry, bool) {
	e, ok := s.entries[address]
	return e, ok
}

// IsDuplicate reports whether address was the target of two or more records
func (s *State) IsDuplicate(address string) bool {
	_, ok := s.doubled[address]
	return ok
}

// Duplicates returns the duplicated addresses in the order they were
// first found to repeat
func (s *State) Duplicates() []string {
	return slices.Clone(s.doubles)
}

// Labels returns every folder name used by any entry, in order of first
// appearance while walking entries in address order
func (s *State) Labels() []string {
	seen := models.NewLabels()
	for _, addr := range s.order {
		seen.Add(s.entries[addr].Folders.Names()...)
	}
	return seen.Names()
}

// Aggregator is the parser sink that owns and fills a State
type Aggregator struct {
	state *State
}

// NewAggregator creates an aggregator writing into state
func NewAggregator(state *State) *Aggregator {
	return &Aggregator{state: state}
}

// State returns the state being filled
func (a *Aggregator) State() *State {
	return a.state
}

// Accept merges rec into the state. It never stops the sink chain.
func (a *Aggregator) Accept(rec models.Record) bool {
	s := a.state
	s.processed++

	entry, ok := s.entries[rec.Address]
	if !ok {
		s.entries[rec.Address] = &models.Entry{
			Address: rec.Address,
			Title:   slices.Clone(rec.TitleParts),
			Desc:    slices.Clone(rec.DescParts),
			Folders: models.NewLabels(rec.FolderPath...),
			Seen:    1,
		}
		s.order = append(s.order, rec.Address)
		return false
	}

	if !s.IsDuplicate(rec.Address) {
		s.doubled[rec.Address] = struct{}{}
		s.doubles = append(s.doubles, rec.Address)
	}
	entry.Title = append(entry.Title, models.DoubledMarker)
	entry.Title = append(entry.Title, rec.TitleParts...)
	entry.Desc = append(entry.Desc, rec.DescParts...)
	entry.Folders.Add(rec.FolderPath...)
	entry.Seen++
	return false
}
