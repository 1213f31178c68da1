package service

import (
	"strings"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/models"
)

// Catalog provides read-only queries over a finished aggregate
type Catalog struct {
	bookmarks []models.Bookmark
	labels    []string
}

// NewCatalog creates a catalog from state. The state must no longer change.
func NewCatalog(state *aggregate.State) *Catalog {
	c := &Catalog{labels: state.Labels()}
	for i, entry := range state.Entries() {
		c.bookmarks = append(c.bookmarks, models.Bookmark{
			ID:          int64(i + 1),
			URL:         entry.Address,
			Title:       entry.JoinedTitle(),
			Description: entry.JoinedDesc(),
			Labels:      entry.Folders.Names(),
			Seen:        entry.Seen,
		})
	}
	return c
}

// Labels returns every label in order of first appearance
func (c *Catalog) Labels() []string {
	return c.labels
}

// ListAll returns all bookmarks
func (c *Catalog) ListAll() []models.Bookmark {
	return c.bookmarks
}

// Count returns the number of bookmarks carrying label
func (c *Catalog) Count(label string) int {
	return len(c.ByLabel(&label))
}

// ByLabel returns bookmarks carrying label; nil means all bookmarks
func (c *Catalog) ByLabel(label *string) []models.Bookmark {
	if label == nil {
		return c.bookmarks
	}

	var filtered []models.Bookmark
	for _, b := range c.bookmarks {
		for _, l := range b.Labels {
			if l == *label {
				filtered = append(filtered, b)
				break
			}
		}
	}
	return filtered
}

// Search filters bookmarks under label by query string, matching title,
// URL or description case-insensitively
func (c *Catalog) Search(query string, label *string) []models.Bookmark {
	all := c.ByLabel(label)
	if query == "" {
		return all
	}

	queryLower := strings.ToLower(query)
	var filtered []models.Bookmark
	for _, b := range all {
		if strings.Contains(strings.ToLower(b.Title), queryLower) ||
			strings.Contains(strings.ToLower(b.URL), queryLower) ||
			strings.Contains(strings.ToLower(b.Description), queryLower) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
