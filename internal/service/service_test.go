package service

import (
	"testing"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/models"

	"github.com/stretchr/testify/assert"
)

func catalog() *Catalog {
	agg := aggregate.NewAggregator(aggregate.NewState())
	for _, rec := range []models.Record{
		{Address: "https://go.dev/", TitleParts: []string{"The Go Site"}, FolderPath: []string{"Dev", "Go"}},
		{Address: "https://news.example/", TitleParts: []string{"News"}, DescParts: []string{"Daily HEADLINES"}},
		{Address: "https://go.dev/", TitleParts: []string{"Go again"}, FolderPath: []string{"Work"}},
	} {
		agg.Accept(rec)
	}
	return NewCatalog(agg.State())
}

func urls(bookmarks []models.Bookmark) []string {
	var out []string
	for _, b := range bookmarks {
		out = append(out, b.URL)
	}
	return out
}

func TestCatalog_ListAll(t *testing.T) {
	c := catalog()
	all := c.ListAll()

	assert.Equal(t, []string{"https://go.dev/", "https://news.example/"}, urls(all))
	assert.Equal(t, "The Go Site --Doubled-- Go again", all[0].Title)
	assert.Equal(t, []string{"Dev", "Go", "Work"}, all[0].Labels)
	assert.Equal(t, 2, all[0].Seen)
	assert.Equal(t, int64(2), all[1].ID)
	assert.Equal(t, []string{"Dev", "Go", "Work"}, c.Labels())
}

func TestCatalog_ByLabel(t *testing.T) {
	c := catalog()
	work := "Work"
	none := "Nope"

	assert.Equal(t, []string{"https://go.dev/"}, urls(c.ByLabel(&work)))
	assert.Empty(t, c.ByLabel(&none))
	assert.Len(t, c.ByLabel(nil), 2)
	assert.Equal(t, 1, c.Count("Dev"))
}

func TestCatalog_Search(t *testing.T) {
	c := catalog()
	dev := "Dev"

	tests := []struct {
		name  string
		query string
		label *string
		want  []string
	}{
		{"empty query", "", nil, []string{"https://go.dev/", "https://news.example/"}},
		{"title", "go site", nil, []string{"https://go.dev/"}},
		{"description case-insensitive", "headlines", nil, []string{"https://news.example/"}},
		{"url", "news.example", nil, []string{"https://news.example/"}},
		{"scoped to label", "news", &dev, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, urls(c.Search(tt.query, tt.label)))
		})
	}
}
