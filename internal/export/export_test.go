package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/models"

	"github.com/stretchr/testify/require"
)

var longTitle = strings.Repeat("abcdefghij", 6)

// fixtureState builds the aggregate used across exporter tests
func fixtureState(t *testing.T) *aggregate.State {
	t.Helper()
	agg := aggregate.NewAggregator(aggregate.NewState())
	records := []models.Record{
		{Address: "http://x.com", TitleParts: []string{"Example"}, FolderPath: []string{"Dev"}},
		{Address: "http://long.example/", TitleParts: []string{longTitle}, FolderPath: []string{"Dev", "Reading"}},
		{Address: "http://x.com", TitleParts: []string{"Example2"}, FolderPath: []string{"Work"}},
		{Address: "http://desc.example/?a=1&b=2", TitleParts: []string{"with description"}, DescParts: []string{"  some ", "notes\n"}, FolderPath: []string{"Work"}},
		{Address: "http://long2.example/", TitleParts: []string{longTitle}, DescParts: []string{"extra"}, FolderPath: []string{"Reading"}},
		{Address: "http://nolabel.example/", TitleParts: []string{"Say \"hi\"\nnow"}},
	}
	for _, rec := range records {
		agg.Accept(rec)
	}
	return agg.State()
}

func render(t *testing.T, e Exporter, state *aggregate.State) string {
	t.Helper()
	require.NoError(t, e.Finish(context.Background(), state))
	switch x := e.(type) {
	case *FlatExporter:
		return x.w.(*bytes.Buffer).String()
	case *FormUploadExporter:
		return x.w.(*bytes.Buffer).String()
	}
	t.Fatalf("unexpected exporter %T", e)
	return ""
}
