package aggregate

import (
	"strings"
	"testing"

	"github.com/dastanaron/bookmarks-flatten/internal/models"
	"github.com/dastanaron/bookmarks-flatten/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_DuplicateAcrossFolders(t *testing.T) {
	input := `<DL><p>
<DT><H3>Dev</H3>
<DL><p>
<DT><A HREF="http://x.com">Example</A>
</DL><p>
<DT><H3>Work</H3>
<DL><p>
<DT><A HREF="http://x.com">Example2</A>
</DL><p>
</DL><p>`

	state := NewState()
	require.NoError(t, parser.NewParser(NewAggregator(state)).Parse(strings.NewReader(input)))

	assert.Equal(t, 2, state.Processed())
	assert.Equal(t, 1, state.Len())
	assert.Equal(t, []string{"http://x.com"}, state.Duplicates())
	assert.True(t, state.IsDuplicate("http://x.com"))

	entry, ok := state.Lookup("http://x.com")
	require.True(t, ok)
	assert.Equal(t, []string{"Example", "--Doubled--", "Example2"}, entry.Title)
	assert.Equal(t, []string{"Dev", "Work"}, entry.Folders.Names())
	assert.Empty(t, entry.Desc)
	assert.Equal(t, 2, entry.Seen)
}

func TestAggregator_Counts(t *testing.T) {
	agg := NewAggregator(NewState())
	records := []models.Record{
		{Address: "a", TitleParts: []string{"A"}, FolderPath: []string{"x", "y"}},
		{Address: "b", TitleParts: []string{"B"}, DescParts: []string{"b1"}},
		{Address: "a", TitleParts: []string{"A2"}, DescParts: []string{"a2"}, FolderPath: []string{"y", "z"}},
		{Address: "a", FolderPath: []string{"x"}},
		{Address: "c"},
	}
	for _, rec := range records {
		assert.False(t, agg.Accept(rec))
	}

	s := agg.State()
	assert.Equal(t, len(records), s.Processed())
	assert.Equal(t, 3, s.Len())
	assert.GreaterOrEqual(t, s.Processed(), s.Len())
	assert.Equal(t, []string{"a"}, s.Duplicates())
	assert.False(t, s.IsDuplicate("b"))

	a, _ := s.Lookup("a")
	assert.Equal(t, []string{"A", "--Doubled--", "A2", "--Doubled--"}, a.Title)
	assert.Equal(t, []string{"a2"}, a.Desc)
	assert.Equal(t, []string{"x", "y", "z"}, a.Folders.Names())
	assert.Equal(t, 3, a.Seen)

	var order []string
	for _, e := range s.Entries() {
		order = append(order, e.Address)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []string{"x", "y", "z"}, s.Labels())
}

func TestAggregator_DoesNotAliasRecord(t *testing.T) {
	title := []string{"T"}
	agg := NewAggregator(NewState())
	agg.Accept(models.Record{Address: "a", TitleParts: title})
	agg.Accept(models.Record{Address: "a", TitleParts: []string{"U"}})

	assert.Equal(t, []string{"T"}, title)
}
