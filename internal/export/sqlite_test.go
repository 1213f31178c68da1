package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dastanaron/bookmarks-flatten/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteExporter_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	require.NoError(t, NewSQLiteExporter(path).Finish(context.Background(), fixtureState(t)))

	repo, err := repository.NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	bookmarks, err := repo.Bookmarks().List(context.Background())
	require.NoError(t, err)
	require.Len(t, bookmarks, 5)

	first := bookmarks[0]
	assert.Equal(t, "http://x.com", first.URL)
	assert.Equal(t, "Example --Doubled-- Example2", first.Title)
	assert.Equal(t, 2, first.Seen)
	assert.ElementsMatch(t, []string{"Dev", "Work"}, first.Labels)

	assert.Equal(t, "some  notes", bookmarks[2].Description)
	assert.Empty(t, bookmarks[4].Labels)

	labels, err := repo.Labels().List(context.Background())
	require.NoError(t, err)
	var names []string
	for _, l := range labels {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Dev", "Work", "Reading"}, names)
}

func TestSQLiteExporter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "bookmarks.db")
	assert.Error(t, NewSQLiteExporter(path).Finish(context.Background(), fixtureState(t)))
}

func TestFlatten(t *testing.T) {
	state := fixtureState(t)
	entry, ok := state.Lookup("http://desc.example/?a=1&b=2")
	require.True(t, ok)

	b := Flatten(entry)
	assert.Equal(t, "With Description", b.Title)
	assert.Equal(t, "some  notes", b.Description)
	assert.Equal(t, []string{"Work"}, b.Labels)
	assert.Equal(t, 1, b.Seen)
}

func TestSQLiteExporter_IntoAtomicFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	f, err := CreateAtomic(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, NewSQLiteExporter(f.TempPath()).Finish(context.Background(), fixtureState(t)))
	require.NoError(t, f.Commit())

	repo, err := repository.NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	bookmarks, err := repo.Bookmarks().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookmarks, 5)
}
