package export

import (
	"context"
	"fmt"

	"github.com/dastanaron/bookmarks-flatten/internal/aggregate"
	"github.com/dastanaron/bookmarks-flatten/internal/models"
	"github.com/dastanaron/bookmarks-flatten/internal/repository"
)

// SQLiteExporter writes the aggregate into a fresh SQLite database:
// one row per address, its labels as tags
type SQLiteExporter struct {
	passive
	path string
}

// NewSQLiteExporter creates an exporter for the database file at path.
// The file must be empty or absent.
func NewSQLiteExporter(path string) *SQLiteExporter {
	return &SQLiteExporter{path: path}
}

// Name identifies the exporter in logs
func (e *SQLiteExporter) Name() string {
	return "sqlite"
}

// Finish creates the schema and stores every entry in one transaction
func (e *SQLiteExporter) Finish(ctx context.Context, state *aggregate.State) error {
	repo, err := repository.NewSQLiteRepository(e.path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := repo.InTx(ctx, func(tx repository.Repository) error {
		return store(ctx, tx, state)
	}); err != nil {
		repo.Close()
		return fmt.Errorf("failed to store bookmarks: %w", err)
	}
	return repo.Close()
}

func store(ctx context.Context, repo repository.Repository, state *aggregate.State) error {
	labelIDs := make(map[string]int64)
	for _, entry := range state.Entries() {
		b := Flatten(entry)
		if err := repo.Bookmarks().Create(ctx, &b); err != nil {
			return fmt.Errorf("insert %s: %w", entry.Address, err)
		}
		for _, name := range b.Labels {
			id, ok := labelIDs[name]
			if !ok {
				label, err := repo.Labels().Upsert(ctx, name)
				if err != nil {
					return err
				}
				id = label.ID
				labelIDs[name] = id
			}
			if err := repo.Bookmarks().Attach(ctx, b.ID, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flatten renders an entry the way the flat export shows it: title-cased
// title and labels, trimmed description
func Flatten(entry *models.Entry) models.Bookmark {
	labels := make([]string, 0, entry.Folders.Len())
	for _, name := range entry.Folders.Names() {
		labels = append(labels, TitleCase(name))
	}
	return models.Bookmark{
		URL:         entry.Address,
		Title:       TitleCase(entry.JoinedTitle()),
		Description: entry.JoinedDesc(),
		Labels:      labels,
		Seen:        entry.Seen,
	}
}
