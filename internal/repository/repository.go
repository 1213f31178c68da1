package repository

import (
	"context"

	"github.com/dastanaron/bookmarks-flatten/internal/models"
)

// BookmarkRepository defines operations for bookmarks
type BookmarkRepository interface {
	List(ctx context.Context) ([]models.Bookmark, error)
	Create(ctx context.Context, b *models.Bookmark) error
	// Attach tags a bookmark with a label.
	Attach(ctx context.Context, bookmarkID, labelID int64) error
}

// LabelRepository defines operations for labels
type LabelRepository interface {
	List(ctx context.Context) ([]models.Label, error)
	// Upsert returns the existing label with this name or creates it.
	Upsert(ctx context.Context, name string) (*models.Label, error)
}

// Repository combines all repositories
type Repository interface {
	Bookmarks() BookmarkRepository
	Labels() LabelRepository
	// InTx runs fn against repositories bound to one transaction,
	// committing when fn returns nil.
	InTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}
