package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dastanaron/bookmarks-flatten/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// labelSeparator joins label names inside a single GROUP_CONCAT column
const labelSeparator = "\x1f"

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db        *sql.DB
	bookmarks *bookmarkRepo
	labels    *labelRepo
}

// NewSQLiteRepository opens (or creates) the database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db:        db,
		bookmarks: &bookmarkRepo{q: db},
		labels:    &labelRepo{q: db},
	}, nil
}

func initSchema(db *sql.DB) error {
	createTables := `
	CREATE TABLE IF NOT EXISTS labels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		seen INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS bookmark_labels (
		bookmark_id INTEGER NOT NULL,
		label_id INTEGER NOT NULL,
		PRIMARY KEY (bookmark_id, label_id),
		FOREIGN KEY(bookmark_id) REFERENCES bookmarks(id),
		FOREIGN KEY(label_id) REFERENCES labels(id)
	);

	CREATE INDEX IF NOT EXISTS idx_bookmark_labels_label ON bookmark_labels(label_id);
	`
	_, err := db.Exec(createTables)
	return err
}

// Bookmarks returns the bookmark repository
func (r *SQLiteRepository) Bookmarks() BookmarkRepository {
	return r.bookmarks
}

// Labels returns the label repository
func (r *SQLiteRepository) Labels() LabelRepository {
	return r.labels
}

// InTx runs fn inside one transaction
func (r *SQLiteRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&txRepository{bookmarks: &bookmarkRepo{q: tx}, labels: &labelRepo{q: tx}}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// txRepository is the view handed to InTx callbacks
type txRepository struct {
	bookmarks *bookmarkRepo
	labels    *labelRepo
}

func (r *txRepository) Bookmarks() BookmarkRepository { return r.bookmarks }
func (r *txRepository) Labels() LabelRepository       { return r.labels }
func (r *txRepository) Close() error                   { return nil }

func (r *txRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

// bookmarkRepo implements BookmarkRepository
type bookmarkRepo struct {
	q querier
}

func (r *bookmarkRepo) List(ctx context.Context) ([]models.Bookmark, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT b.id, b.url, b.title, b.description, b.seen,
		       COALESCE(GROUP_CONCAT(l.name, ?), '')
		FROM bookmarks AS b
		LEFT JOIN bookmark_labels AS bl ON bl.bookmark_id = b.id
		LEFT JOIN labels AS l ON l.id = bl.label_id
		GROUP BY b.id
		ORDER BY b.id
	`, labelSeparator)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var (
			b      models.Bookmark
			labels string
		)
		if err := rows.Scan(&b.ID, &b.URL, &b.Title, &b.Description, &b.Seen, &labels); err != nil {
			return nil, err
		}
		if labels != "" {
			b.Labels = strings.Split(labels, labelSeparator)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (r *bookmarkRepo) Create(ctx context.Context, b *models.Bookmark) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO bookmarks(url, title, description, seen) VALUES (?, ?, ?, ?)`,
		b.URL, b.Title, b.Description, b.Seen,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *bookmarkRepo) Attach(ctx context.Context, bookmarkID, labelID int64) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO bookmark_labels(bookmark_id, label_id) VALUES (?, ?)`,
		bookmarkID, labelID,
	)
	return err
}

// labelRepo implements LabelRepository
type labelRepo struct {
	q querier
}

func (r *labelRepo) List(ctx context.Context) ([]models.Label, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM labels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []models.Label
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (r *labelRepo) Upsert(ctx context.Context, name string) (*models.Label, error) {
	var id int64
	err := r.q.QueryRowContext(ctx, `SELECT id FROM labels WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return &models.Label{ID: id, Name: name}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := r.q.ExecContext(ctx, `INSERT INTO labels(name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert label %q: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Label{ID: id, Name: name}, nil
}
