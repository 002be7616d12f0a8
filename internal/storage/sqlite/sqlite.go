package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Repository using SQLite via Turso/libSQL.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "thankful.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			date       TEXT PRIMARY KEY,
			id         TEXT NOT NULL UNIQUE,
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			CHECK(created_at <= updated_at)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (entry.Entry, error) {
	var e entry.Entry
	var dateStr, createdStr, updatedStr string
	if err := row.Scan(&dateStr, &e.ID, &e.Content, &createdStr, &updatedStr); err != nil {
		return entry.Entry{}, err
	}

	var err error
	e.Date, err = entry.ParseDate(dateStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// GetByDate retrieves the entry for date.
func (s *Store) GetByDate(ctx context.Context, date time.Time) (entry.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT date, id, content, created_at, updated_at FROM entries WHERE date = ?",
		entry.FormatDate(entry.NormalizeDate(date)),
	)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry.Entry{}, storage.ErrNotFound
		}
		if errors.Is(err, storage.ErrStorage) {
			return entry.Entry{}, err
		}
		return entry.Entry{}, fmt.Errorf("%w: querying entry: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// Upsert inserts the entry for e.Date or replaces its content.
func (s *Store) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	var existing *entry.Entry
	if !e.Date.IsZero() {
		row := tx.QueryRowContext(ctx,
			"SELECT date, id, content, created_at, updated_at FROM entries WHERE date = ?",
			entry.FormatDate(entry.NormalizeDate(e.Date)),
		)
		cur, err := scanEntry(row)
		switch {
		case err == nil:
			existing = &cur
		case !errors.Is(err, sql.ErrNoRows):
			return entry.Entry{}, fmt.Errorf("%w: checking entry: %v", storage.ErrStorage, err)
		}
	}

	stamped, err := storage.Stamp(existing, e, s.now())
	if err != nil {
		return entry.Entry{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO entries (date, id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at`,
		stamped.Key(),
		stamped.ID,
		stamped.Content,
		stamped.CreatedAt.UTC().Format(time.RFC3339),
		stamped.UpdatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: upserting entry: %v", storage.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return stamped, nil
}

// List returns entries matching the given options.
func (s *Store) List(ctx context.Context, opts storage.ListOptions) ([]entry.Entry, error) {
	query := "SELECT date, id, content, created_at, updated_at FROM entries WHERE 1=1"
	var args []interface{}

	if opts.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, entry.FormatDate(entry.NormalizeDate(*opts.StartDate)))
	}
	if opts.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, entry.FormatDate(entry.NormalizeDate(*opts.EndDate)))
	}

	query += " ORDER BY date DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Delete removes the entry for date permanently.
func (s *Store) Delete(ctx context.Context, date time.Time) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE date = ?", entry.FormatDate(entry.NormalizeDate(date)))
	if err != nil {
		return fmt.Errorf("%w: deleting entry: %v", storage.ErrStorage, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

var _ storage.Repository = (*Store)(nil)
