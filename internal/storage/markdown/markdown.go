package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
)

// Store implements storage.Repository using one Markdown file per date with
// YAML front-matter.
type Store struct {
	baseDir string // e.g. ~/.thankful/entries/
	now     func() time.Time

	mu sync.Mutex // serializes read-modify-write in Upsert
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	entriesDir := filepath.Join(dataDir, "entries")
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: entriesDir, now: time.Now}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) entryPath(date time.Time) string {
	t := entry.NormalizeDate(date)
	return filepath.Join(s.baseDir, t.Format("2006"), t.Format("01"), t.Format("02")+".md")
}

func (s *Store) marshal(e entry.Entry) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", e.ID)
	fmt.Fprintf(&b, "date: %s\n", e.Key())
	fmt.Fprintf(&b, "created_at: %s\n", e.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "updated_at: %s\n", e.UpdatedAt.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(e.Content)
	return []byte(b.String())
}

type frontMatter struct {
	ID        string `yaml:"id"`
	Date      string `yaml:"date"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

func (s *Store) unmarshal(data []byte) (entry.Entry, error) {
	var fm frontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	date, err := entry.ParseDate(fm.Date)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
	}
	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, fm.UpdatedAt)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}

	return entry.Entry{
		ID:        fm.ID,
		Date:      date,
		Content:   strings.TrimPrefix(string(content), "\n"),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

func (s *Store) read(path string) (entry.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return s.unmarshal(data)
}

// GetByDate reads the entry file for date.
func (s *Store) GetByDate(ctx context.Context, date time.Time) (entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}
	return s.read(s.entryPath(date))
}

// Upsert writes the entry file for e.Date, preserving identity of an existing file.
func (s *Store) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}
	if e.Date.IsZero() {
		return entry.Entry{}, fmt.Errorf("%w: entry date must be set", storage.ErrValidation)
	}

	path := s.entryPath(e.Date)
	var existing *entry.Entry
	cur, err := s.read(path)
	switch {
	case err == nil:
		existing = &cur
	case !errors.Is(err, storage.ErrNotFound):
		return entry.Entry{}, err
	}

	stamped, err := storage.Stamp(existing, e, s.now())
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.atomicWrite(path, s.marshal(stamped)); err != nil {
		return entry.Entry{}, err
	}
	return stamped, nil
}

// List returns entries matching the given options by scanning the directory tree.
func (s *Store) List(ctx context.Context, opts storage.ListOptions) ([]entry.Entry, error) {
	var entries []entry.Entry

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		e, err := s.read(path)
		if err != nil {
			return nil // skip malformed files
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}

	return storage.Filter(entries, opts), nil
}

// Delete removes the entry file for date.
func (s *Store) Delete(ctx context.Context, date time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.entryPath(date)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("%w: deleting file: %v", storage.ErrStorage, err)
	}
	return nil
}

var _ storage.Repository = (*Store)(nil)
