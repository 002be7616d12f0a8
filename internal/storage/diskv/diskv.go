package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

const fileSuffix = ".json"

// Store implements storage.Repository on a diskv key/value directory, one
// JSON document per date.
type Store struct {
	d      *diskv.Diskv
	now    func() time.Time
	logger *zap.Logger

	mu sync.Mutex // serializes read-modify-write in Upsert
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report unreadable documents.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a new diskv storage backend rooted at dataDir/kv.
func New(dataDir string, opts ...Option) (*Store, error) {
	basePath := filepath.Join(dataDir, "kv")
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating kv directory: %v", storage.ErrStorage, err)
	}
	s := &Store{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// keyToPathTransform lays 2024-03-09 out as 2024/03/09.json.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return &diskv.PathKey{FileName: key + fileSuffix}
	}
	return &diskv.PathKey{
		Path:     parts[:2],
		FileName: parts[2] + fileSuffix,
	}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, fileSuffix)
	return strings.Join(append(append([]string{}, pk.Path...), name), "-")
}

// Close is a no-op for the diskv backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) read(key string) (entry.Entry, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, key, err)
	}
	var e entry.Entry
	if err := json.Unmarshal(val, &e); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: decoding %s: %v", storage.ErrStorage, key, err)
	}
	e.Date = entry.NormalizeDate(e.Date)
	return e, nil
}

// GetByDate reads the document for date.
func (s *Store) GetByDate(ctx context.Context, date time.Time) (entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}
	return s.read(entry.FormatDate(entry.NormalizeDate(date)))
}

// Upsert writes the document for e.Date, preserving identity of an existing one.
func (s *Store) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}
	if e.Date.IsZero() {
		return entry.Entry{}, fmt.Errorf("%w: entry date must be set", storage.ErrValidation)
	}

	key := entry.FormatDate(entry.NormalizeDate(e.Date))
	var existing *entry.Entry
	cur, err := s.read(key)
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
	val, err := json.Marshal(stamped)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: encoding entry: %v", storage.ErrStorage, err)
	}
	if err := s.d.Write(key, val); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: writing %s: %v", storage.ErrStorage, key, err)
	}
	return stamped, nil
}

// List returns entries matching the given options.
func (s *Store) List(ctx context.Context, opts storage.ListOptions) ([]entry.Entry, error) {
	var entries []entry.Entry
	for key := range s.d.Keys(ctx.Done()) {
		e, err := s.read(key)
		if err != nil {
			s.logger.Warn("skipping unreadable entry", zap.String("key", key), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return storage.Filter(entries, opts), nil
}

// Delete removes the document for date.
func (s *Store) Delete(ctx context.Context, date time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := entry.FormatDate(entry.NormalizeDate(date))
	if !s.d.Has(key) {
		return storage.ErrNotFound
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("%w: erasing %s: %v", storage.ErrStorage, key, err)
	}
	return nil
}

var _ storage.Repository = (*Store)(nil)
