// Package localstore keeps a single local profile in a JSON key-value file.
// It backs the quiz and reminder settings when no database is configured.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

// Keys of the persisted values.
const (
	KeyAttempts = "lugatlab_attempts"
	KeyProgress = "lugatlab_progress"
	KeySettings = "lugatlab_settings"
)

// MaxAttempts is how many attempts are kept, newest first.
const MaxAttempts = 30

// Store is a JSON file holding one value per key. Every write replaces the
// file atomically.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
	log  *slog.Logger
	now  func() time.Time
}

// Open loads the store at path. A missing or empty file yields an empty store.
func Open(path string, log *slog.Logger) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
		log:  log.With("adapter", "localstore"),
		now:  time.Now,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("localstore: read %s: %w: %w", path, domain.ErrStorage, err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("localstore: decode %s: %w: %w", path, domain.ErrStorage, err)
	}
	if s.data == nil {
		s.data = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Ping reports whether the directory of the backing file is reachable.
func (s *Store) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("localstore: %w: %w", domain.ErrStorage, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("localstore: %s is not a directory: %w", dir, domain.ErrStorage)
	}
	return nil
}

// view decodes key into v. A missing or malformed value leaves v untouched.
func view[T any](s *Store, key string, v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decode(key, v)
}

// modify decodes key into a fresh T, applies fn and persists the result.
// Inside a transaction the prior value of key is journaled first.
func modify[T any](ctx context.Context, s *Store, key string, fn func(v *T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v T
	s.decode(key, &v)
	if err := fn(&v); err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: encode %s: %w", key, err)
	}

	prev, had := s.data[key]
	if j := journalFromCtx(ctx); j != nil {
		j.record(key, prev, had)
	}
	s.data[key] = raw
	if err := s.flush(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *Store) decode(key string, v any) {
	raw, ok := s.data[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("ignoring malformed value", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// rollback puts back the journaled keys. Keys the transaction never wrote
// keep whatever was stored meanwhile.
func (s *Store) rollback(j *journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(j.prior) == 0 {
		return nil
	}
	for key, p := range j.prior {
		if p.had {
			s.data[key] = p.raw
		} else {
			delete(s.data, key)
		}
	}
	return s.flush()
}

// flush writes the whole store. Callers hold s.mu.
func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("localstore: %w: %w", domain.ErrStorage, err)
	}
	if err := atomicWriteJSON(s.path, s.data); err != nil {
		return fmt.Errorf("localstore: write %s: %w: %w", s.path, domain.ErrStorage, err)
	}
	return nil
}

func atomicWriteJSON(path string, data any) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
