package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

type fileEntry struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// FileStore keeps tokens in a JSON file readable only by the current user.
// Every call reads the file, so separate processes observe each other's writes. Writes go
// through a temporary file and a rename, so a reader never sees a partial file.
// Concurrent writers in different processes are last-writer-wins.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// DefaultFilePath returns <user config dir>/bookshelf/tokens.json.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrNoFilePath, err)
	}
	return filepath.Join(dir, "bookshelf", "tokens.json"), nil
}

// NewFileStore creates a store backed by path, creating its directory if needed.
// The file itself is created on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrNoFilePath
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("create token directory: %w", err)
	}
	return &FileStore{path: path, now: time.Now}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the token stored under key. Missing and expired entries yield "".
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", err
	}
	e, ok := entries[key]
	if !ok || s.expired(e) {
		return "", nil
	}
	return e.Token, nil
}

// Set stores token under key. Expired entries of other keys are pruned on the way.
func (s *FileStore) Set(_ context.Context, key, token string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	s.prune(entries)

	e := fileEntry{Token: token}
	if ttl > 0 {
		e.ExpiresAt = s.now().Add(ttl).UTC()
	}
	entries[key] = e

	return s.save(entries)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	s.prune(entries)

	return s.save(entries)
}

func (s *FileStore) expired(e fileEntry) bool {
	return !e.ExpiresAt.IsZero() && !s.now().Before(e.ExpiresAt)
}

func (s *FileStore) prune(entries map[string]fileEntry) {
	for k, e := range entries {
		if s.expired(e) {
			delete(entries, k)
		}
	}
}

// load reads the file; a missing or empty file is an empty store.
func (s *FileStore) load() (map[string]fileEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]fileEntry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	entries := make(map[string]fileEntry)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Join(ErrCorruptTokenFile, err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]fileEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*.tmp")
	if err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write token file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
