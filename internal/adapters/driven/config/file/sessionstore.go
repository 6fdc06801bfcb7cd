package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

const sessionFileName = "session.toml"

// SessionStore persists credential fields in session.toml.
// The file is replaced atomically on every write and removed when empty.
// Each write re-reads the file first, so it only overwrites the key it
// changes. Two processes writing in the same instant still race.
type SessionStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]string
}

// NewSessionStore opens the session file in dir, creating dir if needed.
// If dir is empty, DefaultDir is used.
func NewSessionStore(dir string) (*SessionStore, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	s := &SessionStore{
		filePath: filepath.Join(dir, sessionFileName),
		values:   make(map[string]string),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the value for key and whether it exists.
func (s *SessionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok, nil
}

// Set overwrites the value for key and persists immediately.
func (s *SessionStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.readFile()
	if err != nil {
		return err
	}
	next[key] = value
	if err := s.write(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Remove deletes key and persists immediately.
func (s *SessionStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.readFile()
	if err != nil {
		return err
	}
	if _, ok := next[key]; !ok {
		s.values = next
		return nil
	}
	delete(next, key)
	if err := s.write(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Reload re-reads the session file. A missing file is an empty session.
func (s *SessionStore) Reload() error {
	loaded, err := s.readFile()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values = loaded
	s.mu.Unlock()
	return nil
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.filePath
}

// Watch reloads the session whenever another process rewrites the file and
// signals each reload on the returned channel. The channel is closed when
// ctx is done.
func (s *SessionStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// The directory is watched because atomic replacement swaps the file's inode.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.handleEvent(event) {
					continue
				}
				if err := s.Reload(); err != nil {
					logger.Warn("session watch: %v", err)
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("session watch: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleEvent reports whether event affects the session file.
func (s *SessionStore) handleEvent(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != sessionFileName {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// readFile decodes the session file as it is on disk now. Writes start from
// this rather than the cache so keys changed by another process survive.
func (s *SessionStore) readFile() (map[string]string, error) {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	loaded := make(map[string]string)
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", s.filePath, err)
	}
	return loaded, nil
}

// write replaces the session file with values (caller must hold lock).
func (s *SessionStore) write(values map[string]string) error {
	if len(values) == 0 {
		if err := os.Remove(s.filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}

	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
