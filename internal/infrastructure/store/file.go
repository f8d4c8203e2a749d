package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

const sessionFile = "session.json"

// FileBackend keeps one JSON document per profile on disk.
type FileBackend struct {
	path string
}

// NewFileBackend stores the session under dir/<profile>/session.json.
func NewFileBackend(dir, profile string) *FileBackend {
	return &FileBackend{path: filepath.Join(dir, profile, sessionFile)}
}

// DefaultDir is the user config directory, e.g. $XDG_CONFIG_HOME/visafrontend.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "visafrontend"), nil
}

func (b *FileBackend) Name() string { return "file" }

// Path returns the session file location.
func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Load(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse session file: %v", domain.ErrStorageCorrupt, err)
	}
	return entries, nil
}

// Save writes to a temp file in the same directory, syncs it and renames it
// over the target.
func (b *FileBackend) Save(_ context.Context, entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, sessionFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp session file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		cleanup()
		return fmt.Errorf("rename session file: %w", err)
	}
	return nil
}

func (b *FileBackend) Remove(_ context.Context) error {
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
