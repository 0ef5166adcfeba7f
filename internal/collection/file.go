package collection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores a collection snapshot as a JSON file.
// Saves go through a temp file in the same directory followed by a rename,
// so readers see either the previous or the new snapshot.
type FileBackend struct {
	name string
	path string
}

// NewFileBackend returns a backend for the file at path. The collection
// name is the file name without its extension.
func NewFileBackend(path string) *FileBackend {
	base := filepath.Base(path)
	return &FileBackend{
		name: strings.TrimSuffix(base, filepath.Ext(base)),
		path: path,
	}
}

// FileBackendIn returns the backend for collection name under dir.
func FileBackendIn(dir, name string) *FileBackend {
	return &FileBackend{name: name, path: filepath.Join(dir, name+".json")}
}

func (b *FileBackend) Name() string { return b.name }

// Path returns the snapshot file path.
func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", b.path, err)
	}
	return data, true, nil
}

func (b *FileBackend) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}
