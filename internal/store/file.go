package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the snapshot as a YAML document on disk.
type FileStore struct {
	path string
	gate writeGate
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return decode(data)
}

// Save writes to a temp file in the same directory and renames it over the
// old snapshot. Saves run one at a time, and a snapshot older than the last
// one written is dropped.
func (f *FileStore) Save(s Snapshot) error {
	return f.gate.write(s, func() error { return f.save(s) })
}

func (f *FileStore) save(s Snapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".scenes-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
