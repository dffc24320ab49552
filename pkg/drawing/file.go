package drawing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/cabledraw/pkg/errors"
)

// FileStore stores drawings below a root directory.
type FileStore struct {
	root string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "drawings directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create drawings dir: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// Root returns the store's root directory.
func (s *FileStore) Root() string { return s.root }

// Path returns the file path of k after validating it.
func (s *FileStore) Path(k Key) (string, error) {
	if err := k.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(s.root, k.AssemblyID, k.Revision, k.FileName()), nil
}

// Exists reports whether a drawing is stored under k.
func (s *FileStore) Exists(_ context.Context, k Key) (bool, error) {
	path, err := s.Path(k)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the drawing stored under k.
func (s *FileStore) Read(_ context.Context, k Key) ([]byte, error) {
	path, err := s.Path(k)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeDrawingNotFound, "drawing %s not found", k.URL())
	}
	if err != nil {
		return nil, fmt.Errorf("read drawing: %w", err)
	}
	return data, nil
}

// Write stores data under k. The file appears under its final name only once
// it is complete.
func (s *FileStore) Write(ctx context.Context, k Key, data []byte) error {
	path, err := s.Path(k)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create drawing dir: %w", err)
	}
	if err := writeAtomic(dir, path, data); err != nil {
		return fmt.Errorf("write drawing: %w", err)
	}
	return nil
}

// Clear removes every stored drawing and returns how many assemblies were
// dropped.
func (s *FileStore) Clear() (int, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			return n, err
		}
		if e.IsDir() {
			n++
		}
	}
	return n, nil
}

func writeAtomic(dir, dest string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return err
	}
	_ = syncDir(dir)
	return nil
}

// syncDir flushes directory metadata so the rename survives a crash.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
