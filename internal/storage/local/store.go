package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/courtside/courtside/internal/storage"
)

// Store keeps objects as plain files below a root directory.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve local store root: %w", err)
	}
	return &Store{root: abs}, nil
}

func (s *Store) Put(ctx context.Context, key string, body io.Reader, _ int64, _ storage.PutOptions) (storage.ObjectInfo, error) {
	target, err := s.resolve(key)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("create object dir: %w", err)
	}
	file, err := os.Create(target)
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("create object %q: %w", key, err)
	}
	_, copyErr := io.Copy(file, body)
	closeErr := file.Close()
	if copyErr != nil {
		return storage.ObjectInfo{}, fmt.Errorf("write object %q: %w", key, copyErr)
	}
	if closeErr != nil {
		return storage.ObjectInfo{}, fmt.Errorf("close object %q: %w", key, closeErr)
	}
	return s.Stat(ctx, key)
}

func (s *Store) Get(_ context.Context, key string) (io.ReadCloser, error) {
	target, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(target)
	if err != nil {
		return nil, mapPathErr(key, err)
	}
	return file, nil
}

func (s *Store) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	target, err := s.resolve(key)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	info, err := os.Stat(target)
	if err != nil {
		return storage.ObjectInfo{}, mapPathErr(key, err)
	}
	if info.IsDir() {
		return storage.ObjectInfo{}, fmt.Errorf("object %q: %w", key, storage.ErrObjectNotFound)
	}
	return storage.ObjectInfo{Key: key, Size: info.Size(), LastModified: info.ModTime().UTC()}, nil
}

func (s *Store) resolve(key string) (string, error) {
	key = strings.TrimSpace(strings.TrimPrefix(key, "/"))
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func mapPathErr(key string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("object %q: %w", key, storage.ErrObjectNotFound)
	}
	return fmt.Errorf("open object %q: %w", key, err)
}

var _ storage.ObjectStore = (*Store)(nil)
