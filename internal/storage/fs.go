package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

var ErrInvalidKey = errors.New("storage: invalid key")

// FSStore keeps blobs as files below a base directory of an afero filesystem.
type FSStore struct {
	fs   afero.Fs
	base string
}

// NewFSStore stores blobs on disk under base (default ./media).
func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./media"
	}
	return NewStore(afero.NewOsFs(), base)
}

// NewStore stores blobs on fs under base.
func NewStore(fs afero.Fs, base string) (*FSStore, error) {
	if err := fs.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base dir %s: %w", base, err)
	}
	return &FSStore{fs: afero.NewBasePathFs(fs, base), base: base}, nil
}

func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if clean == "/" {
		return "", ErrInvalidKey
	}
	return strings.TrimPrefix(clean, "/"), nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(path.Dir("/"+k), 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir for %s: %w", k, err)
	}
	f, err := s.fs.Create("/" + k)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", k, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", k, err)
	}
	return k, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	return s.fs.Open("/" + k)
}

// Delete removes the blob. Deleting a missing key is not an error.
func (s *FSStore) Delete(key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove("/" + k); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", k, err)
	}
	return nil
}
