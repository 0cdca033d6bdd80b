// Package disk stores uploaded assets on the local filesystem.
package disk

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/upload/domain"
)

type Store struct {
	dir       string
	urlPrefix string
}

func New(cfg config.Config) (domain.Store, error) {
	return NewStore(cfg.Upload.Dir, cfg.Upload.URLPrefix)
}

func NewStore(dir, urlPrefix string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", err
	}

	return path.Join(s.urlPrefix, key), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve keeps keys flat inside the upload dir.
func (s *Store) resolve(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", domain.ErrInvalidKey
	}
	return filepath.Join(s.dir, key), nil
}
