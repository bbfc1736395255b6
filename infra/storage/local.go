// Package storage implements the upload store on the local filesystem and
// on S3-compatible object stores.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/config"
	pkgstorage "github.com/sangamhq/sangam/pkg/storage"
)

var (
	_ pkgstorage.Storage = (*LocalStorage)(nil)
	_ pkgstorage.Storage = (*S3Storage)(nil)
)

// LocalStorage writes uploads beneath a single directory and serves them
// via the static file route.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocal creates a local-disk store rooted at cfg.Dir.
func NewLocal(cfg *config.Uploads) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &LocalStorage{dir: cfg.Dir, baseURL: cfg.BaseURL}, nil
}

// Save stores the content under <dir>/<category>/ with a unique name and
// returns the public reference. The original filename only contributes
// its extension; the stored name never collides.
func (s *LocalStorage) Save(
	ctx context.Context,
	category, filename string,
	content io.Reader,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uniqueName(filename)
	categoryDir := filepath.Join(s.dir, category)
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		return "", fmt.Errorf("creating category dir: %w", err)
	}

	f, err := os.Create(filepath.Join(categoryDir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, category, name), nil
}

// Dir returns the root directory uploads are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

func uniqueName(filename string) string {
	return fmt.Sprintf("%d-%s%s",
		time.Now().UnixNano(),
		uuid.New().String()[:8],
		filepath.Ext(filename),
	)
}
