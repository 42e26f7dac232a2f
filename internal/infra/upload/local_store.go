// Package upload stores product images on the local disk and serves them
// back through a public URL prefix.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"anha/config"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/service"
	"anha/internal/errors"
)

// allowedExtensions are the image types accepted for product photos.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// localStore writes images under a directory and maps them to URL paths.
type localStore struct {
	dir       string
	publicURL string
}

// NewLocalStore is the constructor for localStore. It creates the upload
// directory if missing.
func NewLocalStore(cfg *config.Config) (service.ImageStore, error) {
	if cfg.Upload == nil || cfg.Upload.Dir == "" {
		return nil, errors.New("upload.dir must be provided")
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	return &localStore{
		dir:       cfg.Upload.Dir,
		publicURL: strings.TrimRight(cfg.Upload.PublicURL, "/"),
	}, nil
}

// Save writes the image under a timestamped name and returns its URL path.
// Only jpg, jpeg and png files are accepted.
func (s *localStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "upload canceled")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", domainerrors.ErrInvalidImageType
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stored := fmt.Sprintf("%s-%d%s", sanitize(base), time.Now().UnixNano(), ext)

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", errors.Wrap(err, "failed to create image file")
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, content); err != nil {
		return "", errors.Wrap(err, "failed to write image file")
	}

	return s.publicURL + "/" + stored, nil
}

// sanitize keeps the stored name safe for both the filesystem and URLs.
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "image"
	}

	return b.String()
}
