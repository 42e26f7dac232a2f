package service

import (
	"context"
	"io"
)

// ImageStore persists uploaded product images and returns their public URL
// path.
type ImageStore interface {
	// Save writes the image and returns the URL path it will be served
	// from. The original filename is only used for its extension.
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}
