package domain

import (
	"context"
	"errors"
	"io"
)

// Store persists uploaded assets. Put returns the path under which the asset
// is served, relative to the public base URL.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*Result, error)
}

type UploadRequest struct {
	Filename string
	Body     io.Reader
}

// Result mirrors the response shape of hosted image services so form
// clients can read either url or secure_url.
type Result struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	SecureURL   string `json:"secure_url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// allowedContentTypes lists the raster formats accepted for upload. SVG is
// excluded because uploads are served from the admin origin and SVG can
// carry script.
var allowedContentTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// Allowed reports whether a sniffed content type may be stored.
func Allowed(contentType string) bool {
	_, ok := allowedContentTypes[contentType]
	return ok
}

var (
	ErrEmptyFile       = errors.New("empty_file")
	ErrTooLarge        = errors.New("file_too_large")
	ErrUnsupportedType = errors.New("unsupported_file_type")
	ErrInvalidKey      = errors.New("invalid_key")
)
