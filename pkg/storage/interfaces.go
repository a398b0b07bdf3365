package storage

import (
	"context"
	"io"
)

type Storage interface {
	Upload(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) error
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectKey string) error
	// URL returns the public address of an object.
	URL(objectKey string) string
	// KeyFromURL is the inverse of URL; ok is false for foreign URLs.
	KeyFromURL(url string) (key string, ok bool)
}

type ProviderConfig interface {
	Validate() error
}
