package uploadfiles

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"darna/pkg/storage"

	"github.com/google/uuid"
)

const MaxFileSize = 3 * 1024 * 1024

var (
	ErrFileTooLarge    = errors.New("file size exceeds 3MB limit")
	ErrUnsupportedType = errors.New("only jpeg, png and webp images are accepted")
	ErrForeignURL      = errors.New("file is not managed by this storage")
	ErrStorageDisabled = errors.New("file storage is not configured")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Uploader struct {
	store storage.Storage
}

// NewUploader wraps store. A nil store yields an uploader that refuses every upload.
func NewUploader(store storage.Storage) *Uploader {
	return &Uploader{store: store}
}

// Upload stores an image under folder and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	if u.store == nil {
		return "", ErrStorageDisabled
	}
	if header.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), ext)
	if err := u.store.Upload(ctx, key, file, header.Size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return u.store.URL(key), nil
}

func (u *Uploader) Delete(ctx context.Context, fileURL string) error {
	if u.store == nil {
		return ErrForeignURL
	}
	key, ok := u.store.KeyFromURL(fileURL)
	if !ok {
		return ErrForeignURL
	}

	if err := u.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
