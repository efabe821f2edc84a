package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// FileStorage keeps generated documents such as archived payslips.
type FileStorage interface {
	// Upload stores the content under path and returns the cleaned key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file; a missing file yields ErrFileNotFound
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// GetURL returns the public URL of a stored file
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
