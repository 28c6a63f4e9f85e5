package storage

import (
	"context"
)

// StorageClient defines the interface for basic storage operations.
// Paths are slash-separated and relative to the client's root.
type StorageClient interface {
	// Close releases the underlying client
	Close() error

	// CreateDir creates a directory (and any necessary parents)
	CreateDir(ctx context.Context, dirPath string) error

	// StoreFile stores data at the specified path, replacing what was there
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListDir lists file paths under a directory
	ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error)

	// FileExists checks if a file exists at the specified path
	FileExists(ctx context.Context, filePath string) (bool, error)
}
