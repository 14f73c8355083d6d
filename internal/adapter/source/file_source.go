package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ProcessedDir is the directory, next to the source file, that imported files
// are moved into.
const ProcessedDir = "processed"

// FileSource reads records from a file on disk and archives it after import.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Open opens the file for reading.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Open(s.path)
}

// Archive moves the file into the processed directory beside it, replacing
// any earlier file with the same name, and returns the new path.
func (s *FileSource) Archive(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(filepath.Dir(s.path), ProcessedDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	dst := filepath.Join(dir, filepath.Base(s.path))

	// os.Rename does not replace an existing file on every platform.
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("replace %s: %w", dst, err)
	}

	if err := os.Rename(s.path, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", s.path, err)
	}

	return dst, nil
}
