package icons

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes icons to a local directory served by the HTTP surface.
type FileStore struct {
	dir           string
	publicBaseURL string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir, publicBaseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create icon dir: %w", err)
	}
	return &FileStore{dir: dir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Dir is the directory icons are written to.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid icon name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write icon %s: %w", name, err)
	}
	return s.publicBaseURL + "/" + name, nil
}
