package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store is the boundary to wherever product images live. The core only
// needs "put bytes, get back a public URL".
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// DiskStore keeps blobs on the local filesystem and serves them from a
// static route. Stands in for a real object store in single-node
// deployments.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("objstore: create dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *DiskStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.Dir, filepath.Base(key))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("objstore: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("objstore: write: %w", err)
	}
	return s.BaseURL + "/" + filepath.Base(key), nil
}
