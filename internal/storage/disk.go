package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes objects under a local root directory and serves them from
// a static route. Object names are random so uploads never collide.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates the root directory if needed. baseURL is the public
// prefix the static route serves root under.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{root: root, baseURL: baseURL}, nil
}

func (s *DiskStore) Upload(ctx context.Context, bucket, filename string, data io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := filepath.Join(bucket, uuid.NewString()+filepath.Ext(filename))
	path := filepath.Join(s.root, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create bucket dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, data); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write object: %w", err)
	}
	return s.baseURL + "/" + filepath.ToSlash(key), nil
}
