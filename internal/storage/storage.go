// Package storage is the object store file fields write to. Uploads return a
// public URL that is saved into the record; nothing else about the object is
// tracked (no dedup, no resumability).
package storage

import (
	"context"
	"io"
)

// Store uploads an object into a bucket and returns its public URL.
type Store interface {
	Upload(ctx context.Context, bucket, filename string, data io.Reader) (string, error)
}
