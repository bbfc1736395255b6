// Package storage abstracts where uploaded files live. Handlers store
// bytes and persist the returned reference; serving the bytes back is the
// transport's concern.
package storage

import (
	"context"
	"io"
)

// Categories partition uploads by purpose; each maps to a path segment
// under the public upload prefix.
const (
	CategoryIdentity = "aadhaar"
	CategoryPhoto    = "photos"
	CategoryProof    = "proofs"
)

// Storage persists uploaded files and returns the reference under which
// they are served. References are relative paths, not content hashes; no
// deduplication or integrity checking happens here.
type Storage interface {
	// Save stores the content under the category and returns the
	// public reference.
	Save(ctx context.Context, category, filename string, content io.Reader) (string, error)
}
