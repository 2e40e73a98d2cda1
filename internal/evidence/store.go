// Package evidence stores caregiver-submitted media and hands back
// opaque references. The tracker only ever holds the reference; fetching
// and serving the bytes is the transport layer's problem.
package evidence

import (
	"context"
	"io"
	"time"
)

// Store persists evidence blobs.
type Store interface {
	// Put writes the blob and returns an opaque reference.
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	// URL resolves a reference to a fetchable URL valid for at least ttl.
	URL(ctx context.Context, ref string, ttl time.Duration) (string, error)
}
