// Package cache provides a content-addressed artifact cache for rendered
// maze graphs.
//
// Rendering a maze document to SVG or PNG is deterministic, so artifacts
// are keyed by a hash of the document text plus the render options. The
// file-backed implementation serves repeated CLI invocations; the null
// implementation disables caching without branching at call sites.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultDir returns the per-user cache directory for rendered artifacts.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "antmaze"), nil
}
