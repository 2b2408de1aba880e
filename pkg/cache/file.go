package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache implements a file-based cache for CLI usage. Each entry is
// one file holding a small JSON header line followed by the raw artifact
// bytes, so large SVG and PNG payloads are stored without inflation.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entryHeader is the first line of every cache file.
type entryHeader struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	nl := bytes.IndexByte(raw, '\n')
	if nl < 0 {
		// Corrupt entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}
	var header entryHeader
	if err := json.Unmarshal(raw[:nl], &header); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	// Check expiration
	if !header.ExpiresAt.IsZero() && time.Now().After(header.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return raw[nl+1:], true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var header entryHeader
	if ttl > 0 {
		header.ExpiresAt = time.Now().Add(ttl)
	}
	headerData, err := json.Marshal(header)
	if err != nil {
		return err
	}

	raw := make([]byte, 0, len(headerData)+1+len(data))
	raw = append(raw, headerData...)
	raw = append(raw, '\n')
	raw = append(raw, data...)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path. The first two hash chars
// become a subdirectory so one directory never collects every entry.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".entry")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
