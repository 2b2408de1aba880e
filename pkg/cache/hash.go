package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// RenderKeyOpts carries the render options that change the produced
// artifact and therefore the cache key.
type RenderKeyOpts struct {
	Format string `json:"format"`
}

// RenderKey generates a cache key for a rendered maze graph from the
// document text and the render options.
func RenderKey(doc []byte, opts RenderKeyOpts) string {
	return hashKey("render", Hash(doc), opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
