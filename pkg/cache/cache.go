// Package cache provides pluggable byte caches used for manifest and
// HTTP response caching: a file-backed default, a Redis backend for
// shared environments, and a null backend that disables caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte values under string keys with a per-entry
// TTL. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and whether the key was present and
	// unexpired. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Hash returns the SHA-256 of data as a 64-character hex string. Cache
// keys are hashed before touching the filesystem so arbitrary key text
// never reaches a path.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
