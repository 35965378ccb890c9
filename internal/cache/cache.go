package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores encoded score results by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a scope (lexicon fingerprint and window) and the
// normalized text. Results computed under another scope never collide.
func Key(scope, normalized string) string {
	hash := sha256.Sum256([]byte(scope + "\x00" + normalized))
	return "wordbank-v1-" + hex.EncodeToString(hash[:])
}
