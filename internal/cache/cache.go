package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores answers keyed by normalized question. A nil Cache is valid;
// the engine just skips caching.
type Cache interface {
	Get(ctx context.Context, key string) (val string, hit bool, err error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
}

// AnswerKey derives a stable cache key from the model and the normalized
// question. Hashing keeps arbitrary question text out of the keyspace.
func AnswerKey(model, normalizedQuestion string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + normalizedQuestion))
	return "answer:" + hex.EncodeToString(sum[:16])
}
