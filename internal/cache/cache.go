package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/mam276/loan-default-dashboard/internal/model"
)

// Cache stores encoded parsed artifacts so repeated loads of an unchanged
// file can skip re-parsing. Caching is a performance optimization only: a
// miss always falls back to parsing the source file, which must yield an
// equivalent result.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// New builds a cache from configuration: layered (memory + disk) when a
// disk directory is set, memory-only otherwise, nil when disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir != "" {
		return NewLayered(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
	}
	return NewMemory(cfg.MemoryTTL, 10*time.Minute)
}

// FileKey derives a cache key from an artifact path and its current
// modification stamp. A rewritten file gets a fresh key, so a stale entry
// is never served for changed data.
func FileKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	raw := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	sum := sha256.Sum256([]byte(raw))
	return "loandash:v1:" + hex.EncodeToString(sum[:]), nil
}
