package identity

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is an in-memory Store backed by go-cache.
// Expired entries are invisible to Get immediately and purged periodically.
type MemoryStore struct {
	items *cache.Cache
}

// NewMemoryStore creates an empty store. cleanupInterval controls how often
// expired entries are purged; zero disables the janitor.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		items: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	value, found := s.items.Get(key)
	if !found {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

func (s *MemoryStore) Set(key string, value string, expiry time.Duration) error {
	if expiry <= 0 {
		s.items.Set(key, value, cache.NoExpiration)
		return nil
	}
	s.items.Set(key, value, expiry)
	return nil
}

// Delete removes key. Used to simulate a cleared or expired cookie.
func (s *MemoryStore) Delete(key string) {
	s.items.Delete(key)
}

func (s *MemoryStore) Size() int {
	return s.items.ItemCount()
}
