package prefs

import (
	"time"

	ttlworker "github.com/FloatTech/ttl"
)

// sessionTTL bounds how long a preference outlives its last write. It is
// generous enough to cover any interactive session while guaranteeing the
// store never behaves like cross-session persistence.
const sessionTTL = 12 * time.Hour

// SessionStore is the raw key/value facility preferences are written to.
// Implementations may fail; the Store treats every failure as benign.
type SessionStore interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ttlStore is the default SessionStore: an in-process TTL-bounded map.
// All uploader instances in the process share one namespace, mirroring how
// instances on the same page see each other's writes.
type ttlStore struct {
	cache *ttlworker.Cache[string, string]
}

func newTTLStore() *ttlStore {
	return &ttlStore{cache: ttlworker.NewCache[string, string](sessionTTL)}
}

func (s *ttlStore) Set(key, value string) error {
	s.cache.Set(key, value)
	return nil
}

func (s *ttlStore) Get(key string) (string, error) {
	return s.cache.Get(key), nil
}

func (s *ttlStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}
