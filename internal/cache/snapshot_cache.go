package cache

import (
	"errors"
	"sync"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Cache = (*SnapshotCache)(nil)

const megabyte = 1024 * 1024

// SnapshotCache keeps generation state only for keys with a fetch in flight,
// so its bookkeeping stays bounded by the number of concurrent fetches.
type SnapshotCache struct {
	store      *freecache.Cache
	ttlSeconds int

	mu          sync.Mutex
	generations map[string]*generation
}

type generation struct {
	issued    uint64
	committed uint64
	inFlight  int
}

func NewSnapshotCache(sizeMB, ttlSeconds int) *SnapshotCache {
	return &SnapshotCache{
		store:       freecache.NewCache(sizeMB * megabyte),
		ttlSeconds:  ttlSeconds,
		generations: make(map[string]*generation),
	}
}

func (c *SnapshotCache) Get(key string) ([]byte, bool) {
	value, err := c.store.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("snapshot cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return value, true
}

// Begin marks the start of a fetch for key and returns its generation token.
// Every Begin must be followed by a Commit or a Cancel with the returned token.
func (c *SnapshotCache) Begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	gen, ok := c.generations[key]
	if !ok {
		gen = &generation{}
		c.generations[key] = gen
	}
	gen.issued++
	gen.inFlight++
	return gen.issued
}

// Commit stores value for key if no newer fetch or invalidation has been
// committed since the fetch with the given token started.
func (c *SnapshotCache) Commit(key string, token uint64, value []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	gen, ok := c.generations[key]
	if !ok {
		log.Warnf("snapshot cache [%s]: commit without a fetch in flight", key)
		return false
	}
	defer c.finish(key, gen)

	if token <= gen.committed {
		log.Tracef("snapshot cache [%s]: discarding stale value (token %d <= %d)", key, token, gen.committed)
		return false
	}
	gen.committed = token

	if err := c.store.Set([]byte(key), value, c.ttlSeconds); err != nil {
		// value too large for the cache, next read just fetches again
		log.Warnf("snapshot cache set [%s]: %s", key, err)
		c.store.Del([]byte(key))
		return false
	}
	return true
}

// Cancel ends a fetch that will not commit, e.g. because it failed.
func (c *SnapshotCache) Cancel(key string, _ uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen, ok := c.generations[key]; ok {
		c.finish(key, gen)
	}
}

// finish drops the state of key once its last fetch is done.
// Tokens restart from 1 afterwards, no older token is left to compare against.
func (c *SnapshotCache) finish(key string, gen *generation) {
	if gen.inFlight > 0 {
		gen.inFlight--
	}
	if gen.inFlight == 0 {
		delete(c.generations, key)
	}
}

// Invalidate drops the value for key and discards every fetch started before the call.
func (c *SnapshotCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen, ok := c.generations[key]; ok {
		gen.issued++
		gen.committed = gen.issued
	}
	c.store.Del([]byte(key))
}

func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, gen := range c.generations {
		gen.issued++
		gen.committed = gen.issued
	}
	c.store.Clear()
}

func (c *SnapshotCache) tracked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.generations)
}
