// Package querycache is a process-lifetime cache of query results addressed by
// structured keys. Entries are loaded through fetchers registered per
// namespace and can be overwritten optimistically, invalidated and refetched.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/hai-on-op/hai-staking-service/internal/observability/metrics"
	"github.com/hai-on-op/hai-staking-service/internal/types"
)

var ErrNoFetcher = errors.New("no fetcher registered for namespace")

const (
	pendingWithdrawalSuffix = "-pending-withdrawal"
	statsScope              = "stats"
)

type Key struct {
	Namespace string
	Scope     string
}

func (k Key) String() string {
	return k.Namespace + "/" + k.Scope
}

func AccountKey(namespace string, account types.Address) Key {
	return Key{Namespace: namespace, Scope: account.String()}
}

// PendingWithdrawalKey addresses the query that only tracks the pending
// withdrawal of an account.
func PendingWithdrawalKey(namespace string, account types.Address) Key {
	return Key{Namespace: namespace + pendingWithdrawalSuffix, Scope: account.String()}
}

func StatsKey(namespace string) Key {
	return Key{Namespace: namespace, Scope: statsScope}
}

// Fetcher loads the authoritative value for a key.
type Fetcher func(ctx context.Context, key Key) (any, error)

type entry struct {
	value     any
	updatedAt time.Time
	stale     bool
}

type Cache struct {
	mu        sync.RWMutex
	entries   map[Key]*entry
	fetchers  map[string]Fetcher
	staleTime time.Duration
	now       func() time.Time

	// holds counts the mutations that own an optimistic value of the key;
	// fetched results are not stored while a key is held
	holds map[Key]int
	// generations advance on every Set and Invalidate; a fetch that started
	// under an older generation does not store its result
	generations map[Key]uint64

	locksMu sync.Mutex
	locks   map[Key]*sync.Mutex

	group singleflight.Group
}

func New(staleTime time.Duration) *Cache {
	return &Cache{
		entries:     make(map[Key]*entry),
		fetchers:    make(map[string]Fetcher),
		holds:       make(map[Key]int),
		generations: make(map[Key]uint64),
		locks:       make(map[Key]*sync.Mutex),
		staleTime:   staleTime,
		now:         time.Now,
	}
}

// Register installs the fetcher used for every key of the namespace.
func (c *Cache) Register(namespace string, f Fetcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchers[namespace] = f
}

// Get returns the cached value regardless of staleness.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set overwrites the entry. Fetches already in flight for the key will not
// store their result over it.
func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	c.entries[key] = &entry{value: value, updatedAt: c.now()}
	c.generations[key]++
	c.mu.Unlock()

	c.group.Forget(key.String())
}

// CompareAndSet replaces the value only if the entry still holds old.
// Values are compared with ==, so pointer values compare by identity.
func (c *Cache) CompareAndSet(key Key, old, value any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.value != old {
		return false
	}
	c.entries[key] = &entry{value: value, updatedAt: c.now()}
	c.generations[key]++
	return true
}

// Remove drops the entry entirely.
func (c *Cache) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Invalidate marks the entry stale so that the next Fetch reloads it. The
// reload never joins a fetch that started before the invalidation.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
	c.generations[key]++
	c.mu.Unlock()

	c.group.Forget(key.String())
}

// Hold protects the optimistic values of keys from being overwritten by
// fetches until the returned release function is called. Holds nest.
func (c *Cache) Hold(keys ...Key) func() {
	c.mu.Lock()
	for _, key := range keys {
		c.holds[key]++
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for _, key := range keys {
				if c.holds[key]--; c.holds[key] <= 0 {
					delete(c.holds, key)
				}
			}
		})
	}
}

// store saves a fetched value unless the key is held or was written since
// the fetch started. It returns the value readers should observe.
func (c *Cache) store(ctx context.Context, key Key, value any, generation uint64) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.holds[key] > 0 {
		log.Ctx(ctx).Debug().Str("key", key.String()).Msg("key held by a mutation, fetched value not stored")
		if e, ok := c.entries[key]; ok {
			return e.value
		}
		return value
	}
	if c.generations[key] != generation {
		log.Ctx(ctx).Debug().Str("key", key.String()).Msg("key changed during fetch, fetched value not stored")
		return value
	}

	c.entries[key] = &entry{value: value, updatedAt: c.now()}
	return value
}

// Fetch returns the cached value when it is fresh and loads it otherwise.
func (c *Cache) Fetch(ctx context.Context, key Key) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	fresh := ok && !e.stale && (c.staleTime <= 0 || c.now().Sub(e.updatedAt) < c.staleTime)
	var value any
	if ok {
		value = e.value
	}
	c.mu.RUnlock()

	if fresh {
		metrics.RecordCacheLookup(key.Namespace, "hit")
		return value, nil
	}
	metrics.RecordCacheLookup(key.Namespace, "miss")

	return c.Refetch(ctx, key)
}

// Refetch loads the key through its fetcher and stores the result.
// Concurrent refetches of one key share a single fetcher call, unless the key
// was set or invalidated in between.
func (c *Cache) Refetch(ctx context.Context, key Key) (any, error) {
	c.mu.RLock()
	fetch, ok := c.fetchers[key.Namespace]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoFetcher, key.Namespace)
	}

	value, err, _ := c.group.Do(key.String(), func() (any, error) {
		c.mu.RLock()
		generation := c.generations[key]
		c.mu.RUnlock()

		v, err := fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		return c.store(ctx, key, v, generation), nil
	})
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("key", key.String()).Msg("cache refetch failed")
		return nil, err
	}

	return value, nil
}

// Lock acquires the mutex of the key and returns its release function.
func (c *Cache) Lock(key Key) func() {
	c.locksMu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	c.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// GetAs is Get with a typed result. A value of another type reports false.
func GetAs[T any](c *Cache, key Key) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

func FetchAs[T any](ctx context.Context, c *Cache, key Key) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected cached type %T for %s", v, key)
	}
	return t, nil
}
