package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

// MemoryStore is an in-process Store bounded by an LRU policy. Entries idle
// longer than the TTL are treated as absent.
type MemoryStore struct {
	ttl   time.Duration
	clock clockwork.Clock
	cache *lruCache
}

// NewMemoryStore creates a MemoryStore holding at most maxEntries sessions.
func NewMemoryStore(maxEntries int, ttl time.Duration, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		ttl:   ttl,
		clock: clock,
		cache: newLRUCache(maxEntries),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (domain.QuizSession, error) {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()

	e, ok := m.live(id)
	if !ok {
		return domain.QuizSession{}, ErrSessionNotFound
	}
	m.cache.moveToFront(e)
	return e.value, nil
}

func (m *MemoryStore) Create(_ context.Context, s domain.QuizSession) (domain.QuizSession, error) {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()

	if _, ok := m.live(s.ID); ok {
		return domain.QuizSession{}, ErrSessionExists
	}
	s.Version = 1
	m.cache.put(s.ID, s, m.clock.Now().Add(m.ttl))
	return s, nil
}

func (m *MemoryStore) CompareAndSwap(_ context.Context, s domain.QuizSession) (domain.QuizSession, error) {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()

	e, ok := m.live(s.ID)
	if !ok {
		return domain.QuizSession{}, ErrSessionNotFound
	}
	if e.value.Version != s.Version {
		return domain.QuizSession{}, ErrVersionConflict
	}
	s.Version++
	m.cache.put(s.ID, s, m.clock.Now().Add(m.ttl))
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()

	if e, ok := m.cache.entries[id]; ok {
		m.cache.removeEntry(e)
	}
	return nil
}

// Len returns the number of stored sessions, including expired ones not
// yet reclaimed.
func (m *MemoryStore) Len() int {
	m.cache.mu.Lock()
	defer m.cache.mu.Unlock()
	return len(m.cache.entries)
}

// live returns the entry for id, dropping it if it has expired.
// The caller must hold the cache lock.
func (m *MemoryStore) live(id string) (*entry, bool) {
	e, ok := m.cache.entries[id]
	if !ok {
		return nil, false
	}
	if !m.clock.Now().Before(e.expiresAt) {
		m.cache.removeEntry(e)
		return nil, false
	}
	return e, true
}

// lruCache is a doubly linked LRU list over a map. Its methods assume the
// caller holds mu.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key       string
	value     domain.QuizSession
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) put(key string, value domain.QuizSession, expiresAt time.Time) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.removeEntry(c.tail)
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) removeEntry(e *entry) {
	if e == nil {
		return
	}
	delete(c.entries, e.key)
	c.unlink(e)
}
