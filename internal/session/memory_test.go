package session

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

const testTTL = 30 * time.Minute

func newTestMemoryStore(maxEntries int) (*MemoryStore, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewMemoryStore(maxEntries, testTTL, clock), clock
}

func TestMemoryStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestMemoryStore(10)

	created, err := store.Create(ctx, domain.NewQuizSession("a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Create(ctx, domain.NewQuizSession("a"))
	assert.ErrorIs(t, err, ErrSessionExists)
}

func TestMemoryStore_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestMemoryStore(10)

	s, err := store.Create(ctx, domain.NewQuizSession("a"))
	require.NoError(t, err)

	s.Score, s.Answered = 1, true
	swapped, err := store.CompareAndSwap(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, int64(2), swapped.Version)
	assert.Equal(t, 1, swapped.Score)

	// A writer holding the old version loses.
	_, err = store.CompareAndSwap(ctx, s)
	assert.ErrorIs(t, err, ErrVersionConflict)

	_, err = store.CompareAndSwap(ctx, domain.QuizSession{ID: "missing", Version: 1})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestMemoryStore(10)

	s, err := store.Create(ctx, domain.NewQuizSession("a"))
	require.NoError(t, err)

	clock.Advance(testTTL - time.Second)
	s, err = store.CompareAndSwap(ctx, s)
	require.NoError(t, err, "write refreshes the TTL")

	clock.Advance(testTTL - time.Second)
	_, err = store.Get(ctx, "a")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, store.Len(), "expired entry is reclaimed")

	_, err = store.Create(ctx, domain.NewQuizSession("a"))
	assert.NoError(t, err, "expired ID can be reused")
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestMemoryStore(10)

	_, err := store.Create(ctx, domain.NewQuizSession("a"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Eviction(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestMemoryStore(2)

	for _, id := range []string{"a", "b"} {
		_, err := store.Create(ctx, domain.NewQuizSession(id))
		require.NoError(t, err)
	}

	// Touch "a" so "b" is least recently used.
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	_, err = store.Create(ctx, domain.NewQuizSession("c"))
	require.NoError(t, err)

	_, err = store.Get(ctx, "a")
	assert.NoError(t, err, "a was accessed recently, should not be evicted")
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrSessionNotFound, "b should have been evicted")
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

// --- LRU list unit tests ---

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)
	exp := time.Now().Add(time.Hour)

	c.put("a", domain.QuizSession{ID: "a", Score: 1}, exp)
	c.put("a", domain.QuizSession{ID: "a", Score: 2}, exp)

	require.Len(t, c.entries, 1)
	assert.Equal(t, 2, c.entries["a"].value.Score)
	assert.Same(t, c.head, c.tail)
}

func TestLRUCache_RemoveKeepsListConsistent(t *testing.T) {
	c := newLRUCache(3)
	exp := time.Now().Add(time.Hour)
	for _, k := range []string{"a", "b", "c"} {
		c.put(k, domain.QuizSession{ID: k}, exp)
	}

	c.removeEntry(c.entries["b"])

	assert.Equal(t, "c", c.head.key)
	assert.Equal(t, "a", c.tail.key)
	assert.Same(t, c.tail, c.head.next)
	assert.Same(t, c.head, c.tail.prev)
}
