package policy

import (
	"testing"

	"github.com/delayedcache/lacache-go/sim"
	"github.com/stretchr/testify/assert"
)

func TestOrderedBag_PushBackAndOrder(t *testing.T) {
	// GIVEN an empty bag
	b := newOrderedBag()

	// WHEN three entries are pushed
	b.PushBack(sim.CacheEntry{Key: "a", Valid: true, Size: 1})
	b.PushBack(sim.CacheEntry{Key: "b", Valid: true, Size: 2})
	b.PushBack(sim.CacheEntry{Key: "c", Valid: true, Size: 3})

	// THEN Keys reports them head-to-tail in insertion order
	assert.Equal(t, []string{"a", "b", "c"}, b.Keys())
	assert.Equal(t, 3, b.Len())
}

func TestOrderedBag_MoveToBack(t *testing.T) {
	b := newOrderedBag()
	b.PushBack(sim.CacheEntry{Key: "a", Size: 1})
	b.PushBack(sim.CacheEntry{Key: "b", Size: 1})
	b.PushBack(sim.CacheEntry{Key: "c", Size: 1})

	ok := b.MoveToBack("a")

	assert.True(t, ok)
	assert.Equal(t, []string{"b", "c", "a"}, b.Keys())
}

func TestOrderedBag_PopFrontEmpty(t *testing.T) {
	b := newOrderedBag()
	_, ok := b.PopFront()
	assert.False(t, ok)
}

func TestOrderedBag_RemoveMiddleRelinks(t *testing.T) {
	b := newOrderedBag()
	b.PushBack(sim.CacheEntry{Key: "a", Size: 1})
	b.PushBack(sim.CacheEntry{Key: "b", Size: 1})
	b.PushBack(sim.CacheEntry{Key: "c", Size: 1})

	e, ok := b.Remove("b")

	assert.True(t, ok)
	assert.Equal(t, "b", e.Key)
	assert.Equal(t, []string{"a", "c"}, b.Keys())
	assert.False(t, b.Contains("b"))
}

func TestOrderedBag_PushBackDuplicatePanics(t *testing.T) {
	b := newOrderedBag()
	b.PushBack(sim.CacheEntry{Key: "a", Size: 1})

	assert.Panics(t, func() {
		b.PushBack(sim.CacheEntry{Key: "a", Size: 1})
	})
}
