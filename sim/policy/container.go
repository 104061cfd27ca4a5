package policy

import "github.com/delayedcache/lacache-go/sim"

// orderedBag is the shared intrusive container every replacement policy in
// this package builds on: a doubly linked list of resident entries plus a
// hash map from key to list node. It gives O(1) membership, O(1)
// move-to-tail, O(1) erase-by-key, and O(n) scan-for-extremum (used by the
// policies that pick a victim by frequency, recency gap, or payoff score
// rather than simple position).
//
// Grounded in the free-list doubly linked list the teacher's KVCacheState
// uses for its GPU block pool (sim/kvcache.go's PrevFree/NextFree chain),
// generalized here from KV blocks to arbitrary resident cache entries.
type orderedBag struct {
	head, tail *bagNode
	index      map[string]*bagNode
}

type bagNode struct {
	entry      sim.CacheEntry
	prev, next *bagNode
}

func newOrderedBag() *orderedBag {
	return &orderedBag{index: make(map[string]*bagNode)}
}

func (b *orderedBag) Len() int { return len(b.index) }

func (b *orderedBag) Contains(key string) bool {
	_, ok := b.index[key]
	return ok
}

func (b *orderedBag) Get(key string) (sim.CacheEntry, bool) {
	n, ok := b.index[key]
	if !ok {
		return sim.CacheEntry{}, false
	}
	return n.entry, true
}

// PushBack inserts a new entry at the tail. Panics if the key is already
// resident — callers must Remove (or MoveToBack) first.
func (b *orderedBag) PushBack(e sim.CacheEntry) {
	if _, ok := b.index[e.Key]; ok {
		panic("policy: orderedBag.PushBack on already-resident key " + e.Key)
	}
	n := &bagNode{entry: e}
	b.linkBack(n)
	b.index[e.Key] = n
}

func (b *orderedBag) linkBack(n *bagNode) {
	n.next = nil
	if b.tail != nil {
		b.tail.next = n
		n.prev = b.tail
		b.tail = n
	} else {
		b.head, b.tail = n, n
		n.prev = nil
	}
}

func (b *orderedBag) unlink(n *bagNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		b.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		b.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// Remove erases the given key, returning its entry.
func (b *orderedBag) Remove(key string) (sim.CacheEntry, bool) {
	n, ok := b.index[key]
	if !ok {
		return sim.CacheEntry{}, false
	}
	b.unlink(n)
	delete(b.index, key)
	return n.entry, true
}

// MoveToBack moves a resident key to the tail (most-recently-used end).
func (b *orderedBag) MoveToBack(key string) bool {
	n, ok := b.index[key]
	if !ok {
		return false
	}
	b.unlink(n)
	b.linkBack(n)
	return true
}

// PopFront removes and returns the head (least-recently-used / oldest)
// entry. Used by FIFO, the FIFO arm of 2Q, and the ghost set of LRU-K.
func (b *orderedBag) PopFront() (sim.CacheEntry, bool) {
	if b.head == nil {
		return sim.CacheEntry{}, false
	}
	e := b.head.entry
	b.unlink(b.head)
	delete(b.index, e.Key)
	return e, true
}

// Each calls fn for every resident entry in list order (head to tail).
// Stopping early is not supported — policies that need an extremum scan
// visit every entry regardless, per spec.md's O(n) scan-for-extremum.
func (b *orderedBag) Each(fn func(sim.CacheEntry)) {
	for n := b.head; n != nil; n = n.next {
		fn(n.entry)
	}
}

// Keys returns resident keys in list order. Used sparingly (debug paths);
// prefer Each in hot loops to avoid the allocation.
func (b *orderedBag) Keys() []string {
	keys := make([]string, 0, len(b.index))
	for n := b.head; n != nil; n = n.next {
		keys = append(keys, n.entry.Key)
	}
	return keys
}
