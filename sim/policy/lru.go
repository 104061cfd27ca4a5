package policy

import "github.com/delayedcache/lacache-go/sim"

// lruSet is the plain least-recently-used policy: residency order is the
// recency order. Touch and Write both refresh a hit to the back; eviction
// always takes the head.
//
// Grounded in original_source's cache_common.hpp LRUQueue (insertBack on
// touch/write, popFront on evict) wrapped the way cache_lfu.cpp wraps
// LFUQueue for its concrete cache-set.
type lruSet struct {
	sizeTracker
	bag *orderedBag
}

func newLRUSet(capacityBytes uint64) *lruSet {
	return &lruSet{sizeTracker: newSizeTracker(capacityBytes), bag: newOrderedBag()}
}

func (s *lruSet) Touch(key string, size uint64) {
	s.recordSize(key, size)
	if s.bag.Contains(key) {
		s.bag.MoveToBack(key)
	}
}

func (s *lruSet) Contains(key string) bool { return s.bag.Contains(key) }

func (s *lruSet) Write(key string, packet *sim.Packet) sim.CacheEntry {
	if e, ok := s.bag.Remove(key); ok {
		s.bag.PushBack(e)
		return e
	}
	size := s.sizeOf(key)
	for s.usedBytes+size > s.capacityBytes && s.bag.Len() > 0 {
		victim, _ := s.bag.PopFront()
		s.usedBytes -= victim.Size
	}
	e := sim.CacheEntry{Key: key, Valid: true, Size: size}
	s.bag.PushBack(e)
	s.usedBytes += size
	return e
}

func (s *lruSet) WriteQ(queue []*sim.Packet) sim.CacheEntry {
	return s.Write(writeQTail(queue).Key, writeQTail(queue))
}

func (s *lruSet) InitTrace(keys []string) {}
