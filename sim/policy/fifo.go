package policy

import "github.com/delayedcache/lacache-go/sim"

// fifoSet never reorders on a hit; eviction always takes the oldest
// admitted entry. Grounded in original_source's FIFOQueue
// (cache_common.hpp): insertBack only on first admission, popFront to
// evict.
type fifoSet struct {
	sizeTracker
	bag *orderedBag
}

func newFIFOSet(capacityBytes uint64) *fifoSet {
	return &fifoSet{sizeTracker: newSizeTracker(capacityBytes), bag: newOrderedBag()}
}

func (s *fifoSet) Touch(key string, size uint64) { s.recordSize(key, size) }

func (s *fifoSet) Contains(key string) bool { return s.bag.Contains(key) }

func (s *fifoSet) Write(key string, packet *sim.Packet) sim.CacheEntry {
	if e, ok := s.bag.Get(key); ok {
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

func (s *fifoSet) WriteQ(queue []*sim.Packet) sim.CacheEntry {
	return s.Write(writeQTail(queue).Key, writeQTail(queue))
}

func (s *fifoSet) InitTrace(keys []string) {}
