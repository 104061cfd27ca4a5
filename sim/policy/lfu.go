package policy

import "github.com/delayedcache/lacache-go/sim"

// lfuSet evicts by lowest touch-frequency, breaking ties by earliest
// position in residency order (the order entries were last written). A
// hit still moves the entry to the back of that order, matching the
// original's insertBack-on-every-write, even though eviction never
// consults position directly except to break ties.
//
// Grounded in original_source's cache_lfu.cpp / cache_common.hpp LFUQueue.
type lfuSet struct {
	sizeTracker
	bag   *orderedBag
	freqs map[string]int64
}

func newLFUSet(capacityBytes uint64) *lfuSet {
	return &lfuSet{
		sizeTracker: newSizeTracker(capacityBytes),
		bag:         newOrderedBag(),
		freqs:       make(map[string]int64),
	}
}

func (s *lfuSet) Touch(key string, size uint64) {
	s.recordSize(key, size)
	s.freqs[key]++
}

func (s *lfuSet) Contains(key string) bool { return s.bag.Contains(key) }

func (s *lfuSet) evictOne() {
	var victim string
	var min int64 = -1
	s.bag.Each(func(e sim.CacheEntry) {
		f := s.freqs[e.Key]
		if min == -1 || f < min {
			min = f
			victim = e.Key
		}
	})
	e, _ := s.bag.Remove(victim)
	s.usedBytes -= e.Size
	delete(s.freqs, victim)
}

func (s *lfuSet) Write(key string, packet *sim.Packet) sim.CacheEntry {
	if e, ok := s.bag.Remove(key); ok {
		s.bag.PushBack(e)
		return e
	}
	size := s.sizeOf(key)
	for s.usedBytes+size > s.capacityBytes && s.bag.Len() > 0 {
		s.evictOne()
	}
	e := sim.CacheEntry{Key: key, Valid: true, Size: size}
	s.bag.PushBack(e)
	s.usedBytes += size
	return e
}

func (s *lfuSet) WriteQ(queue []*sim.Packet) sim.CacheEntry {
	return s.Write(writeQTail(queue).Key, writeQTail(queue))
}

func (s *lfuSet) InitTrace(keys []string) {}
