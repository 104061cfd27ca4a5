package policy

import "github.com/delayedcache/lacache-go/sim"

// lruK is the backward-K-distance depth used by LRU-K, taken verbatim
// from original_source's cache_lruk.cpp.
const lruK = 4

// lruKSet is LRU-K: a key must be referenced lruK times (tracked in a
// ghost set while not yet resident) before it is eligible for admission.
// Among resident entries, the victim is the one with the largest gap
// since its lruK-th most recent reference ("backward K-distance").
//
// The ghost set itself is a plain FIFO, bounded at 4×capacity bytes, per
// original_source's cache_lruk.cpp / TQQueue.
type lruKSet struct {
	capacityBytes uint64
	usedBytes     uint64
	usedGhost     uint64
	timer         int64
	sizes         map[string]uint64
	history       map[string][]int64 // up to the last lruK touch timestamps, oldest first
	ghostHits     map[string]int     // touches while non-resident; erased on promotion
	resident      *orderedBag
	ghost         *orderedBag
}

func newLRUKSet(capacityBytes uint64) *lruKSet {
	return &lruKSet{
		capacityBytes: capacityBytes,
		sizes:         make(map[string]uint64),
		history:       make(map[string][]int64),
		ghostHits:     make(map[string]int),
		resident:      newOrderedBag(),
		ghost:         newOrderedBag(),
	}
}

// Touch maintains two independent counters, per original_source's
// cache_common.hpp TQQueue: history (the K-distance timestamp vector,
// used only for victim scoring once resident) and ghostHits (the
// admission-eligibility counter, incremented only while the key is not
// yet resident and erased via HisFreqs/History.erase_elem on
// promotion — see cache_lruk.cpp).
func (s *lruKSet) Touch(key string, size uint64) {
	if _, ok := s.sizes[key]; !ok {
		s.sizes[key] = size
	}
	s.timer++
	h := append(s.history[key], s.timer)
	if len(h) > lruK {
		h = h[len(h)-lruK:]
	}
	s.history[key] = h

	if !s.resident.Contains(key) {
		s.ghostHits[key]++
		if !s.ghost.Contains(key) {
			s.ghost.PushBack(sim.CacheEntry{Key: key, Valid: true, Size: size})
			s.usedGhost += size
			for s.usedGhost > 4*s.capacityBytes && s.ghost.Len() > 0 {
				victim, _ := s.ghost.PopFront()
				s.usedGhost -= victim.Size
			}
		}
	}
}

func (s *lruKSet) Contains(key string) bool { return s.resident.Contains(key) }

func (s *lruKSet) kDistance(key string) int64 {
	h := s.history[key]
	if len(h) < lruK {
		return 1<<62 - 1 // not enough history: maximally evictable
	}
	return s.timer - h[0]
}

func (s *lruKSet) evictOne() {
	var victim string
	var maxDist int64 = -1
	s.resident.Each(func(e sim.CacheEntry) {
		d := s.kDistance(e.Key)
		if d > maxDist {
			maxDist = d
			victim = e.Key
		}
	})
	e, _ := s.resident.Remove(victim)
	s.usedBytes -= e.Size
}

func (s *lruKSet) Write(key string, packet *sim.Packet) sim.CacheEntry {
	if e, ok := s.resident.Get(key); ok {
		return e
	}
	if s.ghostHits[key] < lruK {
		return sim.CacheEntry{Key: key, Valid: false, Size: s.sizes[key]}
	}
	if e, ok := s.ghost.Remove(key); ok {
		s.usedGhost -= e.Size
	}
	delete(s.ghostHits, key)
	size := s.sizes[key]
	for s.usedBytes+size > s.capacityBytes && s.resident.Len() > 0 {
		s.evictOne()
	}
	e := sim.CacheEntry{Key: key, Valid: true, Size: size}
	s.resident.PushBack(e)
	s.usedBytes += size
	return e
}

func (s *lruKSet) WriteQ(queue []*sim.Packet) sim.CacheEntry {
	return s.Write(writeQTail(queue).Key, writeQTail(queue))
}

func (s *lruKSet) InitTrace(keys []string) {}
