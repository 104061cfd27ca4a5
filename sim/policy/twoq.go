package policy

import "github.com/delayedcache/lacache-go/sim"

// twoQP is the fraction of total capacity given to the hot (LRU) region;
// the remainder backs the probation (FIFO) region. Taken verbatim from
// original_source's cache_2q.cpp.
const twoQP = 0.9

// twoQSet is the 2Q policy: new keys land in a FIFO probation region; a
// second reference promotes them into an LRU-managed hot region. Only the
// hot region reorders on a hit.
//
// Grounded in original_source's cache_2q.cpp.
type twoQSet struct {
	sizes    map[string]uint64
	lruCap   uint64
	fifoCap  uint64
	usedLru  uint64
	usedFifo uint64
	lru      *orderedBag
	fifo     *orderedBag
}

func newTwoQSet(capacityBytes uint64) *twoQSet {
	lruCap := uint64(twoQP * float64(capacityBytes))
	return &twoQSet{
		sizes:   make(map[string]uint64),
		lruCap:  lruCap,
		fifoCap: capacityBytes - lruCap,
		lru:     newOrderedBag(),
		fifo:    newOrderedBag(),
	}
}

func (s *twoQSet) Touch(key string, size uint64) {
	if _, ok := s.sizes[key]; !ok {
		s.sizes[key] = size
	}
}

func (s *twoQSet) Contains(key string) bool {
	return s.lru.Contains(key) || s.fifo.Contains(key)
}

func (s *twoQSet) Write(key string, packet *sim.Packet) sim.CacheEntry {
	if e, ok := s.lru.Remove(key); ok {
		s.lru.PushBack(e)
		return e
	}
	if e, ok := s.fifo.Remove(key); ok {
		s.usedFifo -= e.Size
		s.lru.PushBack(e)
		s.usedLru += e.Size
		for s.usedLru > s.lruCap && s.lru.Len() > 0 {
			victim, _ := s.lru.PopFront()
			s.usedLru -= victim.Size
		}
		return e
	}
	size := s.sizes[key]
	e := sim.CacheEntry{Key: key, Valid: true, Size: size}
	s.fifo.PushBack(e)
	s.usedFifo += size
	// Strict inequality: a key exactly filling an empty FIFO region must
	// not evict itself the instant it is admitted.
	for s.usedFifo > s.fifoCap && s.fifo.Len() > 1 {
		victim, _ := s.fifo.PopFront()
		s.usedFifo -= victim.Size
	}
	return e
}

func (s *twoQSet) WriteQ(queue []*sim.Packet) sim.CacheEntry {
	return s.Write(writeQTail(queue).Key, writeQTail(queue))
}

func (s *twoQSet) InitTrace(keys []string) {}
