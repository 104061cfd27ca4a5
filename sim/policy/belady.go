package policy

import "github.com/delayedcache/lacache-go/sim"

// beladyMaxLim stands in for "no future reference" (the key's last
// occurrence in the trace). Taken from original_source's cache_belady.hpp
// MaxLim sentinel; sized so that NRT*size products stay well within
// int64 range for realistic object sizes.
const beladyMaxLim = 1 << 30

// beladySet is the offline oracle family: Belady (evict the resident key
// whose next reference is furthest away) and its size-weighted variant
// Belady-Size (evict by next-reference-time × size). Both require the
// full trace up front via InitTrace.
//
// Grounded in original_source's cache_beladys.cpp / BeladySQueue, which
// is the only concrete oracle cache-set implementation present in the
// pack; cache_belady.hpp's generic BeladyCacheSet<T> template (with its
// admit-then-reject-self branch) parameterizes a pluggable victim
// chooser that cache_beladys.cpp does not use, so it is not replicated
// here — see DESIGN.md.
type beladySet struct {
	sizeTracker
	sizeWeighted bool
	bag          *orderedBag

	timenow  int64
	reqTimes map[string][]int64 // occurrence positions in trace order, per key
	counter  map[string]int
	nrt      map[string]int64
}

func newBeladySet(capacityBytes uint64, sizeWeighted bool) *beladySet {
	return &beladySet{
		sizeTracker:  newSizeTracker(capacityBytes),
		sizeWeighted: sizeWeighted,
		bag:          newOrderedBag(),
		reqTimes:     make(map[string][]int64),
		counter:      make(map[string]int),
		nrt:          make(map[string]int64),
	}
}

func (s *beladySet) InitTrace(keys []string) {
	s.reqTimes = make(map[string][]int64, len(keys))
	for i, k := range keys {
		s.reqTimes[k] = append(s.reqTimes[k], int64(i))
	}
}

func (s *beladySet) NeedsTrace() bool { return true }

// Touch recomputes this key's next-reference-time and ages every other
// tracked key's NRT down by one cycle (keys at the beladyMaxLim
// "never again" sentinel stay there), exactly as
// BeladyQueue::updateNRTs does in original_source — including updating
// keys that are no longer resident, which is a faithful quirk of the
// original rather than a deliberate optimization.
func (s *beladySet) Touch(key string, size uint64) {
	s.recordSize(key, size)
	s.timenow++
	s.counter[key]++

	times := s.reqTimes[key]
	idx := s.counter[key]
	var nrt int64
	if idx < len(times) {
		nrt = times[idx] - s.timenow + 1
	} else {
		nrt = beladyMaxLim
	}
	s.nrt[key] = nrt

	for k, v := range s.nrt {
		if k == key || v == beladyMaxLim {
			continue
		}
		s.nrt[k] = v - 1
	}
}

func (s *beladySet) Contains(key string) bool { return s.bag.Contains(key) }

func (s *beladySet) victimScore(key string) int64 {
	nrt := s.nrt[key]
	if !s.sizeWeighted {
		return nrt
	}
	return nrt * int64(s.sizeOf(key))
}

func (s *beladySet) evictOne() {
	var victim string
	var max int64 = -1
	s.bag.Each(func(e sim.CacheEntry) {
		score := s.victimScore(e.Key)
		if score > max {
			max = score
			victim = e.Key
		}
	})
	e, _ := s.bag.Remove(victim)
	s.usedBytes -= e.Size
}

func (s *beladySet) Write(key string, packet *sim.Packet) sim.CacheEntry {
	if e, ok := s.bag.Get(key); ok {
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

func (s *beladySet) WriteQ(queue []*sim.Packet) sim.CacheEntry {
	return s.Write(writeQTail(queue).Key, writeQTail(queue))
}
