// Package policy implements the pluggable cache-set abstraction: one
// concrete replacement structure per supported policy, all sharing
// byte-granularity admission and eviction accounting. Configuration
// ("number of entries") is interpreted as bytes of capacity, per
// spec §4.2.
package policy

import (
	"fmt"

	"github.com/delayedcache/lacache-go/sim"
)

// CacheSet is the contract the delayed-hit engine drives every
// replacement policy through. Implementations are not safe for
// concurrent use — the engine is single-threaded over a virtual clock.
type CacheSet interface {
	// Touch updates per-policy bookkeeping (frequencies, recency
	// stamps, inter-arrival windows, oracle cursors) for every request,
	// before classification. Must not admit or evict.
	Touch(key string, size uint64)

	// Contains reports whether key is currently resident.
	Contains(key string) bool

	// Write performs idempotent admission: refreshes key's position if
	// already resident, otherwise inserts and evicts down to capacity.
	// A policy may refuse the new key (LRU-K before enough ghost
	// observations; the PB-LRU family when the new key has the lowest
	// payoff), in which case the returned entry's Valid is false.
	Write(key string, packet *sim.Packet) sim.CacheEntry

	// WriteQ commits the tail packet of a completed fetch's deferred
	// queue as a single admission.
	WriteQ(queue []*sim.Packet) sim.CacheEntry

	// InitTrace hands oracle policies (Belady, Belady-Size) the full,
	// ordered key sequence of the trace ahead of replay. Policies that
	// don't need lookahead ignore the call.
	InitTrace(keys []string)
}

// RequiresTrace is implemented by oracle policies that need the full
// trace before replay can begin; the driver pre-scans only when at
// least one configured cache-set requires it.
type RequiresTrace interface {
	NeedsTrace() bool
}

// Names of the supported policies.
const (
	LRU        = "lru"
	LFU        = "lfu"
	FIFO       = "fifo"
	TwoQ       = "2q"
	LRUK       = "lruk"
	Belady     = "belady"
	BeladySize = "belady-size"
	PBLRU      = "pblru"
	PBS        = "pbs"
)

// New constructs a CacheSet for the named policy.
//
// capacityBytes is the byte capacity of this single set (the caller has
// already applied set associativity; the router only picks a set). missLatency
// (Z) and bandwidthBytesPerCycle are needed only by the PB-LRU family's
// payoff score.
func New(name string, capacityBytes uint64, missLatency uint64, bandwidthBytesPerCycle float64) (CacheSet, error) {
	switch name {
	case LRU:
		return newLRUSet(capacityBytes), nil
	case LFU:
		return newLFUSet(capacityBytes), nil
	case FIFO:
		return newFIFOSet(capacityBytes), nil
	case TwoQ:
		return newTwoQSet(capacityBytes), nil
	case LRUK:
		return newLRUKSet(capacityBytes), nil
	case Belady:
		return newBeladySet(capacityBytes, false), nil
	case BeladySize:
		return newBeladySet(capacityBytes, true), nil
	case PBLRU:
		return newPBSet(capacityBytes, missLatency, bandwidthBytesPerCycle, false), nil
	case PBS:
		return newPBSet(capacityBytes, missLatency, bandwidthBytesPerCycle, true), nil
	default:
		return nil, fmt.Errorf("policy: unknown cache-set policy %q; valid policies: [%s %s %s %s %s %s %s %s %s]",
			name, LRU, LFU, FIFO, TwoQ, LRUK, Belady, BeladySize, PBLRU, PBS)
	}
}

// sizeTracker records each key's canonical size on first sight (stable for
// the run, per spec.md §3) and tracks used-byte accounting. Embedded by
// every concrete policy.
type sizeTracker struct {
	capacityBytes uint64
	usedBytes     uint64
	sizes         map[string]uint64
}

func newSizeTracker(capacityBytes uint64) sizeTracker {
	return sizeTracker{capacityBytes: capacityBytes, sizes: make(map[string]uint64)}
}

func (t *sizeTracker) recordSize(key string, size uint64) {
	if _, ok := t.sizes[key]; !ok {
		t.sizes[key] = size
	}
}

func (t *sizeTracker) sizeOf(key string) uint64 { return t.sizes[key] }

// writeQTail extracts the packet policies commit on WriteQ: the original's
// writeq() is "functionally equivalent to write() on every queued packet"
// but every shipped policy only needs the last, since earlier packets in a
// coalesced fetch queue never observe cache-set state.
func writeQTail(queue []*sim.Packet) *sim.Packet {
	if len(queue) == 0 {
		panic("policy: WriteQ called with an empty queue")
	}
	return queue[len(queue)-1]
}
