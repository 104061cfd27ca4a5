package policy

import (
	"testing"

	"github.com/delayedcache/lacache-go/sim"
	"github.com/stretchr/testify/assert"
)

func TestBeladySet_EvictsTheFurthestFutureReference(t *testing.T) {
	// GIVEN a Belady set with room for two entries and the trace
	// A B C A D A pre-scanned
	s := newBeladySet(2, false)
	keys := []string{"A", "B", "C", "A", "D", "A"}
	s.InitTrace(keys)

	s.Touch("A", 1)
	s.Write("A", sim.NewPacket("A", 1))
	s.Touch("B", 1)
	s.Write("B", sim.NewPacket("B", 1))

	// WHEN C arrives and forces an eviction between resident A (next
	// used at index 3) and B (never used again)
	s.Touch("C", 1)
	s.Write("C", sim.NewPacket("C", 1))

	// THEN B, whose next reference is furthest away (never), is evicted
	assert.True(t, s.Contains("A"))
	assert.False(t, s.Contains("B"))
	assert.True(t, s.Contains("C"))
}

func TestBeladySet_NeedsTraceReportsTrue(t *testing.T) {
	s := newBeladySet(10, false)
	assert.True(t, s.NeedsTrace())
}

func TestBeladySizeSet_WeightsVictimScoreBySize(t *testing.T) {
	// GIVEN a Belady-Size set where the only resident entries have
	// identical NRTs but different sizes
	s := newBeladySet(100, true)
	s.InitTrace([]string{"big", "small"})
	s.nrt["big"] = 10
	s.nrt["small"] = 10
	s.sizeTracker.sizes = map[string]uint64{"big": 50, "small": 1}

	// THEN the larger entry scores higher and would be evicted first
	assert.Greater(t, s.victimScore("big"), s.victimScore("small"))
}
