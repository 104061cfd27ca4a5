package policy

import (
	"testing"

	"github.com/delayedcache/lacache-go/sim"
	"github.com/stretchr/testify/assert"
)

func TestLFUSet_EvictsLowestFrequency(t *testing.T) {
	// GIVEN a LFU set with room for two 1-byte entries
	s := newLFUSet(2)
	s.Touch("a", 1)
	s.Write("a", sim.NewPacket("a", 1))
	s.Touch("b", 1)
	s.Write("b", sim.NewPacket("b", 1))

	// WHEN a is touched twice more (raising its frequency well above
	// b's) and a third key forces an eviction
	s.Touch("a", 1)
	s.Write("a", sim.NewPacket("a", 1))
	s.Touch("a", 1)
	s.Write("a", sim.NewPacket("a", 1))
	s.Touch("c", 1)
	s.Write("c", sim.NewPacket("c", 1))

	// THEN b, the least frequently used, is evicted
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("c"))
	assert.False(t, s.Contains("b"))
}
