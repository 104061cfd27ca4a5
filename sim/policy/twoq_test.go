package policy

import (
	"testing"

	"github.com/delayedcache/lacache-go/sim"
	"github.com/stretchr/testify/assert"
)

func TestTwoQSet_PromotesFromFifoToLruOnSecondReference(t *testing.T) {
	// GIVEN a 2Q set with a 10-byte FIFO probation region and A already
	// admitted into it
	s := newTwoQSet(100)
	s.Touch("a", 1)
	s.Write("a", sim.NewPacket("a", 1))
	assert.True(t, s.fifo.Contains("a"))

	// WHEN a is written again (simulating a direct full-hit refresh)
	s.Write("a", sim.NewPacket("a", 1))

	// THEN a has moved into the hot LRU region
	assert.False(t, s.fifo.Contains("a"))
	assert.True(t, s.lru.Contains("a"))
}

func TestTwoQSet_FifoEvictsPreviousTenantNotItself(t *testing.T) {
	// GIVEN a 2Q set with a 1-byte FIFO region
	s := newTwoQSet(10) // lruCap=9, fifoCap=1

	// WHEN a 1-byte key is admitted alone
	s.Touch("a", 1)
	s.Write("a", sim.NewPacket("a", 1))

	// THEN it survives its own admission
	assert.True(t, s.Contains("a"))

	// WHEN a second distinct key is admitted
	s.Touch("b", 1)
	s.Write("b", sim.NewPacket("b", 1))

	// THEN it evicts the previous tenant, not itself
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("a"))
}
