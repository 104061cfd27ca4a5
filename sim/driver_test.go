package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delayedcache/lacache-go/sim/policy"
	"github.com/delayedcache/lacache-go/sim/trace"
)

func newDriver(t *testing.T, name string, capacityBytes uint64, missLatency uint64, warmup int64) (*Driver, *Engine) {
	t.Helper()
	set, err := policy.New(name, capacityBytes, missLatency, DefaultBandwidth)
	require.NoError(t, err)
	router := NewRouter(1)
	engine := NewEngine(router, []policy.CacheSet{set}, missLatency, DefaultBandwidth)
	return &Driver{Engine: engine, WarmupCycles: warmup}, engine
}

func TestDriver_IdleRecordsAdvanceClockWithoutDispatching(t *testing.T) {
	// GIVEN a trace with idle lines interleaved between two requests
	d, e := newDriver(t, policy.LRU, 100, 50, 0)
	records := []trace.Record{
		{Key: "A", Size: 1},
		{Idle: true},
		{Idle: true},
		{Key: "B", Size: 1},
	}

	// WHEN the driver replays it
	d.Run(records)

	// THEN only the two requests are classified (both misses, since A
	// and B are distinct keys seen for the first time)
	assert.EqualValues(t, 2, e.Misses())
	assert.EqualValues(t, 0, e.FullHits())
	assert.EqualValues(t, 0, e.DelayedHits())
}

func TestDriver_WarmupResetsCountersExactlyOnce(t *testing.T) {
	// GIVEN a driver with a warmup boundary of 5 cycles
	d, e := newDriver(t, policy.LRU, 100, 1, 5)
	records := make([]trace.Record, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, trace.Record{Key: "X", Size: 1})
	}

	// WHEN the trace is replayed past the warmup boundary
	d.Run(records)

	// THEN every post-warmup request is accounted for exactly once
	assert.Equal(t, e.FullHits()+e.DelayedHits()+e.Misses(), int64(len(e.HitTrace())))
	assert.True(t, e.Clk() >= 5)
}

func TestDriver_TeardownDrainsOutstandingFetchesAtEOF(t *testing.T) {
	// GIVEN a trace that ends with a request still in flight
	d, e := newDriver(t, policy.LRU, 100, 50, 0)
	records := []trace.Record{{Key: "X", Size: 1}}

	// WHEN the driver reaches EOF
	d.Run(records)

	// THEN the fetch has been drained rather than left outstanding
	assert.EqualValues(t, 1, e.Misses())
	assert.Empty(t, e.inflight)
	assert.Empty(t, e.deferred)
}

func TestDriver_PreScansTraceForOraclePolicies(t *testing.T) {
	// GIVEN a Belady engine, which requires lookahead, with Z=0 so that
	// each fetch is committed on the cycle after its miss
	set, err := policy.New(policy.Belady, 2, 0, DefaultBandwidth)
	require.NoError(t, err)
	router := NewRouter(1)
	engine := NewEngine(router, []policy.CacheSet{set}, 0, DefaultBandwidth)
	d := &Driver{Engine: engine}

	records := []trace.Record{
		{Key: "A", Size: 1}, {Key: "B", Size: 1}, {Key: "C", Size: 1},
		{Key: "A", Size: 1}, {Key: "D", Size: 1}, {Key: "A", Size: 1},
	}

	// WHEN the driver runs without the caller ever calling InitTrace
	// directly
	d.Run(records)

	// THEN the oracle still evicted by lookahead rather than by
	// insertion order (B, not A, makes room for C, so both later A
	// references are full hits), matching the hand-computed result for
	// this trace; without the pre-scan A is evicted and misses again
	assert.EqualValues(t, 4, engine.Misses())
}

func TestDriver_StreamsPacketDumpWhenConfigured(t *testing.T) {
	// GIVEN a driver with a packet dump writer attached
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.txt")
	dw, err := NewPacketDumpWriter(path, policy.LRU, 0, 1, 100)
	require.NoError(t, err)
	d, _ := newDriver(t, policy.LRU, 100, 50, 0)
	d.DumpWriter = dw

	// WHEN a trace is replayed
	d.Run([]trace.Record{{Key: "A", Size: 1}, {Key: "B", Size: 1}})
	require.NoError(t, dw.Close())

	// THEN the dump file contains the header plus one line per packet
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitLines(string(data))
	assert.Equal(t, "lru;0;1;100", lines[0])
	assert.Len(t, lines, 3)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
