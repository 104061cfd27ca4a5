package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/delayedcache/lacache-go/sim/policy"
	"github.com/delayedcache/lacache-go/sim/trace"
)

// progressLogInterval mirrors original_source's cache_base.hpp
// benchmark() loop, which logs "Processing: N" every 100000 packets.
const progressLogInterval = 100_000

// Driver replays a trace through an Engine: pre-scanning for oracle
// policies, stepping the warmup boundary, and draining outstanding
// fetches at EOF. Grounded in original_source's cache_base.hpp
// benchmark()/defaultBenchmark().
type Driver struct {
	Engine       *Engine
	WarmupCycles int64
	DumpWriter   *PacketDumpWriter // optional; nil disables packet streaming
}

// Run replays records through the driver's engine and returns once every
// request (and every outstanding fetch) has been accounted for; the
// aggregated counters and traces are then read from the Engine.
func (d *Driver) Run(records []trace.Record) {
	if d.needsTrace() {
		d.Engine.InitTrace(trace.Keys(records))
	}

	warmedUp := d.WarmupCycles <= 0
	processed := 0
	for _, rec := range records {
		if rec.Idle {
			d.Engine.AdvanceFetches()
		} else {
			p := NewPacket(rec.Key, rec.Size)
			d.Engine.Process(p)
			d.dump(p)
		}

		processed++
		if processed%progressLogInterval == 0 {
			logrus.Debugf("sim: processed %d records (clk=%d)", processed, d.Engine.Clk())
			d.flushDump()
		}

		if !warmedUp && d.Engine.Clk() >= d.WarmupCycles {
			d.Engine.ResetWarmupCounters()
			warmedUp = true
		}
	}

	d.Engine.Teardown()
	d.flushDump()
}

func (d *Driver) needsTrace() bool {
	for _, s := range d.Engine.sets {
		if rt, ok := s.(policy.RequiresTrace); ok && rt.NeedsTrace() {
			return true
		}
	}
	return false
}

func (d *Driver) dump(p *Packet) {
	if d.DumpWriter == nil {
		return
	}
	if err := d.DumpWriter.WritePacket(p); err != nil {
		logrus.Warnf("sim: writing packet dump: %v", err)
	}
}

func (d *Driver) flushDump() {
	if d.DumpWriter == nil {
		return
	}
	if err := d.DumpWriter.Flush(); err != nil {
		logrus.Warnf("sim: flushing packet dump: %v", err)
	}
}
