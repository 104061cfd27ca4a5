// Defines the Packet struct that models a single trace request as it flows
// through the delayed-hit engine. Tracks arrival clock, accumulated latency,
// and queueing position for requests coalesced behind an in-flight fetch.

package sim

// Packet models one request from the trace.
//
// A packet is created when its trace line is read, stamped with the
// engine's clock on arrival, and mutated exactly once by the engine before
// being finalized — after which its latency may not change again.
type Packet struct {
	Key   string // opaque request identifier
	Size  uint64 // object size in bytes

	ArrivalClock  int64   // virtual cycle the packet entered the engine
	TotalLatency  float64 // accumulated latency in cycles
	QueueingDelay int     // position within the deferred queue at delayed-hit classification

	finalized bool
}

// NewPacket constructs a packet for the given key and size. ArrivalClock is
// set later by Engine.Process.
func NewPacket(key string, size uint64) *Packet {
	return &Packet{Key: key, Size: size}
}

// AddLatency accumulates additional latency onto the packet. Panics if
// called after Finalize, since a finalized packet must not be mutated
// further (spec invariant: every packet contributes exactly once).
func (p *Packet) AddLatency(latency float64) {
	if p.finalized {
		panic("sim: AddLatency called on a finalized packet")
	}
	p.TotalLatency += latency
}

// Finalize marks the packet as done. A second call panics, mirroring the
// original's one-shot semantics.
func (p *Packet) Finalize() {
	if p.finalized {
		panic("sim: packet finalized twice")
	}
	p.finalized = true
}

// Finalized reports whether Finalize has been called.
func (p *Packet) Finalized() bool { return p.finalized }
