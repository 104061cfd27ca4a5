// Package trace reads the line-delimited request trace that drives the
// delayed-hit engine. Repurposed from a cluster decision-trace recorder
// into a request-trace reader/parser; it keeps no dependency on the rest
// of sim/, matching the original package's isolation.
package trace

// Record is one line of the input trace. A non-idle line is a request
// for Key of Size bytes; an empty line is an idle cycle (Idle is true,
// the other fields are zero) — the driver still advances the clock for
// it, just without dispatching a request. Clock is the trace-supplied
// timestamp, informational only: the engine's own virtual clock advances
// one cycle per record regardless of the timestamp's magnitude.
type Record struct {
	Clock int64
	Key   string
	Size  uint64
	Idle  bool
}
