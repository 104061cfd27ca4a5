// Package sim provides the core delayed-hit cache simulator: the
// request/entry data model, the virtual-clock engine, the hash router,
// and the run configuration.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - packet.go: Packet (request) lifecycle and its one-shot latency
//     accumulation
//   - entry.go: CacheEntry, the unit of cache-set residency
//   - engine.go: the virtual clock, in-flight fetch table, per-key
//     deferred queues, and classification of each request
//   - router.go: maps a key to one of N cache-sets
//
// # Architecture
//
// The pluggable replacement policies live in sim/policy/, selected by
// name through policy.New; the trace reader lives in sim/trace/; the
// replay driver and result writer live in driver.go and result.go.
//
// # Key Interfaces
//
//   - policy.CacheSet: Touch, Contains, Write, WriteQ, InitTrace — the
//     five operations every replacement policy exposes to the engine.
package sim
