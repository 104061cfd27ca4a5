package sim

import "github.com/spaolacci/murmur3"

// Router maps a request key to one of N cache-sets. With a single set it
// is the identity function (every key routes to set 0); with multiple
// sets it hashes the key with MurmurHash3 x64-128, the same hash family
// original_source's cache_common.hpp HashFamily wraps, and reduces modulo
// the set count.
type Router struct {
	numSets int
}

// NewRouter constructs a router over numSets cache-sets. Panics if
// numSets is not positive — the driver always configures at least one
// set.
func NewRouter(numSets int) *Router {
	if numSets <= 0 {
		panic("sim: NewRouter requires a positive set count")
	}
	return &Router{numSets: numSets}
}

// SetFor returns the index (in [0, numSets)) of the cache-set that owns
// key.
func (r *Router) SetFor(key string) int {
	if r.numSets == 1 {
		return 0
	}
	h1, _ := murmur3.Sum128([]byte(key))
	return int(h1 % uint64(r.numSets))
}

// NumSets reports the configured number of cache-sets.
func (r *Router) NumSets() int { return r.numSets }
