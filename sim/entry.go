package sim

// CacheEntry is a single resident object in a cache-set. It is created on
// first admission and destroyed on eviction; at any time it lives in
// exactly one cache-set's replacement structure.
//
// Unlike the original implementation (whose CacheEntry.size field was
// declared but never populated, with sizes tracked only in a sidecar map),
// Size is stored directly on the entry.
type CacheEntry struct {
	Key   string
	Valid bool
	Size  uint64
}
