package sim

// EngineConfig groups the delayed-hit engine's global parameters: the
// base miss latency and the fetch channel's bandwidth.
type EngineConfig struct {
	MissLatency  uint64  `yaml:"missLatency"`  // Z, base cycles charged on every miss
	Bandwidth    float64 `yaml:"bandwidth"`    // bytes/cycle; defaults to DefaultBandwidth when zero
	WarmupCycles int64   `yaml:"warmupCycles"` // cycles to run before counters are zeroed
}

// NewEngineConfig constructs an EngineConfig, substituting DefaultBandwidth
// when bandwidth is zero.
func NewEngineConfig(missLatency uint64, bandwidth float64, warmupCycles int64) EngineConfig {
	if bandwidth == 0 {
		bandwidth = DefaultBandwidth
	}
	return EngineConfig{MissLatency: missLatency, Bandwidth: bandwidth, WarmupCycles: warmupCycles}
}

// TopologyConfig groups cache capacity and sharding parameters.
type TopologyConfig struct {
	CapacityBytes uint64 `yaml:"capacityBytes"` // total capacity across all sets
	SetAssocBytes uint64 `yaml:"setAssocBytes"` // bytes per set; 0 means a single set holding all capacity
}

// NumSets derives the set count from capacity and set-associativity.
func (t TopologyConfig) NumSets() int {
	if t.SetAssocBytes == 0 {
		return 1
	}
	n := t.CapacityBytes / t.SetAssocBytes
	if t.CapacityBytes%t.SetAssocBytes != 0 {
		n++
	}
	if n == 0 {
		n = 1
	}
	return int(n)
}

// PerSetCapacity returns the byte capacity of a single set.
func (t TopologyConfig) PerSetCapacity() uint64 {
	if t.SetAssocBytes == 0 {
		return t.CapacityBytes
	}
	return t.SetAssocBytes
}

// NewTopologyConfig constructs a TopologyConfig.
func NewTopologyConfig(capacityBytes, setAssocBytes uint64) TopologyConfig {
	return TopologyConfig{CapacityBytes: capacityBytes, SetAssocBytes: setAssocBytes}
}

// PolicyConfig selects the replacement policy by name.
type PolicyConfig struct {
	Name string `yaml:"name"` // one of policy.LRU, policy.LFU, policy.FIFO, ...
}

// NewPolicyConfig constructs a PolicyConfig.
func NewPolicyConfig(name string) PolicyConfig {
	return PolicyConfig{Name: name}
}

// RunConfig is the full set of parameters for one simulation run, as
// loaded from CLI flags or a named preset in a YAML config file.
type RunConfig struct {
	Engine   EngineConfig   `yaml:"engine"`
	Topology TopologyConfig `yaml:"topology"`
	Policy   PolicyConfig   `yaml:"policy"`
}

// Presets is a named collection of RunConfig entries, the shape loaded
// from a YAML config file via --config.
type Presets map[string]RunConfig
