package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineConfig_DefaultsBandwidthWhenZero(t *testing.T) {
	got := NewEngineConfig(100, 0, 0)
	want := EngineConfig{MissLatency: 100, Bandwidth: DefaultBandwidth, WarmupCycles: 0}
	assert.Equal(t, want, got)
}

func TestNewEngineConfig_FieldEquivalence(t *testing.T) {
	got := NewEngineConfig(100, 1000, 500)
	want := EngineConfig{MissLatency: 100, Bandwidth: 1000, WarmupCycles: 500}
	assert.Equal(t, want, got)
}

func TestTopologyConfig_NumSets(t *testing.T) {
	assert.Equal(t, 1, NewTopologyConfig(1024, 0).NumSets())
	assert.Equal(t, 4, NewTopologyConfig(1024, 256).NumSets())
	assert.Equal(t, 3, NewTopologyConfig(1000, 400).NumSets()) // rounds up a partial set
}

func TestTopologyConfig_PerSetCapacity(t *testing.T) {
	assert.Equal(t, uint64(1024), NewTopologyConfig(1024, 0).PerSetCapacity())
	assert.Equal(t, uint64(256), NewTopologyConfig(1024, 256).PerSetCapacity())
}

func TestNewPolicyConfig_FieldEquivalence(t *testing.T) {
	got := NewPolicyConfig("lru")
	want := PolicyConfig{Name: "lru"}
	assert.Equal(t, want, got)
}

func TestLoadPresets_ParsesNamedRunConfigs(t *testing.T) {
	// GIVEN a YAML file with one named preset
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	contents := `
small-lru:
  engine:
    missLatency: 100
    bandwidth: 104857600
    warmupCycles: 1000
  topology:
    capacityBytes: 1048576
    setAssocBytes: 0
  policy:
    name: lru
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	// WHEN it is loaded and the preset looked up
	presets, err := LoadPresets(path)
	require.NoError(t, err)
	cfg, err := presets.Lookup("small-lru")

	// THEN the fields are populated as written
	require.NoError(t, err)
	assert.Equal(t, uint64(100), cfg.Engine.MissLatency)
	assert.Equal(t, uint64(1048576), cfg.Topology.CapacityBytes)
	assert.Equal(t, "lru", cfg.Policy.Name)
}

func TestPresets_LookupUnknownNameErrors(t *testing.T) {
	presets := Presets{}
	_, err := presets.Lookup("missing")
	assert.Error(t, err)
}
