// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/delayedcache/lacache-go/sim"
	"github.com/delayedcache/lacache-go/sim/policy"
	"github.com/delayedcache/lacache-go/sim/trace"
)

var (
	tracePath   string
	outPath     string
	csizeMiB    float64
	latencyZ    uint64
	packetsPath string
	csaBytes    uint64
	warmup      int64
	logLevel    string
	policyName  string
	configPath  string
	presetName  string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "lacache-go",
	Short: "Trace-driven delayed-hit cache simulator",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a trace through a replacement policy and report delayed-hit statistics",
	RunE:  runSimulation,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&tracePath, "trace", "", "trace file (required)")
	runCmd.Flags().StringVar(&outPath, "outpath", "", "directory for the result file (required)")
	runCmd.Flags().Float64Var(&csizeMiB, "csize", 0, "cache capacity in mebibytes (required)")
	runCmd.Flags().Uint64Var(&latencyZ, "latency", 0, "base miss latency Z in cycles (required)")
	runCmd.Flags().StringVar(&packetsPath, "packets", "", "if set, stream per-packet records to this path")
	runCmd.Flags().Uint64Var(&csaBytes, "csa", 0, "set-associativity in bytes; 0 means one set holding all capacity")
	runCmd.Flags().Int64Var(&warmup, "warmup", 0, "cycles to run before counters are zeroed")
	runCmd.Flags().StringVar(&policyName, "policy", policy.LRU, "replacement policy (lru, lfu, fifo, 2q, lruk, belady, belady-size, pblru, pbs)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML file of named engine/topology/policy presets")
	runCmd.Flags().StringVar(&presetName, "preset", "", "preset name to load from --config before applying flag overrides")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "write the result in JSON instead of the five-section text format")

	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	run, err := buildRunConfig()
	if err != nil {
		return err
	}

	if tracePath == "" {
		return fmt.Errorf("--trace is required")
	}
	if outPath == "" {
		return fmt.Errorf("--outpath is required")
	}
	if run.Topology.CapacityBytes == 0 {
		return fmt.Errorf("--csize is required")
	}
	if run.Engine.MissLatency == 0 {
		return fmt.Errorf("--latency is required")
	}

	logrus.Infof("lacache-go: starting run policy=%s capacity=%.2fMiB Z=%d csa=%d",
		run.Policy.Name, float64(run.Topology.CapacityBytes)/(1024*1024), run.Engine.MissLatency, run.Topology.SetAssocBytes)

	f, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("opening trace %q: %w", tracePath, err)
	}
	defer f.Close()

	records, err := trace.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading trace %q: %w", tracePath, err)
	}

	numSets := run.Topology.NumSets()
	perSet := run.Topology.PerSetCapacity()
	sets := make([]policy.CacheSet, numSets)
	for i := range sets {
		s, err := policy.New(run.Policy.Name, perSet, run.Engine.MissLatency, run.Engine.Bandwidth)
		if err != nil {
			return err
		}
		sets[i] = s
	}

	router := sim.NewRouter(numSets)
	engine := sim.NewEngine(router, sets, run.Engine.MissLatency, run.Engine.Bandwidth)

	driver := &sim.Driver{Engine: engine, WarmupCycles: run.Engine.WarmupCycles}
	if packetsPath != "" {
		dw, err := sim.NewPacketDumpWriter(packetsPath, run.Policy.Name, run.Topology.SetAssocBytes, numSets, run.Topology.CapacityBytes)
		if err != nil {
			return err
		}
		defer dw.Close()
		driver.DumpWriter = dw
	}

	driver.Run(records)
	logrus.Infof("lacache-go: run complete, clk=%d full_hits=%d delayed_hits=%d misses=%d",
		engine.Clk(), engine.FullHits(), engine.DelayedHits(), engine.Misses())

	result := sim.Result{
		Policy:        run.Policy.Name,
		CapacityMiB:   csizeMiB,
		MissLatency:   run.Engine.MissLatency,
		SetAssocBytes: run.Topology.SetAssocBytes,
		NumSets:       numSets,
		TotalBytes:    run.Topology.CapacityBytes,
		TotalLatency:  engine.TotalLatency(),
		FullHits:      engine.FullHits(),
		DelayedHits:   engine.DelayedHits(),
		Misses:        engine.Misses(),
		LatencyTrace:  engine.LatencyTrace(),
	}

	// I/O failures on the result write are surfaced, but counters have
	// already been computed and logged above, per spec.md §7d.
	if jsonOutput {
		out, err := os.Create(result.Path(outPath) + ".json")
		if err != nil {
			return fmt.Errorf("writing json result: %w", err)
		}
		defer out.Close()
		return result.WriteJSON(out)
	}
	if err := result.WriteFile(outPath); err != nil {
		return fmt.Errorf("writing result file: %w", err)
	}
	return nil
}

// buildRunConfig assembles a RunConfig from --config/--preset (if given)
// overlaid with explicit flags, mirroring the teacher's defaults.yaml
// preset-then-override pattern.
func buildRunConfig() (sim.RunConfig, error) {
	run := sim.RunConfig{
		Engine:   sim.NewEngineConfig(latencyZ, sim.DefaultBandwidth, warmup),
		Topology: sim.NewTopologyConfig(uint64(csizeMiB*1024*1024), csaBytes),
		Policy:   sim.NewPolicyConfig(policyName),
	}

	if configPath == "" {
		return run, nil
	}
	presets, err := sim.LoadPresets(configPath)
	if err != nil {
		return run, err
	}
	if presetName == "" {
		return run, fmt.Errorf("--config given without --preset")
	}
	preset, err := presets.Lookup(presetName)
	if err != nil {
		return run, err
	}

	// Explicit flags win over the preset. A flag still at its default
	// (zero, or "lru" for --policy) counts as not supplied, so the
	// preset's value is used instead.
	if csizeMiB == 0 {
		run.Topology.CapacityBytes = preset.Topology.CapacityBytes
		csizeMiB = float64(preset.Topology.CapacityBytes) / (1024 * 1024)
	}
	if csaBytes == 0 {
		run.Topology.SetAssocBytes = preset.Topology.SetAssocBytes
	}
	if latencyZ == 0 {
		run.Engine.MissLatency = preset.Engine.MissLatency
	}
	if warmup == 0 {
		run.Engine.WarmupCycles = preset.Engine.WarmupCycles
	}
	if policyName == policy.LRU {
		run.Policy.Name = preset.Policy.Name
	}
	return run, nil
}
