package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Result aggregates one run's outcome: the section data written to the
// result file (spec.md §6) plus enough topology information to name it
// and the optional packet dump.
type Result struct {
	Policy        string
	CapacityMiB   float64
	MissLatency   uint64
	SetAssocBytes uint64
	NumSets       int
	TotalBytes    uint64

	TotalLatency float64
	FullHits     int64
	DelayedHits  int64
	Misses       int64
	LatencyTrace []int64
}

// Path returns the canonical result file path for this run, per spec.md
// §6: {outpath}/{policy}_{capacityMiB}c_{Z}l.txt.
func (r Result) Path(outpath string) string {
	name := fmt.Sprintf("%s_%gc_%dl.txt", r.Policy, r.CapacityMiB, r.MissLatency)
	return filepath.Join(outpath, name)
}

// WriteFile writes the five-section human-readable result file.
func (r Result) WriteFile(outpath string) error {
	if err := os.MkdirAll(outpath, 0o755); err != nil {
		return fmt.Errorf("sim: creating outpath %q: %w", outpath, err)
	}
	f, err := os.Create(r.Path(outpath))
	if err != nil {
		return fmt.Errorf("sim: creating result file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := r.Print(w); err != nil {
		return err
	}
	return w.Flush()
}

// Print writes the five sections to w: Total latency, Full Hit, Delayed
// Hit, Miss, and the per-request Latency trace. Mirrors the teacher's
// Metrics.Print pattern of an io.Writer-based summary.
func (r Result) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Total latency: %f\n", r.TotalLatency); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Full Hit: %d\n", r.FullHits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Delayed Hit: %d\n", r.DelayedHits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Miss: %d\n", r.Misses); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Latency:"); err != nil {
		return err
	}
	for _, lat := range r.LatencyTrace {
		if _, err := fmt.Fprintln(w, lat); err != nil {
			return err
		}
	}
	return nil
}

// resultJSON is the --json result format. original_source has no
// analogue to this — it is a natural extension for machine-readable
// consumption, since the default format is line-oriented text only.
type resultJSON struct {
	Policy        string  `json:"policy"`
	CapacityMiB   float64 `json:"capacityMiB"`
	MissLatency   uint64  `json:"missLatency"`
	SetAssocBytes uint64  `json:"setAssocBytes"`
	NumSets       int     `json:"numSets"`
	TotalLatency  float64 `json:"totalLatency"`
	FullHits      int64   `json:"fullHits"`
	DelayedHits   int64   `json:"delayedHits"`
	Misses        int64   `json:"misses"`
	LatencyTrace  []int64 `json:"latencyTrace"`
}

// WriteJSON writes the result in JSON form to w.
func (r Result) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(resultJSON{
		Policy:        r.Policy,
		CapacityMiB:   r.CapacityMiB,
		MissLatency:   r.MissLatency,
		SetAssocBytes: r.SetAssocBytes,
		NumSets:       r.NumSets,
		TotalLatency:  r.TotalLatency,
		FullHits:      r.FullHits,
		DelayedHits:   r.DelayedHits,
		Misses:        r.Misses,
		LatencyTrace:  r.LatencyTrace,
	})
}

// PacketDumpWriter streams the optional per-packet dump (spec.md §6):
// a header line, then one data line per finalized packet, flushed
// periodically so memory stays bounded on long traces.
type PacketDumpWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewPacketDumpWriter creates (truncating) the packet dump file and
// writes its header line.
func NewPacketDumpWriter(path, policy string, setAssocBytes uint64, numSets int, totalBytes uint64) (*PacketDumpWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sim: creating packet dump %q: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%s;%d;%d;%d\n", policy, setAssocBytes, numSets, totalBytes); err != nil {
		f.Close()
		return nil, err
	}
	return &PacketDumpWriter{f: f, w: w}, nil
}

// WritePacket appends one {key;total_latency;queueing_delay} line.
func (d *PacketDumpWriter) WritePacket(p *Packet) error {
	_, err := fmt.Fprintf(d.w, "%s;%f;%d\n", p.Key, p.TotalLatency, p.QueueingDelay)
	return err
}

// Flush flushes buffered output without closing the file, so large
// traces don't hold the whole dump in memory.
func (d *PacketDumpWriter) Flush() error {
	return d.w.Flush()
}

// Close flushes and closes the underlying file.
func (d *PacketDumpWriter) Close() error {
	if err := d.w.Flush(); err != nil {
		d.f.Close()
		return err
	}
	return d.f.Close()
}
