package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ReadAll parses every record out of r. Lines are "timestamp;key;size";
// a blank line is an idle cycle and is preserved as Record{Idle: true}
// rather than dropped, since the driver must still advance the clock
// for it. A malformed non-blank line is logged with its line number and
// skipped rather than aborting the run, per the acceptable strengthening
// spec.md §7b allows over the original's bare-assert parser.
func ReadAll(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			records = append(records, Record{Idle: true})
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			logrus.Warnf("trace: skipping malformed line %d: %v", lineNo, err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: reading input: %w", err)
	}
	return records, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("expected 3 fields (timestamp;key;size), got %d", len(fields))
	}
	clock, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid timestamp %q: %w", fields[0], err)
	}
	key := strings.TrimSpace(fields[1])
	if key == "" {
		return Record{}, fmt.Errorf("empty key")
	}
	size, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid size %q: %w", fields[2], err)
	}
	return Record{Clock: clock, Key: key, Size: size}, nil
}

// Keys extracts the key sequence of every non-idle record, in order —
// the lookahead oracle policies (Belady, Belady-Size) need this for
// InitTrace. Idle cycles never reach the cache-set, so they are not
// part of this sequence.
func Keys(records []Record) []string {
	keys := make([]string, 0, len(records))
	for _, r := range records {
		if r.Idle {
			continue
		}
		keys = append(keys, r.Key)
	}
	return keys
}
