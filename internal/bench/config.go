// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"io"
	"time"
)

// Config describes one measurement trial.
type Config struct {
	Producers int // producer goroutine count
	Consumers int // consumer goroutine count
	Capacity  int // ring slot count (power of two >= 2)

	Blocking bool // EnqueueWait/DequeueWait vs Enqueue/Dequeue

	Duration time.Duration // total trial wall time, warmup included
	Warmup   time.Duration // pre-measurement phase

	HistBucketWidth time.Duration // histogram resolution
	HistBuckets     int           // histogram range in buckets

	Pinning bool // pin workers to cores
	Padding bool // isolate ring cursors on their own cache lines

	LargePayload    bool // 1024-byte payload vs 8 bytes
	MoveOnlyPayload bool // owning-pointer payload vs by-value

	CSVPath string // output file, header written if absent or empty
	Notes   string // free-form, escaped into the CSV
}

// DefaultConfig returns the defaults for a single trial.
func DefaultConfig() Config {
	return Config{
		Producers:       1,
		Consumers:       1,
		Capacity:        65536,
		Blocking:        true,
		Duration:        17500 * time.Millisecond,
		Warmup:          2500 * time.Millisecond,
		HistBucketWidth: 5 * time.Nanosecond,
		HistBuckets:     4096,
		Pinning:         true,
		Padding:         true,
		CSVPath:         "results/raw/results.csv",
	}
}

// Validate checks the trial preconditions.
func (c *Config) Validate() error {
	if c.Producers < 1 {
		return fmt.Errorf("bench: producers must be >= 1, got %d", c.Producers)
	}
	if c.Consumers < 1 {
		return fmt.Errorf("bench: consumers must be >= 1, got %d", c.Consumers)
	}
	if c.Capacity < 2 || c.Capacity&(c.Capacity-1) != 0 {
		return fmt.Errorf("bench: capacity must be a power of two >= 2, got %d", c.Capacity)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("bench: warmup must be >= 0, got %v", c.Warmup)
	}
	if c.Duration <= c.Warmup {
		return fmt.Errorf("bench: duration %v must be greater than warmup %v", c.Duration, c.Warmup)
	}
	if c.HistBucketWidth <= 0 {
		return fmt.Errorf("bench: histogram bucket width must be > 0, got %v", c.HistBucketWidth)
	}
	if c.HistBuckets <= 0 {
		return fmt.Errorf("bench: histogram bucket count must be > 0, got %d", c.HistBuckets)
	}
	return nil
}

// Echo writes the human-readable configuration listing printed before a run.
func (c *Config) Echo(w io.Writer) {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	fmt.Fprintf(w, "\nConfiguration:\n")
	fmt.Fprintf(w, "  producers: %d\n", c.Producers)
	fmt.Fprintf(w, "  consumers: %d\n", c.Consumers)
	fmt.Fprintf(w, "  capacity: %d\n", c.Capacity)
	fmt.Fprintf(w, "  blocking: %s\n", onOff(c.Blocking))
	fmt.Fprintf(w, "  duration (ms): %d\n", c.Duration.Milliseconds())
	fmt.Fprintf(w, "  warmup (ms): %d\n", c.Warmup.Milliseconds())
	fmt.Fprintf(w, "  pinning: %s\n", onOff(c.Pinning))
	fmt.Fprintf(w, "  padding: %s\n", onOff(c.Padding))
	fmt.Fprintf(w, "  large payload: %s\n", onOff(c.LargePayload))
	fmt.Fprintf(w, "  move-only payload: %s\n", onOff(c.MoveOnlyPayload))
	fmt.Fprintf(w, "  csv_path: %s\n", c.CSVPath)
	fmt.Fprintf(w, "  notes: %s\n", c.Notes)
}
