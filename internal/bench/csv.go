// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// csvHeader fixes the column order of the results file. Histogram cells are
// semicolon-separated bucket counts; string cells get RFC 4180 quoting from
// encoding/csv (quoted when they contain a comma, quote, CR or LF or begin
// with whitespace, with embedded quotes doubled).
var csvHeader = []string{
	"producers",
	"consumers",
	"capacity",
	"blocking",
	"pinning_on",
	"padding_on",
	"large_payload",
	"move_only_payload",
	"warmup_ms",
	"duration_ms",
	"wall_time_ns",

	// throughput
	"pushes_ok",
	"pops_ok",
	"try_push_failures",
	"try_pop_failures",
	"try_push_failures_pct",
	"try_pop_failures_pct",
	"push_ops_per_sec",
	"pop_ops_per_sec",

	// push latency
	"push_lat_min_ns",
	"push_lat_p50_ns",
	"push_lat_p95_ns",
	"push_lat_p99_ns",
	"push_lat_p999_ns",
	"push_lat_max_ns",
	"push_lat_mean_ns",
	"push_spikes_over_10x_p50",

	// pop latency
	"pop_lat_min_ns",
	"pop_lat_p50_ns",
	"pop_lat_p95_ns",
	"pop_lat_p99_ns",
	"pop_lat_p999_ns",
	"pop_lat_max_ns",
	"pop_lat_mean_ns",
	"pop_spikes_over_10x_p50",

	// histograms
	"hist_bucket_ns",
	"push_overflow_pct",
	"pop_overflow_pct",
	"push_hist_bins",
	"pop_hist_bins",

	"notes",
}

func serializeHist(h *histogram) string {
	var sb strings.Builder
	for i, c := range h.buckets {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.FormatUint(c, 10))
	}
	return sb.String()
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNS(d int64) string {
	return strconv.FormatInt(d, 10)
}

func (r *Results) csvRow() []string {
	cfg := &r.Config
	return []string{
		strconv.Itoa(cfg.Producers),
		strconv.Itoa(cfg.Consumers),
		strconv.Itoa(cfg.Capacity),
		formatBool(cfg.Blocking),
		formatBool(cfg.Pinning),
		formatBool(cfg.Padding),
		formatBool(cfg.LargePayload),
		formatBool(cfg.MoveOnlyPayload),
		strconv.FormatInt(cfg.Warmup.Milliseconds(), 10),
		strconv.FormatInt(cfg.Duration.Milliseconds(), 10),
		formatNS(r.WallTime.Nanoseconds()),

		strconv.FormatUint(r.PushesOK, 10),
		strconv.FormatUint(r.PopsOK, 10),
		strconv.FormatUint(r.TryPushFailures, 10),
		strconv.FormatUint(r.TryPopFailures, 10),
		formatPct(pct(r.TryPushFailures, r.PushesOK+r.TryPushFailures)),
		formatPct(pct(r.TryPopFailures, r.PopsOK+r.TryPopFailures)),
		strconv.FormatUint(uint64(r.PushOpsPerSec()), 10),
		strconv.FormatUint(uint64(r.PopOpsPerSec()), 10),

		formatNS(r.PushLatencies.Min.Nanoseconds()),
		formatNS(r.PushLatencies.P50.Nanoseconds()),
		formatNS(r.PushLatencies.P95.Nanoseconds()),
		formatNS(r.PushLatencies.P99.Nanoseconds()),
		formatNS(r.PushLatencies.P999.Nanoseconds()),
		formatNS(r.PushLatencies.Max.Nanoseconds()),
		formatNS(r.PushLatencies.Mean.Nanoseconds()),
		strconv.FormatUint(r.PushLatencies.Spikes, 10),

		formatNS(r.PopLatencies.Min.Nanoseconds()),
		formatNS(r.PopLatencies.P50.Nanoseconds()),
		formatNS(r.PopLatencies.P95.Nanoseconds()),
		formatNS(r.PopLatencies.P99.Nanoseconds()),
		formatNS(r.PopLatencies.P999.Nanoseconds()),
		formatNS(r.PopLatencies.Max.Nanoseconds()),
		formatNS(r.PopLatencies.Mean.Nanoseconds()),
		strconv.FormatUint(r.PopLatencies.Spikes, 10),

		strconv.FormatInt(cfg.HistBucketWidth.Nanoseconds(), 10),
		formatPct(pct(r.PushOverflows(), r.PushesOK)),
		formatPct(pct(r.PopOverflows(), r.PopsOK)),
		serializeHist(r.pushHist),
		serializeHist(r.popHist),

		cfg.Notes,
	}
}

// AppendCSV appends one row for this trial to Config.CSVPath, writing the
// header first when the file is missing or empty. I/O failures are reported
// to stderr and do not abort the trial: the measurement data has already
// been computed and printed.
func (r *Results) AppendCSV() {
	path := r.Config.CSVPath

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755) // best-effort
	}

	needHeader := true
	if fi, err := os.Stat(path); err == nil && fi.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bench: failed to open CSV at %q: %v\n", path, err)
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		_ = w.Write(csvHeader)
	}
	_ = w.Write(r.csvRow())
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "bench: failed to write CSV at %q: %v\n", path, err)
	}
}
