// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCSVHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "out.csv")

	cfg := testConfig()
	cfg.CSVPath = path

	r := newResults(cfg)
	r.WallTime = 200 * time.Millisecond
	r.AppendCSV()
	r.AppendCSV()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want header + 2", len(rows))
	}
	if rows[0][0] != "producers" || rows[0][len(rows[0])-1] != "notes" {
		t.Fatalf("header: got %v", rows[0])
	}
	for i, row := range rows {
		if len(row) != len(csvHeader) {
			t.Fatalf("row %d: %d cells, want %d", i, len(row), len(csvHeader))
		}
	}
}

func TestCSVRowValues(t *testing.T) {
	cfg := testConfig()
	cfg.Producers = 2
	cfg.Consumers = 3
	cfg.Blocking = false
	cfg.Notes = "plain"

	r := newResults(cfg)
	r.WallTime = 1 * time.Second
	r.PushesOK = 75
	r.TryPushFailures = 25
	r.PushLatencies.Min = 4 * time.Nanosecond
	r.PushLatencies.Max = 90 * time.Nanosecond

	row := r.csvRow()
	cells := map[string]string{}
	for i, name := range csvHeader {
		cells[name] = row[i]
	}

	if cells["producers"] != "2" || cells["consumers"] != "3" {
		t.Fatalf("producers/consumers: %s/%s", cells["producers"], cells["consumers"])
	}
	if cells["blocking"] != "0" {
		t.Fatalf("blocking: got %s, want 0", cells["blocking"])
	}
	if cells["pushes_ok"] != "75" {
		t.Fatalf("pushes_ok: got %s", cells["pushes_ok"])
	}
	if cells["try_push_failures_pct"] != "25.00" {
		t.Fatalf("try_push_failures_pct: got %s, want 25.00", cells["try_push_failures_pct"])
	}
	if cells["push_ops_per_sec"] != "75" {
		t.Fatalf("push_ops_per_sec: got %s", cells["push_ops_per_sec"])
	}
	if cells["push_lat_min_ns"] != "4" || cells["push_lat_max_ns"] != "90" {
		t.Fatalf("push min/max: %s/%s", cells["push_lat_min_ns"], cells["push_lat_max_ns"])
	}
	if cells["hist_bucket_ns"] != "5" {
		t.Fatalf("hist_bucket_ns: got %s", cells["hist_bucket_ns"])
	}
	if cells["notes"] != "plain" {
		t.Fatalf("notes: got %s", cells["notes"])
	}

	wantBins := strings.Repeat("0;", cfg.HistBuckets-1) + "0"
	if cells["push_hist_bins"] != wantBins {
		t.Fatalf("push_hist_bins: got %d bytes, want %d", len(cells["push_hist_bins"]), len(wantBins))
	}
}

// Cells containing commas or quotes must come back intact through RFC 4180
// quoting, and the raw file must show the doubled quotes.
func TestCSVEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	cfg := testConfig()
	cfg.CSVPath = path
	cfg.Notes = `4 producers, "hot" run` + "\nsecond line"

	r := newResults(cfg)
	r.AppendCSV()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `""hot""`) {
		t.Fatal("embedded quotes not doubled in raw output")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := rows[1][len(rows[1])-1]
	if got != cfg.Notes {
		t.Fatalf("notes round-trip: got %q, want %q", got, cfg.Notes)
	}
}

// An unwritable path must not abort the trial.
func TestCSVFailureNonFatal(t *testing.T) {
	cfg := testConfig()
	cfg.CSVPath = string([]byte{0}) // unopenable

	r := newResults(cfg)
	r.AppendCSV() // must not panic
}

func TestSerializeHist(t *testing.T) {
	h := newHistogram(5*time.Nanosecond, 4)
	h.record(2, 1)
	h.record(17, 9)

	if got := serializeHist(h); got != "1;0;0;9" {
		t.Fatalf("serializeHist: got %q, want 1;0;0;9", got)
	}
}
