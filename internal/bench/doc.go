// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench drives measurement trials against the ringbench ring.
//
// A trial spins up P producer and C consumer goroutines locked to OS threads
// (optionally pinned to cores), runs a warmup phase followed by a timed
// measurement phase, samples per-operation latencies into bounded
// fixed-width histograms, and aggregates the per-worker results into one CSV
// row. Timestamps come from the CPU cycle counter, calibrated once per trial
// against the monotonic clock.
//
// Trials are configured with Config (see cmd/ringbench for the flag
// surface) or in bulk through a JSON parameter matrix (LoadMatrix).
package bench
