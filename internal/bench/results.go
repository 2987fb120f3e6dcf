// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"math"
	"time"
)

// LatencyStats summarizes one side's (push or pop) latency distribution.
// Min and Max are tracked directly as the extrema of all timed operations;
// the quantiles and mean are recovered from the histogram and reported as
// bucket midpoints.
type LatencyStats struct {
	Min  time.Duration
	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
	P999 time.Duration
	Max  time.Duration
	Mean time.Duration

	// Spikes counts samples over 10x p50. Overflowed samples are credited
	// here unconditionally: the histogram range is far above any sane p50,
	// so a sample beyond it is a tail event even before p50 is known.
	Spikes uint64
}

// Results accumulates one worker's measurements, and after merging, the
// whole trial's.
type Results struct {
	Config   Config
	WallTime time.Duration // measurement phase only, excludes warmup

	// throughput
	PushesOK        uint64
	PopsOK          uint64
	TryPushFailures uint64 // ring full
	TryPopFailures  uint64 // ring empty

	// latencies
	PushLatencies LatencyStats
	PopLatencies  LatencyStats

	pushHist *histogram
	popHist  *histogram
}

func newResults(cfg Config) *Results {
	return &Results{
		Config:   cfg,
		pushHist: newHistogram(cfg.HistBucketWidth, cfg.HistBuckets),
		popHist:  newHistogram(cfg.HistBucketWidth, cfg.HistBuckets),
		PushLatencies: LatencyStats{
			Min: time.Duration(math.MaxInt64),
		},
		PopLatencies: LatencyStats{
			Min: time.Duration(math.MaxInt64),
		},
	}
}

// merge folds a worker's results into r.
func (r *Results) merge(o *Results) {
	r.PushesOK += o.PushesOK
	r.PopsOK += o.PopsOK
	r.TryPushFailures += o.TryPushFailures
	r.TryPopFailures += o.TryPopFailures

	r.PushLatencies.Min = min(r.PushLatencies.Min, o.PushLatencies.Min)
	r.PushLatencies.Max = max(r.PushLatencies.Max, o.PushLatencies.Max)
	r.PopLatencies.Min = min(r.PopLatencies.Min, o.PopLatencies.Min)
	r.PopLatencies.Max = max(r.PopLatencies.Max, o.PopLatencies.Max)
	r.PushLatencies.Spikes += o.PushLatencies.Spikes
	r.PopLatencies.Spikes += o.PopLatencies.Spikes

	r.pushHist.merge(o.pushHist)
	r.popHist.merge(o.popHist)
}

// finalize computes the quantile fields from the merged histograms.
func (r *Results) finalize() {
	r.pushHist.quantiles(&r.PushLatencies)
	r.popHist.quantiles(&r.PopLatencies)
}

// PushOpsPerSec returns successful pushes per second of measurement time.
func (r *Results) PushOpsPerSec() float64 {
	secs := r.WallTime.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.PushesOK) / secs
}

// PopOpsPerSec returns successful pops per second of measurement time.
func (r *Results) PopOpsPerSec() float64 {
	secs := r.WallTime.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.PopsOK) / secs
}

// PushOverflows returns the weighted count of push samples beyond the
// histogram range.
func (r *Results) PushOverflows() uint64 {
	return r.pushHist.overflow
}

// PopOverflows returns the weighted count of pop samples beyond the
// histogram range.
func (r *Results) PopOverflows() uint64 {
	return r.popHist.overflow
}

func pct(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
