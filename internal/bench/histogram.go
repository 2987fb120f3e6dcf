// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import "time"

// histogram is a bounded fixed-width latency sketch: buckets[i] counts
// samples in [i*width, (i+1)*width). Insertion is O(1) and quantile recovery
// is exact within one bucket width. Samples beyond the bucket range land in
// the overflow counter instead of growing the sketch.
type histogram struct {
	width    uint64 // bucket width in nanoseconds
	buckets  []uint64
	overflow uint64 // weighted samples beyond buckets*width
}

func newHistogram(width time.Duration, n int) *histogram {
	return &histogram{
		width:   uint64(width),
		buckets: make([]uint64, n),
	}
}

// record adds a sample of the given latency, credited with weight counts.
// Reports whether the sample overflowed the bucket range.
func (h *histogram) record(ns uint64, weight uint64) bool {
	idx := ns / h.width
	if idx < uint64(len(h.buckets)) {
		h.buckets[idx] += weight
		return false
	}
	h.overflow += weight
	return true
}

// merge adds o's counts bucket-wise into h. The histograms must share width
// and bucket count.
func (h *histogram) merge(o *histogram) {
	for i, c := range o.buckets {
		h.buckets[i] += c
	}
	h.overflow += o.overflow
}

// total returns the in-range sample count. Overflowed samples are excluded:
// their position within the tail is unknown, so they contribute to the
// overflow and spike counters instead of the quantiles.
func (h *histogram) total() uint64 {
	var t uint64
	for _, c := range h.buckets {
		t += c
	}
	return t
}

// bucketMid returns the midpoint latency of bucket i.
func (h *histogram) bucketMid(i int) time.Duration {
	return time.Duration(uint64(i)*h.width + h.width/2)
}

// quantiles fills the p50/p95/p99/p999 and mean fields of stats, and adds the
// in-range samples above 10x p50 to the spike counter. Quantiles are reported
// as the midpoint of the bucket whose cumulative count first reaches the rank
// ceil(total*q).
func (h *histogram) quantiles(stats *LatencyStats) {
	total := h.total()
	if total == 0 {
		return
	}

	rank50 := (total*50 + 99) / 100
	rank95 := (total*95 + 99) / 100
	rank99 := (total*99 + 99) / 100
	rank999 := (total*999 + 999) / 1000

	var cumulative uint64
	p50, p95, p99, p999 := -1, -1, -1, -1
	for i, c := range h.buckets {
		cumulative += c
		if p50 < 0 && cumulative >= rank50 {
			p50 = i
		}
		if p95 < 0 && cumulative >= rank95 {
			p95 = i
		}
		if p99 < 0 && cumulative >= rank99 {
			p99 = i
		}
		if p999 < 0 && cumulative >= rank999 {
			p999 = i
		}
	}

	stats.P50 = h.bucketMid(p50)
	stats.P95 = h.bucketMid(p95)
	stats.P99 = h.bucketMid(p99)
	stats.P999 = h.bucketMid(p999)

	var weightedSum float64
	for i, c := range h.buckets {
		weightedSum += float64(c) * (float64(i) + 0.5) * float64(h.width)
	}
	stats.Mean = time.Duration(weightedSum / float64(total))

	spikeIdx := uint64(10*stats.P50) / h.width
	if spikeIdx < uint64(len(h.buckets)) {
		for _, c := range h.buckets[spikeIdx:] {
			stats.Spikes += c
		}
	}
}
