// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command ringbench measures the latency and throughput of the bounded
// lock-free MPMC ring under a configurable producer/consumer load, appending
// one CSV row per trial.
//
// Usage:
//
//	go run ./cmd/ringbench -producers 4 -consumers 4 -capacity 65536
//	go run ./cmd/ringbench -matrix suites/padding_sweep.json
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"code.hybscloud.com/ringbench/internal/bench"
)

func main() {
	os.Exit(run())
}

func run() int {
	def := bench.DefaultConfig()

	producers := flag.Int("producers", def.Producers, "number of producers")
	consumers := flag.Int("consumers", def.Consumers, "number of consumers")
	capacity := flag.Int("capacity", def.Capacity, "ring capacity (power of two >= 2)")
	blocking := flag.Bool("blocking", def.Blocking, "use blocking push/pop instead of try variants")
	durationMS := flag.Int64("duration-ms", def.Duration.Milliseconds(), "total trial duration in ms")
	warmupMS := flag.Int64("warmup-ms", def.Warmup.Milliseconds(), "warmup in ms")
	histBucketNS := flag.Int64("hist-bucket-ns", def.HistBucketWidth.Nanoseconds(), "histogram bucket width in ns")
	histBuckets := flag.Int("hist-buckets", def.HistBuckets, "max histogram buckets")
	pinning := flag.Bool("pinning", def.Pinning, "pin workers to cores")
	padding := flag.Bool("padding", def.Padding, "isolate ring cursors on their own cache lines")
	largePayload := flag.Bool("large-payload", def.LargePayload, "use 1024-byte payload")
	moveOnlyPayload := flag.Bool("move-only-payload", def.MoveOnlyPayload, "use owning-pointer payload")
	csvPath := flag.String("csv", def.CSVPath, "CSV output path")
	notes := flag.String("notes", def.Notes, "notes for this run")
	matrixPath := flag.String("matrix", "", "JSON matrix file; runs a suite of trials instead of one")
	flag.Parse()

	cfg := bench.Config{
		Producers:       *producers,
		Consumers:       *consumers,
		Capacity:        *capacity,
		Blocking:        *blocking,
		Duration:        time.Duration(*durationMS) * time.Millisecond,
		Warmup:          time.Duration(*warmupMS) * time.Millisecond,
		HistBucketWidth: time.Duration(*histBucketNS) * time.Nanosecond,
		HistBuckets:     *histBuckets,
		Pinning:         *pinning,
		Padding:         *padding,
		LargePayload:    *largePayload,
		MoveOnlyPayload: *moveOnlyPayload,
		CSVPath:         *csvPath,
		Notes:           *notes,
	}

	if *matrixPath != "" {
		trials, err := bench.LoadMatrix(*matrixPath, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "argument error: %v\n", err)
			return 1
		}
		for i, tr := range trials {
			fmt.Printf("\n[%d/%d] suite %d/%d, combo %d/%d, repeat %d/%d\n",
				i+1, len(trials), tr.Suite, tr.Suites, tr.Combo, tr.Combos, tr.Repeat, tr.Repeats)
			if code := runTrial(tr.Config); code != 0 {
				return code
			}
		}
		return 0
	}
	return runTrial(cfg)
}

func runTrial(cfg bench.Config) int {
	h, err := bench.NewHarness(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "argument error: %v\n", err)
		flag.Usage()
		return 1
	}

	cfg.Echo(os.Stdout)

	t0 := time.Now()
	results, err := h.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		return 1
	}
	elapsed := time.Since(t0)

	activeSecs := (cfg.Duration - cfg.Warmup).Seconds()
	messages := (results.PushesOK + results.PopsOK) / 2
	fmt.Printf("\n[bench] ran in %.2f s\n", elapsed.Seconds())
	fmt.Printf("Messages processed (active phase): %d million\n", messages/1_000_000)
	fmt.Printf("Average speed (active phase): %.1f million messages/s\n",
		float64(messages)/activeSecs/1e6)

	results.AppendCSV()
	return 0
}
