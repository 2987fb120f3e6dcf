// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"

	"code.hybscloud.com/ringbench"
)

// sampleRate is the cadence at which successful operations feed the
// histogram. Each recorded sample is credited with sampleRate counts so the
// histogram totals remain interpretable as per-operation.
const sampleRate = 100

// Harness runs one measurement trial against a freshly built ring.
type Harness struct {
	cfg Config
}

// NewHarness validates the configuration and returns a trial runner.
func NewHarness(cfg Config) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Harness{cfg: cfg}, nil
}

// Run executes the trial and returns the aggregated results.
// A pinning failure on a platform that supports affinity is fatal for the
// trial and returned as an error.
func (h *Harness) Run() (*Results, error) {
	switch {
	case h.cfg.LargePayload && h.cfg.MoveOnlyPayload:
		return runTrial(h.cfg, makeBlockPtr)
	case h.cfg.LargePayload:
		return runTrial(h.cfg, makeBlock)
	case h.cfg.MoveOnlyPayload:
		return runTrial(h.cfg, makeWordPtr)
	default:
		return runTrial(h.cfg, makeWord)
	}
}

// trialState is the shared coordination block between the main goroutine and
// the workers of one trial.
type trialState struct {
	collecting atomix.Bool // warmup over, record samples
	done       atomix.Bool // measurement over, exit loops

	producersExited atomix.Int64
	consumersExited atomix.Int64

	pinErrs chan error
}

func runTrial[T any](cfg Config, newItem func(uint64) T) (*Results, error) {
	b := ringbench.New(cfg.Capacity)
	if !cfg.Padding {
		b.Compact()
	}
	q, err := ringbench.Build[T](b)
	if err != nil {
		return nil, err
	}

	nsPerCycle := calibrate()

	st := &trialState{
		pinErrs: make(chan error, cfg.Producers+cfg.Consumers),
	}

	producerResults := make([]*Results, cfg.Producers)
	consumerResults := make([]*Results, cfg.Consumers)

	var prodWG, consWG sync.WaitGroup
	for i := 0; i < cfg.Producers; i++ {
		producerResults[i] = newResults(cfg)
		prodWG.Add(1)
		go producer(i, &cfg, q, producerResults[i], st, nsPerCycle, newItem, &prodWG)
	}
	for i := 0; i < cfg.Consumers; i++ {
		consumerResults[i] = newResults(cfg)
		consWG.Add(1)
		go consumer(i, &cfg, q, consumerResults[i], st, nsPerCycle, &consWG)
	}

	time.Sleep(cfg.Warmup)
	measurementStart := time.Now()
	st.collecting.StoreRelease(true)

	time.Sleep(cfg.Duration - cfg.Warmup)
	st.done.StoreRelease(true)

	if cfg.Blocking {
		unstickWorkers(&cfg, q, st, newItem, &prodWG)
	}
	prodWG.Wait()
	consWG.Wait()
	wallTime := time.Since(measurementStart)

	select {
	case err := <-st.pinErrs:
		return nil, err
	default:
	}

	results := newResults(cfg)
	results.WallTime = wallTime
	for _, r := range producerResults {
		results.merge(r)
	}
	for _, r := range consumerResults {
		results.merge(r)
	}
	results.finalize()
	return results, nil
}

// unstickWorkers releases workers committed to a blocking handoff after the
// trial ends. A claimed ticket cannot be cancelled, so a producer blocked on
// a full ring is released by draining, and a consumer blocked on an empty
// ring by feeding it a sentinel. Runs post-measurement; nothing it moves is
// recorded.
func unstickWorkers[T any](cfg *Config, q ringbench.Queue[T], st *trialState, newItem func(uint64) T, prodWG *sync.WaitGroup) {
	backoff := iox.Backoff{}
	for st.producersExited.Load() < int64(cfg.Producers) {
		if _, err := q.Dequeue(); err != nil {
			backoff.Wait()
		} else {
			backoff.Reset()
		}
	}
	prodWG.Wait()

	backoff = iox.Backoff{}
	sentinel := newItem(0)
	for st.consumersExited.Load() < int64(cfg.Consumers) {
		if q.Enqueue(&sentinel) != nil {
			backoff.Wait()
		} else {
			sentinel = newItem(0)
			backoff.Reset()
		}
	}
}

// pinWorker binds the calling worker's OS thread, which the worker has already
// locked, to the given core when pinning is configured. Reports failure through st.pinErrs; the
// worker keeps running unpinned so the trial topology survives until the
// main goroutine discards the result.
func pinWorker(cfg *Config, core int, st *trialState) {
	if !cfg.Pinning {
		return
	}
	if err := pinThread(core % runtime.NumCPU()); err != nil && pinSupported {
		select {
		case st.pinErrs <- err:
		default:
		}
	}
}

func producer[T any](id int, cfg *Config, q ringbench.Queue[T], res *Results, st *trialState, nsPerCycle float64, newItem func(uint64) T, wg *sync.WaitGroup) {
	defer wg.Done()
	defer st.producersExited.Add(1)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	pinWorker(cfg, id, st)

	var i uint64
	backoff := iox.Backoff{}

	// warmup: same loop, no recording
	for !st.collecting.LoadAcquire() {
		item := newItem(uint64(id) + uint64(cfg.Producers)*i)
		if cfg.Blocking {
			q.EnqueueWait(&item)
			i++
		} else if q.Enqueue(&item) == nil {
			i++
			backoff.Reset()
		} else {
			backoff.Wait()
		}
	}

	for !st.done.LoadAcquire() {
		item := newItem(uint64(id) + uint64(cfg.Producers)*i)
		ok := true
		t0 := cycles()
		if cfg.Blocking {
			q.EnqueueWait(&item)
		} else {
			ok = q.Enqueue(&item) == nil
		}
		t1 := cycles()
		lat := uint64(float64(t1-t0) * nsPerCycle)

		if ok {
			i++
			d := time.Duration(lat)
			if d < res.PushLatencies.Min {
				res.PushLatencies.Min = d
			}
			if d > res.PushLatencies.Max {
				res.PushLatencies.Max = d
			}
			if i%sampleRate == 0 {
				if res.pushHist.record(lat, sampleRate) {
					res.PushLatencies.Spikes += sampleRate
				}
			}
			res.PushesOK++
			backoff.Reset()
		} else {
			res.TryPushFailures++
			backoff.Wait()
		}
	}
}

func consumer[T any](id int, cfg *Config, q ringbench.Queue[T], res *Results, st *trialState, nsPerCycle float64, wg *sync.WaitGroup) {
	defer wg.Done()
	defer st.consumersExited.Add(1)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	pinWorker(cfg, id+cfg.Producers, st)

	var i uint64
	backoff := iox.Backoff{}

	// warmup: same loop, no recording
	for !st.collecting.LoadAcquire() {
		if cfg.Blocking {
			q.DequeueWait()
			i++
		} else if _, err := q.Dequeue(); err == nil {
			i++
			backoff.Reset()
		} else {
			backoff.Wait()
		}
	}

	for !st.done.LoadAcquire() {
		ok := true
		t0 := cycles()
		if cfg.Blocking {
			q.DequeueWait()
		} else {
			_, err := q.Dequeue()
			ok = err == nil
		}
		t1 := cycles()
		if cfg.Blocking && st.done.LoadAcquire() {
			break // released by a shutdown sentinel; not part of the measurement
		}
		lat := uint64(float64(t1-t0) * nsPerCycle)

		if ok {
			i++
			d := time.Duration(lat)
			if d < res.PopLatencies.Min {
				res.PopLatencies.Min = d
			}
			if d > res.PopLatencies.Max {
				res.PopLatencies.Max = d
			}
			if i%sampleRate == 0 {
				if res.popHist.record(lat, sampleRate) {
					res.PopLatencies.Spikes += sampleRate
				}
			}
			res.PopsOK++
			backoff.Reset()
		} else {
			res.TryPopFailures++
			backoff.Wait()
		}
	}
}
