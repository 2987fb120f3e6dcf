// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"testing"
	"time"

	"code.hybscloud.com/ringbench"
)

// smokeConfig is a short trial: long enough to collect samples, short
// enough for the test suite.
func smokeConfig() Config {
	cfg := DefaultConfig()
	cfg.Capacity = 1024
	cfg.Duration = 250 * time.Millisecond
	cfg.Warmup = 50 * time.Millisecond
	cfg.Pinning = false // CI runners restrict affinity masks
	cfg.CSVPath = ""
	return cfg
}

func runSmoke(t *testing.T, cfg Config) *Results {
	t.Helper()
	h, err := NewHarness(cfg)
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	results, err := h.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return results
}

func TestHarnessValidates(t *testing.T) {
	cfg := smokeConfig()
	cfg.Capacity = 18
	if _, err := NewHarness(cfg); err == nil {
		t.Fatal("NewHarness: got nil, want capacity error")
	}
}

func TestHarnessNonBlocking(t *testing.T) {
	if ringbench.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	cfg := smokeConfig()
	cfg.Blocking = false
	cfg.Producers = 2
	cfg.Consumers = 2

	results := runSmoke(t, cfg)

	if results.PushesOK == 0 {
		t.Fatal("PushesOK: got 0")
	}
	if results.PopsOK == 0 {
		t.Fatal("PopsOK: got 0")
	}
	if results.WallTime <= 0 {
		t.Fatalf("WallTime: got %v", results.WallTime)
	}
}

func TestHarnessBlocking(t *testing.T) {
	if ringbench.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	cfg := smokeConfig()
	cfg.Blocking = true
	cfg.Producers = 2
	cfg.Consumers = 2

	// must terminate: blocked ticket holders are unstuck after the trial
	results := runSmoke(t, cfg)

	if results.PushesOK == 0 || results.PopsOK == 0 {
		t.Fatalf("counts: pushes %d, pops %d", results.PushesOK, results.PopsOK)
	}
	if results.TryPushFailures != 0 || results.TryPopFailures != 0 {
		t.Fatalf("blocking mode recorded try failures: %d/%d",
			results.TryPushFailures, results.TryPopFailures)
	}
}

func TestHarnessPayloadVariants(t *testing.T) {
	if ringbench.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	tests := []struct {
		name     string
		large    bool
		moveOnly bool
	}{
		{"small", false, false},
		{"large", true, false},
		{"small move-only", false, true},
		{"large move-only", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smokeConfig()
			cfg.Blocking = false
			cfg.Duration = 150 * time.Millisecond
			cfg.Warmup = 30 * time.Millisecond
			cfg.LargePayload = tt.large
			cfg.MoveOnlyPayload = tt.moveOnly

			results := runSmoke(t, cfg)
			if results.PushesOK == 0 || results.PopsOK == 0 {
				t.Fatalf("counts: pushes %d, pops %d", results.PushesOK, results.PopsOK)
			}
		})
	}
}

func TestHarnessCompactLayout(t *testing.T) {
	if ringbench.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	cfg := smokeConfig()
	cfg.Blocking = false
	cfg.Padding = false
	cfg.Duration = 150 * time.Millisecond
	cfg.Warmup = 30 * time.Millisecond

	results := runSmoke(t, cfg)
	if results.PushesOK == 0 {
		t.Fatal("PushesOK: got 0")
	}
}

func TestPayloadShapes(t *testing.T) {
	if got := makeWord(7); got != 7 {
		t.Fatalf("makeWord: got %d", got)
	}

	b := makeBlock(3)
	if len(b) != blockWords || b[0] != 3 || b[blockWords-1] != 3 {
		t.Fatalf("makeBlock: got %v...", b[0])
	}

	p := makeWordPtr(9)
	if p == nil || *p != 9 {
		t.Fatal("makeWordPtr: bad pointer")
	}
	bp := makeBlockPtr(4)
	if bp == nil || bp[10] != 4 {
		t.Fatal("makeBlockPtr: bad pointer")
	}
}

func TestCalibrate(t *testing.T) {
	nsPerCycle := calibrate()
	if nsPerCycle <= 0 {
		t.Fatalf("calibrate: got %v, want > 0", nsPerCycle)
	}
	// a cycle cannot be slower than a microsecond on anything that runs Go
	if nsPerCycle > 1000 {
		t.Fatalf("calibrate: got %v ns/cycle, implausible", nsPerCycle)
	}
}

func TestCyclesAdvances(t *testing.T) {
	c0 := cycles()
	time.Sleep(time.Millisecond)
	c1 := cycles()
	if c1 <= c0 {
		t.Fatalf("cycles did not advance: %d -> %d", c0, c1)
	}
}
