// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Producers != 1 || cfg.Consumers != 1 {
		t.Fatalf("workers: got %d/%d, want 1/1", cfg.Producers, cfg.Consumers)
	}
	if cfg.Capacity != 65536 {
		t.Fatalf("capacity: got %d, want 65536", cfg.Capacity)
	}
	if !cfg.Blocking || !cfg.Pinning || !cfg.Padding {
		t.Fatalf("blocking/pinning/padding: got %v/%v/%v, want all on",
			cfg.Blocking, cfg.Pinning, cfg.Padding)
	}
	if cfg.LargePayload || cfg.MoveOnlyPayload {
		t.Fatal("payload flags: want both off")
	}
	if cfg.Duration != 17500*time.Millisecond {
		t.Fatalf("duration: got %v", cfg.Duration)
	}
	if cfg.Warmup != 2500*time.Millisecond {
		t.Fatalf("warmup: got %v", cfg.Warmup)
	}
	if cfg.HistBucketWidth != 5*time.Nanosecond {
		t.Fatalf("bucket width: got %v", cfg.HistBucketWidth)
	}
	if cfg.HistBuckets != 4096 {
		t.Fatalf("buckets: got %d", cfg.HistBuckets)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero producers", func(c *Config) { c.Producers = 0 }, "producers"},
		{"zero consumers", func(c *Config) { c.Consumers = 0 }, "consumers"},
		{"capacity one", func(c *Config) { c.Capacity = 1 }, "capacity"},
		{"capacity zero", func(c *Config) { c.Capacity = 0 }, "capacity"},
		{"capacity not pow2", func(c *Config) { c.Capacity = 18 }, "capacity"},
		{"negative warmup", func(c *Config) { c.Warmup = -time.Second }, "warmup"},
		{"duration equals warmup", func(c *Config) { c.Duration = c.Warmup }, "duration"},
		{"duration below warmup", func(c *Config) { c.Duration = c.Warmup - time.Millisecond }, "duration"},
		{"zero bucket width", func(c *Config) { c.HistBucketWidth = 0 }, "bucket width"},
		{"zero buckets", func(c *Config) { c.HistBuckets = 0 }, "bucket count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate: got nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate: got %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestConfigEcho(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Notes = "echo test"

	var sb strings.Builder
	cfg.Echo(&sb)
	out := sb.String()

	for _, want := range []string{
		"producers: 1",
		"capacity: 65536",
		"blocking: on",
		"pinning: on",
		"padding: on",
		"large payload: off",
		"notes: echo test",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("Echo missing %q in:\n%s", want, out)
		}
	}
}
