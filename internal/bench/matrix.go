// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sugawarayuuta/sonnet"
)

// A matrix file is a JSON array of suites. Each suite maps flag names to a
// value or a list of values; the cross product of the lists expands into
// trial configs. "repeats" (default 1) runs each combination several times
// and "notes" tags every row the suite produces.
//
//	[
//	  {
//	    "repeats": 3,
//	    "notes": "padding sweep",
//	    "producers": [1, 2, 4],
//	    "consumers": [1, 2, 4],
//	    "padding": ["on", "off"]
//	  }
//	]

// Trial is one expanded matrix entry plus its position, for progress lines.
type Trial struct {
	Config Config

	Suite, Suites   int // 1-based suite index, suite count
	Combo, Combos   int // 1-based combination index within the suite
	Repeat, Repeats int // 1-based repeat index
}

// LoadMatrix reads a JSON matrix file and expands it over the base config.
// Every expanded config is validated before any trial runs; the first bad
// one fails the whole load.
func LoadMatrix(path string, base Config) ([]Trial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: read matrix: %w", err)
	}

	var suites []map[string]any
	if err := sonnet.Unmarshal(data, &suites); err != nil {
		return nil, fmt.Errorf("bench: parse matrix %q: %w", path, err)
	}
	if len(suites) == 0 {
		return nil, fmt.Errorf("bench: matrix %q contains no suites", path)
	}

	var trials []Trial
	for si, suite := range suites {
		repeats, combos, err := expandSuite(suite, base)
		if err != nil {
			return nil, fmt.Errorf("bench: matrix suite %d: %w", si+1, err)
		}
		for ci, cfg := range combos {
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("bench: matrix suite %d combo %d: %w", si+1, ci+1, err)
			}
			for r := 1; r <= repeats; r++ {
				trials = append(trials, Trial{
					Config: cfg,
					Suite:  si + 1, Suites: len(suites),
					Combo: ci + 1, Combos: len(combos),
					Repeat: r, Repeats: repeats,
				})
			}
		}
	}
	return trials, nil
}

// expandSuite turns one suite into the cross product of its field lists.
func expandSuite(suite map[string]any, base Config) (int, []Config, error) {
	repeats := 1
	if v, ok := suite["repeats"]; ok {
		n, err := toInt(v)
		if err != nil {
			return 0, nil, fmt.Errorf("repeats: %w", err)
		}
		if n < 1 {
			return 0, nil, fmt.Errorf("repeats must be >= 1, got %d", n)
		}
		repeats = n
	}

	keys := make([]string, 0, len(suite))
	for k := range suite {
		if k == "repeats" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []Config{base}
	for _, k := range keys {
		values, ok := suite[k].([]any)
		if !ok {
			values = []any{suite[k]} // scalar accepted wherever a list is
		}
		if len(values) == 0 {
			return 0, nil, fmt.Errorf("field %q has an empty value list", k)
		}

		next := make([]Config, 0, len(combos)*len(values))
		for _, cfg := range combos {
			for _, v := range values {
				c := cfg
				if err := applyField(&c, k, v); err != nil {
					return 0, nil, err
				}
				next = append(next, c)
			}
		}
		combos = next
	}
	return repeats, combos, nil
}

// applyField sets one config field from its flag name.
func applyField(cfg *Config, key string, v any) error {
	var err error
	switch key {
	case "producers":
		cfg.Producers, err = toInt(v)
	case "consumers":
		cfg.Consumers, err = toInt(v)
	case "capacity":
		cfg.Capacity, err = toInt(v)
	case "blocking":
		cfg.Blocking, err = toBool(v)
	case "duration-ms":
		cfg.Duration, err = toMillis(v)
	case "warmup-ms":
		cfg.Warmup, err = toMillis(v)
	case "hist-bucket-ns":
		var n int
		n, err = toInt(v)
		cfg.HistBucketWidth = time.Duration(n) * time.Nanosecond
	case "hist-buckets":
		cfg.HistBuckets, err = toInt(v)
	case "pinning":
		cfg.Pinning, err = toBool(v)
	case "padding":
		cfg.Padding, err = toBool(v)
	case "large-payload":
		cfg.LargePayload, err = toBool(v)
	case "move-only-payload":
		cfg.MoveOnlyPayload, err = toBool(v)
	case "csv":
		cfg.CSVPath, err = toString(v)
	case "notes":
		cfg.Notes, err = toString(v)
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

func toInt(v any) (int, error) {
	n, ok := v.(float64)
	if !ok || n != float64(int(n)) {
		return 0, fmt.Errorf("expected integer, got %v", v)
	}
	return int(n), nil
}

func toMillis(v any) (time.Duration, error) {
	n, err := toInt(v)
	return time.Duration(n) * time.Millisecond, err
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case float64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case string:
		switch strings.ToLower(b) {
		case "on", "true", "1":
			return true, nil
		case "off", "false", "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected boolean, got %v", v)
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", v)
	}
	return s, nil
}
