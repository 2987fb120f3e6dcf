// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64

package bench

import "time"

var cycleEpoch = time.Now()

// cycles falls back to the platform monotonic clock where no cycle counter
// is exposed. One "cycle" is one nanosecond, so calibration converges on a
// ratio of ~1.
func cycles() uint64 {
	return uint64(time.Since(cycleEpoch))
}
