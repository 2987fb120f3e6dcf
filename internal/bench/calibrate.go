// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import "time"

// calibrationSleep is the interval the cycle counter is compared against the
// monotonic clock over. Longer intervals average out frequency wobble at the
// cost of startup time.
const calibrationSleep = 100 * time.Millisecond

// calibrate measures nanoseconds per cycle-counter tick.
//
// The result is approximate: Turbo states, frequency scaling and thermal
// throttling all move the ratio. For best results run on a warmed-up CPU
// with the frequency governor set to "performance".
func calibrate() float64 {
	// warm up the counter path
	cycles()
	cycles()

	t0 := time.Now()
	c0 := cycles()
	time.Sleep(calibrationSleep)
	c1 := cycles()
	t1 := time.Now()

	return float64(t1.Sub(t0).Nanoseconds()) / float64(c1-c0)
}
