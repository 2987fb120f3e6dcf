// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package bench

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pinSupported reports whether this platform claims thread affinity support.
const pinSupported = true

// pinThread binds the calling thread to the given CPU core via
// sched_setaffinity(2). The caller must have locked the goroutine to its OS
// thread first, otherwise the runtime may migrate the goroutine away from
// the pinned thread.
func pinThread(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("bench: sched_setaffinity(core %d): %w", core, err)
	}
	return nil
}
