// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package bench

// pinSupported reports whether this platform claims thread affinity support.
const pinSupported = false

// pinThread is a no-op where no affinity primitive is wired up. Pinning
// failures are only errors on platforms that claim support.
func pinThread(core int) error {
	return nil
}
