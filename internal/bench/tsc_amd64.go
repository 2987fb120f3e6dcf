// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64

package bench

// cycles reads the CPU's time-stamp counter.
// Implemented in tsc_amd64.s.
func cycles() uint64
