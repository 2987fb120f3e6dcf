// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbench_test

import (
	"testing"

	"code.hybscloud.com/ringbench"
)

const benchCapacity = 65536

func BenchmarkRingEnqueueDequeue(b *testing.B) {
	r, err := ringbench.NewRing[uint64](benchCapacity)
	if err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		var v uint64
		for pb.Next() {
			if r.Enqueue(&v) == nil {
				v++
			}
			r.Dequeue()
		}
	})
}

func BenchmarkCompactRingEnqueueDequeue(b *testing.B) {
	r, err := ringbench.NewCompactRing[uint64](benchCapacity)
	if err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		var v uint64
		for pb.Next() {
			if r.Enqueue(&v) == nil {
				v++
			}
			r.Dequeue()
		}
	})
}

func BenchmarkRingBlocking(b *testing.B) {
	r, err := ringbench.NewRing[uint64](benchCapacity)
	if err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		var v uint64
		for pb.Next() {
			r.EnqueueWait(&v)
			r.DequeueWait()
			v++
		}
	})
}
