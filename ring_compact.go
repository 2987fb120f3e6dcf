// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbench

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// CompactRing is Ring without cursor padding: head and tail share a cache
// line. Operationally identical to Ring; the layout difference exists so the
// benchmark harness can measure the cost of producer/consumer false sharing.
type CompactRing[T any] struct {
	head     atomix.Uint64 // next producer ticket
	tail     atomix.Uint64 // next consumer ticket
	slots    []slot[T]
	mask     uint64
	capacity uint64
}

// NewCompactRing creates an unpadded MPMC ring of exactly the given capacity.
// Returns ErrInvalidCapacity unless capacity is a power of two >= 2.
func NewCompactRing[T any](capacity int) (*CompactRing[T], error) {
	if !validCapacity(capacity) {
		return nil, ErrInvalidCapacity
	}

	n := uint64(capacity)
	r := &CompactRing[T]{
		slots:    make([]slot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		r.slots[i].code.StoreRelaxed(i)
	}

	return r, nil
}

// Enqueue adds an element to the ring (non-blocking).
// Returns ErrWouldBlock if the ring is full; *elem is untouched on failure.
func (r *CompactRing[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		ticket := r.head.LoadRelaxed()
		slot := &r.slots[ticket&r.mask]
		code := slot.code.LoadAcquire()
		diff := int64(code) - int64(ticket)

		if diff == 0 {
			if r.head.CompareAndSwapRelaxed(ticket, ticket+1) {
				slot.data = *elem
				slot.code.StoreRelease(ticket + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// EnqueueWait adds an element to the ring, spinning until space is available.
func (r *CompactRing[T]) EnqueueWait(elem *T) {
	ticket := r.head.AddAcqRel(1) - 1
	slot := &r.slots[ticket&r.mask]

	sw := spin.Wait{}
	for slot.code.LoadAcquire() != ticket {
		sw.Once()
	}

	slot.data = *elem
	slot.code.StoreRelease(ticket + 1)
}

// Dequeue removes and returns an element from the ring (non-blocking).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *CompactRing[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		ticket := r.tail.LoadRelaxed()
		slot := &r.slots[ticket&r.mask]
		code := slot.code.LoadAcquire()
		diff := int64(code) - int64(ticket+1)

		if diff == 0 {
			if r.tail.CompareAndSwapRelaxed(ticket, ticket+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.code.StoreRelease(ticket + r.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// DequeueWait removes and returns an element, spinning until one arrives.
func (r *CompactRing[T]) DequeueWait() T {
	ticket := r.tail.AddAcqRel(1) - 1
	slot := &r.slots[ticket&r.mask]

	sw := spin.Wait{}
	for slot.code.LoadAcquire() != ticket+1 {
		sw.Once()
	}

	elem := slot.data
	var zero T
	slot.data = zero
	slot.code.StoreRelease(ticket + r.capacity)
	return elem
}

// Cap returns the ring capacity.
func (r *CompactRing[T]) Cap() int {
	return int(r.capacity)
}

// Len returns the number of buffered elements, clamped to [0, Cap()].
// Advisory: relaxed cursor loads make it exact only in quiescent states.
func (r *CompactRing[T]) Len() int {
	d := int64(r.head.LoadRelaxed() - r.tail.LoadRelaxed())
	if d < 0 {
		return 0
	}
	if d > int64(r.capacity) {
		return int(r.capacity)
	}
	return int(d)
}

// Empty reports whether the ring is empty. Advisory, see Len.
func (r *CompactRing[T]) Empty() bool {
	return r.Len() == 0
}

// Full reports whether the ring is full. Advisory, see Len.
func (r *CompactRing[T]) Full() bool {
	return r.Len() == r.Cap()
}
