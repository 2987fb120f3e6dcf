// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbench

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Ring is a CAS-based multi-producer multi-consumer bounded queue.
//
// Based on Vyukov's bounded MPMC queue: every slot carries a sequence code
// that advances through the cycle
//
//	i → i+1 → i+capacity → i+capacity+1 → …
//
// code == ticket means the slot is empty and owned by the producer holding
// that ticket; code == ticket+1 means the slot holds the value produced by
// that ticket and is owned by the matching consumer. The per-slot code is the
// source of truth for element visibility, so the head and tail cursors only
// need relaxed ordering: the release store of the code after a push
// synchronizes with the acquire load in the matching pop.
//
// This is the padded layout: head and tail each sit alone in a cache line to
// suppress false sharing between producer and consumer sides. CompactRing is
// the same algorithm with adjacent cursors.
//
// Tickets are 64-bit and never wrap within a realistic program lifetime;
// codes are only ever compared as signed differences against nearby tickets.
type Ring[T any] struct {
	_        pad
	head     atomix.Uint64 // next producer ticket
	_        pad
	tail     atomix.Uint64 // next consumer ticket
	_        pad
	slots    []slot[T]
	mask     uint64
	capacity uint64
}

type slot[T any] struct {
	code atomix.Uint64
	data T
	_    padShort // keeps adjacent slots' codes at least a cache line apart
}

// NewRing creates a padded MPMC ring of exactly the given capacity.
// Returns ErrInvalidCapacity unless capacity is a power of two >= 2.
func NewRing[T any](capacity int) (*Ring[T], error) {
	if !validCapacity(capacity) {
		return nil, ErrInvalidCapacity
	}

	n := uint64(capacity)
	r := &Ring[T]{
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
// Returns ErrWouldBlock if the ring is full. On failure the caller's value
// has not been read: *elem is untouched and still owned by the caller.
func (r *Ring[T]) Enqueue(elem *T) error {
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
		// diff > 0: stale snapshot of head, reload and retry
		sw.Once()
	}
}

// EnqueueWait adds an element to the ring, spinning until space is available.
// The ticket is claimed unconditionally, so the caller is committed to
// completing the handoff; there is no cancellation or timeout.
func (r *Ring[T]) EnqueueWait(elem *T) {
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
// The vacated slot is zeroed so it retains no reference to the element.
func (r *Ring[T]) Dequeue() (T, error) {
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
// Like EnqueueWait, the claimed ticket commits the caller to the handoff.
func (r *Ring[T]) DequeueWait() T {
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
func (r *Ring[T]) Cap() int {
	return int(r.capacity)
}

// Len returns the number of buffered elements, clamped to [0, Cap()].
// Advisory: relaxed cursor loads make it exact only in quiescent states.
func (r *Ring[T]) Len() int {
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
func (r *Ring[T]) Empty() bool {
	return r.Len() == 0
}

// Full reports whether the ring is full. Advisory, see Len.
func (r *Ring[T]) Full() bool {
	return r.Len() == r.Cap()
}
