// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringbench provides a bounded lock-free MPMC ring for in-process
// message passing, together with the measurement harness used to
// characterize it (see internal/bench and cmd/ringbench).
//
// # The ring
//
// Ring is a fixed-capacity multi-producer multi-consumer queue built on
// Vyukov-style per-slot sequence codes. Two shared 64-bit cursors issue
// tickets; each ticket selects a slot via ticket & mask and identifies the
// exact generation of that slot. The release store of a slot's code after a
// push synchronizes with the acquire load in the matching pop, which is the
// only ordering edge the payload handoff needs; cursor updates stay relaxed.
//
// Capacity must be a power of two and at least 2, and is never rounded:
//
//	q, err := ringbench.NewRing[uint64](65536)
//	if err != nil {
//	    // capacity was not a power of two >= 2
//	}
//
// # Non-blocking and blocking operations
//
// Enqueue and Dequeue never block; they return [ErrWouldBlock] when the ring
// is full or empty:
//
//	v := uint64(42)
//	if err := q.Enqueue(&v); ringbench.IsWouldBlock(err) {
//	    // ring full - back off and retry
//	}
//
//	elem, err := q.Dequeue()
//	if ringbench.IsWouldBlock(err) {
//	    // ring empty
//	}
//
// EnqueueWait and DequeueWait claim a ticket unconditionally and spin with
// CPU pause hints until the slot is ready. They are intended for
// sub-microsecond handoff where an OS wake would cost orders of magnitude
// more than the handoff itself; once the ticket is claimed the caller is
// committed, so there is no timeout or cancellation. Blocking and
// non-blocking callers may be mixed freely on the same ring.
//
// # Layouts
//
// The default Ring isolates each cursor on its own cache line. CompactRing
// keeps the cursors adjacent. Both expose the identical contract; the
// builder selects between them:
//
//	q, err := ringbench.Build[Event](ringbench.New(1024))           // padded
//	q, err := ringbench.Build[Event](ringbench.New(1024).Compact()) // unpadded
//
// # Ordering guarantees
//
// Each payload is delivered whole to exactly one consumer, exactly once.
// Insertion order is per-producer; the global order is the ticket order the
// ring assigns, so two producers may observe their CAS-success order differ
// from their real-time order. Non-blocking operations are lock-free: some
// thread always makes progress, but individual threads may starve under
// contention.
//
// # Advisory queries
//
// Len, Empty and Full use relaxed cursor loads and are exact only in
// quiescent states; Len clamps to [0, Cap()]. The empty/full decisions inside
// Enqueue/Dequeue are structural (per-slot code differences), never cursor
// comparisons, so the operations themselves have no empty/full ambiguity.
//
// # Race detection
//
// Go's race detector cannot observe happens-before edges established through
// atomic memory orderings on separate variables, and reports false positives
// on the slot handoff. Concurrent tests are gated on [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package ringbench
