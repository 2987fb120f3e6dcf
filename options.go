// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbench

// Options configures ring creation.
type Options struct {
	// Layout hint
	compact bool // cursors share a cache line

	// Capacity (must be a power of two >= 2; never rounded)
	capacity int
}

// Builder creates rings with fluent configuration.
//
// Example:
//
//	// Padded ring (default, false-sharing resistant)
//	q, err := ringbench.Build[Event](ringbench.New(65536))
//
//	// Compact ring (adjacent cursors)
//	q, err := ringbench.Build[Event](ringbench.New(65536).Compact())
type Builder struct {
	opts Options
}

// New creates a ring builder with the given capacity.
// Capacity validation is deferred to Build so that a bad value is reported
// as an error rather than a panic.
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// Compact selects the unpadded layout: head and tail cursors adjacent in
// memory instead of isolated on their own cache lines. Same operational
// contract, smaller footprint, more producer/consumer false sharing.
func (b *Builder) Compact() *Builder {
	b.opts.compact = true
	return b
}

// Build creates a Queue[T] with the configured layout.
// Returns ErrInvalidCapacity unless the capacity is a power of two >= 2.
func Build[T any](b *Builder) (Queue[T], error) {
	if b.opts.compact {
		return NewCompactRing[T](b.opts.capacity)
	}
	return NewRing[T](b.opts.capacity)
}
