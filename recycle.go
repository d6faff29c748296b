// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// RecycleStrategy reuses fixed-class buffers through a bounded
// lock-free free list. Acquire serves requests up to the class size
// from the free list when one is available; larger requests and misses
// fall through to the upstream strategy. Release feeds class-size
// buffers back to the free list until it is full.
//
// The free list is a single-producer single-consumer queue: one
// goroutine must perform all Acquire calls and one goroutine all
// Release calls (they may be the same goroutine). Handles built on the
// strategy follow the same discipline.
type RecycleStrategy struct {
	class    int
	upstream Strategy
	free     lfq.SPSC[[]byte]
	slot     []byte
}

// NewRecycle returns a recycling strategy for buffers of class bytes
// with a free list holding up to capacity of them. A nil upstream uses
// HeapStrategy.
func NewRecycle(class, capacity int, upstream Strategy) *RecycleStrategy {
	if upstream == nil {
		upstream = HeapStrategy{}
	}
	r := &RecycleStrategy{class: class, upstream: upstream}
	r.free.Init(capacity)
	return r
}

// Acquire returns an n-byte slice, reusing a free-listed buffer when n
// fits the class. An empty free list is not an error; the request is
// served by a fresh class-size buffer from upstream so it can be
// recycled later.
func (r *RecycleStrategy) Acquire(n int) ([]byte, error) {
	if n > r.class {
		return r.upstream.Acquire(n)
	}
	buf, err := r.free.Dequeue()
	if err != nil {
		if !iox.IsWouldBlock(err) {
			return nil, err
		}
		buf, err = r.upstream.Acquire(r.class)
		if err != nil {
			return nil, err
		}
	}
	return buf[:n], nil
}

// Release feeds class-size buffers back to the free list; anything else,
// and anything arriving while the free list is full, goes back to the
// upstream strategy.
func (r *RecycleStrategy) Release(buf []byte) {
	if cap(buf) != r.class {
		r.upstream.Release(buf)
		return
	}
	r.slot = buf[:r.class]
	if err := r.free.Enqueue(&r.slot); err != nil {
		r.upstream.Release(buf)
	}
}

// Equal reports whether other is the same recycling pool.
func (r *RecycleStrategy) Equal(other Strategy) bool {
	o, ok := other.(*RecycleStrategy)
	return ok && o == r
}

// Policy returns instance-identity equality with no propagation.
func (r *RecycleStrategy) Policy() Policy { return Policy{} }

// SelectForCopy returns this instance; copies share the pool.
func (r *RecycleStrategy) SelectForCopy() Strategy { return r }
