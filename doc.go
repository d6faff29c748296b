// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

// Package sharedstring provides an immutable, reference-counted byte
// string whose copies share one storage block, with pluggable
// allocation strategies deciding where the block's storage comes from
// and which handles may share it.
//
// # Architecture
//
//   - Storage: one block per distinct value, holding an atomic count of
//     live handles ([code.hybscloud.com/atomix]) and the payload
//     acquired from a [Strategy]. The block is freed exactly once, by
//     the handle dropping the last count unit.
//   - Handle: [SharedString] is a (block, begin, end) triple plus its
//     own strategy instance. begin/end may span the whole block or a
//     sub-range of it; see [SharedString.Substring].
//   - Propagation: [Policy] carries the copy/move/swap propagation
//     flags and the always-equal declaration as explicit data. Copy,
//     move and swap either share the block (compatible strategies),
//     adopt the source's strategy and then share (propagating), or
//     deep-copy the view (incompatible).
//
// # Strategies
//
//   - [HeapStrategy]: Go heap, always-equal, collector-released. The
//     default for the zero value and nil strategy arguments.
//   - [CountingStrategy]: instrumented with shared atomic counters and
//     a monotonic identity, for observing sharing and frees.
//   - [LimitStrategy]: byte budget over an inner strategy; the producer
//     of recoverable [ErrOutOfMemory].
//   - [RecycleStrategy]: fixed-class buffer reuse over a bounded
//     lock-free SPSC free list ([code.hybscloud.com/lfq]), falling
//     through to an upstream strategy via [code.hybscloud.com/iox]
//     would-block detection.
//
// # Concurrency
//
// Values are immutable after construction: concurrent reads of any
// number of handles are always safe, and concurrent Clone/Reset of
// distinct handles sharing one block synchronize solely on the block's
// lock-free count. A single handle instance is not internally
// synchronized: mutating one handle (Assign, MoveFrom, Swap, Reset,
// SetString, SetBytes) from several goroutines requires external
// mutual exclusion. No operation blocks; the shared path is O(1), the
// construction and deep-copy paths are O(n).
//
// Duplicate handles with [SharedString.Clone], [SharedString.Assign] or
// [SharedString.MoveFrom]; plain Go assignment copies a handle without
// registering a count unit.
//
// # Errors
//
// [ErrOutOfMemory] surfaces failed acquisition with no partial state
// left behind. A failed fill during construction (see
// [FromReader]) rolls back already-written bytes and releases the raw
// storage before the wrapped error is returned. [ErrIndexOutOfRange]
// reports checked access outside the view. Nothing retries and nothing
// is fatal; callers decide.
//
// # Example
//
//	s, _ := sharedstring.FromString("Hello, World!", nil)
//	c, _ := s.Clone()        // shares the block, no allocation
//	sub, _ := c.Substring(7, 12) // "World", still the same block
//	s.Reset()
//	c.Reset()
//	_ = sub.String()         // block alive until the last handle resets
//	sub.Reset()
package sharedstring
