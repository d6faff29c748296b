// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring

import (
	"fmt"
	"io"
)

// SharedString is an immutable byte string whose copies share one
// reference-counted storage block instead of duplicating the payload.
// The zero value is the canonical empty string on the default
// HeapStrategy and is ready to use.
//
// A handle owns one count unit on its block. Reset it (or overwrite it
// via Assign, MoveFrom, SetString or SetBytes) when the value is no
// longer needed so strategies with real release semantics get their
// storage back; under HeapStrategy the collector makes this optional.
//
// Duplicate handles with Clone, Assign or MoveFrom. Assigning a
// SharedString with the Go = operator copies the triple without
// registering a new count unit, leaving two handles sharing one unit:
// at most one of them may later be Reset or overwritten.
//
// Several handles may view different sub-ranges of the same block; see
// Substring.
type SharedString struct {
	block    *block
	begin    int
	end      int
	strategy Strategy
}

// FromString builds a handle owning a fresh block holding v.
// A nil strat selects HeapStrategy.
func FromString(v string, strat Strategy) (SharedString, error) {
	return newShared(len(v), strat, func(buf []byte) error {
		copy(buf, v)
		return nil
	})
}

// FromBytes builds a handle owning a fresh copy of v.
// A nil strat selects HeapStrategy.
func FromBytes(v []byte, strat Strategy) (SharedString, error) {
	return newShared(len(v), strat, func(buf []byte) error {
		copy(buf, v)
		return nil
	})
}

// FromReader builds a handle from exactly n bytes of r. A short or
// failed read releases the acquired storage and returns the read error
// wrapped; no partially built value escapes.
func FromReader(r io.Reader, n int, strat Strategy) (SharedString, error) {
	return newShared(n, strat, func(buf []byte) error {
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("sharedstring: reading %d bytes: %w", n, err)
		}
		return nil
	})
}

// newShared builds a handle spanning a whole fresh block. Zero-length
// input yields the canonical empty value without touching the strategy.
func newShared(n int, strat Strategy, fill func([]byte) error) (SharedString, error) {
	if strat == nil {
		strat = HeapStrategy{}
	}
	if n == 0 {
		return SharedString{strategy: strat}, nil
	}
	b, err := newBlock(n, strat, fill)
	if err != nil {
		return SharedString{}, err
	}
	return SharedString{block: b, begin: 0, end: n, strategy: strat}, nil
}

// strategyOrDefault resolves the handle's strategy; nil means the
// package default.
func (s SharedString) strategyOrDefault() Strategy {
	if s.strategy == nil {
		return HeapStrategy{}
	}
	return s.strategy
}

// Strategy returns the allocation strategy the handle uses for any
// future allocation it performs.
func (s SharedString) Strategy() Strategy { return s.strategyOrDefault() }

// Len returns the number of bytes in the handle's view.
func (s SharedString) Len() int { return s.end - s.begin }

// Empty reports whether the view holds no bytes.
func (s SharedString) Empty() bool { return s.begin == s.end }

// Bytes returns the handle's view into the shared payload. The slice is
// read-only: callers must not modify it, and it is valid only while at
// least one handle keeps the block alive. Empty handles return nil.
func (s SharedString) Bytes() []byte {
	if s.block == nil {
		return nil
	}
	return s.block.data[s.begin:s.end:s.end]
}

// String returns a copy of the view as a Go string.
func (s SharedString) String() string { return string(s.Bytes()) }

// At returns the byte at index i, or ErrIndexOutOfRange when i is not
// in [0, Len()).
func (s SharedString) At(i int) (byte, error) {
	if i < 0 || i >= s.Len() {
		return 0, ErrIndexOutOfRange
	}
	return s.block.data[s.begin+i], nil
}

// Front returns the first byte of the view. Calling it on an empty
// handle is a caller error and traps.
func (s SharedString) Front() byte { return s.block.data[s.begin] }

// Back returns the last byte of the view. Same precondition as Front.
func (s SharedString) Back() byte { return s.block.data[s.end-1] }

// Reset drops the handle's count unit on its block and returns the
// handle to the canonical empty value. The last handle to drop a block
// frees its storage through that handle's strategy. Reset on an empty
// handle is a no-op; the handle stays usable either way.
func (s *SharedString) Reset() {
	if s.block != nil {
		s.block.release(s.strategyOrDefault())
	}
	s.block = nil
	s.begin, s.end = 0, 0
}

// Clone copy-constructs a new handle from s. The clone starts with
// SelectForCopy of s's strategy; when that instance is compatible with
// s's the block is shared without allocating, otherwise the view is
// deep-copied into a fresh block owned by the clone's strategy.
func (s SharedString) Clone() (SharedString, error) {
	strat := s.strategyOrDefault().SelectForCopy()
	if s.block == nil {
		return SharedString{strategy: strat}, nil
	}
	if compatible(strat, s.strategyOrDefault()) {
		return SharedString{
			block:    s.block.retain(),
			begin:    s.begin,
			end:      s.end,
			strategy: strat,
		}, nil
	}
	return deepCopy(s, strat)
}

// deepCopy builds a fresh block under strat holding exactly src's view.
// The resulting handle spans the whole new block.
func deepCopy(src SharedString, strat Strategy) (SharedString, error) {
	n := src.Len()
	b, err := newBlock(n, strat, func(buf []byte) error {
		copy(buf, src.block.data[src.begin:src.end])
		return nil
	})
	if err != nil {
		return SharedString{}, err
	}
	return SharedString{block: b, begin: 0, end: n, strategy: strat}, nil
}

// Assign copy-assigns src into s under the propagation rules: share the
// block when the strategies are compatible; adopt src's strategy and
// then share when src's copy-propagation flag is set; otherwise
// deep-copy src's view under s's own strategy. Self-assignment is a
// no-op. A failed deep copy returns ErrOutOfMemory and leaves s
// unchanged.
func (s *SharedString) Assign(src *SharedString) error {
	if s == src {
		return nil
	}
	own, other := s.strategyOrDefault(), src.strategyOrDefault()
	switch {
	case compatible(own, other):
		s.adopt(src, s.strategy)
	case other.Policy().PropagateOnCopy:
		s.adopt(src, src.strategy)
	default:
		if src.block == nil {
			s.Reset()
			return nil
		}
		fresh, err := deepCopy(*src, own)
		if err != nil {
			return err
		}
		if s.block != nil {
			s.block.release(own)
		}
		s.block, s.begin, s.end = fresh.block, fresh.begin, fresh.end
	}
	return nil
}

// adopt releases s's current block, takes a share of src's, and installs
// strat as s's strategy. The retain happens before the release so the
// count stays balanced when both handles already share one block.
func (s *SharedString) adopt(src *SharedString, strat Strategy) {
	nb := src.block
	if nb != nil {
		nb.retain()
	}
	if s.block != nil {
		s.block.release(s.strategyOrDefault())
	}
	s.block = nb
	s.begin, s.end = src.begin, src.end
	s.strategy = strat
}

// MoveFrom transfers src's block into s. When the strategies are
// compatible, or src's move-propagation flag is set, the transfer is a
// pure pointer steal with no atomic traffic and src becomes the
// canonical empty value; the strategy is adopted only in the
// propagating, incompatible case. Otherwise the move degrades to a deep
// copy under s's strategy and src is left untouched. Self-move is a
// no-op. A failed deep copy returns ErrOutOfMemory and leaves both
// handles unchanged.
func (s *SharedString) MoveFrom(src *SharedString) error {
	if s == src {
		return nil
	}
	own, other := s.strategyOrDefault(), src.strategyOrDefault()
	comp := compatible(own, other)
	if !comp && !other.Policy().PropagateOnMove {
		if src.block == nil {
			s.Reset()
			return nil
		}
		fresh, err := deepCopy(*src, own)
		if err != nil {
			return err
		}
		if s.block != nil {
			s.block.release(own)
		}
		s.block, s.begin, s.end = fresh.block, fresh.begin, fresh.end
		return nil
	}
	if s.block != nil {
		s.block.release(own)
	}
	if !comp {
		s.strategy = src.strategy
	}
	s.block, s.begin, s.end = src.block, src.begin, src.end
	src.block, src.begin, src.end = nil, 0, 0
	return nil
}

// SetString replaces the handle's value with a fresh block holding v,
// acquired through the handle's own strategy. The previous block's
// count unit is dropped only after the new block is built, so a failed
// acquisition leaves the handle unchanged.
func (s *SharedString) SetString(v string) error {
	return s.set(len(v), func(buf []byte) error {
		copy(buf, v)
		return nil
	})
}

// SetBytes replaces the handle's value with a fresh copy of v. Same
// contract as SetString.
func (s *SharedString) SetBytes(v []byte) error {
	return s.set(len(v), func(buf []byte) error {
		copy(buf, v)
		return nil
	})
}

func (s *SharedString) set(n int, fill func([]byte) error) error {
	if n == 0 {
		s.Reset()
		return nil
	}
	strat := s.strategyOrDefault()
	b, err := newBlock(n, strat, fill)
	if err != nil {
		return err
	}
	if s.block != nil {
		s.block.release(strat)
	}
	s.block, s.begin, s.end = b, 0, n
	return nil
}

// Swap exchanges the two handles' blocks and views unconditionally, and
// their strategies only when the swap-propagation flag is set. Without
// propagation the data still moves while each handle keeps its own
// strategy, which is only valid when the two strategies are already
// compatible; a caller precondition, not a runtime check.
func (s *SharedString) Swap(other *SharedString) {
	if s == other {
		return
	}
	if s.strategyOrDefault().Policy().PropagateOnSwap {
		s.strategy, other.strategy = other.strategy, s.strategy
	}
	s.block, other.block = other.block, s.block
	s.begin, other.begin = other.begin, s.begin
	s.end, other.end = other.end, s.end
}

// Substring returns a handle sharing s's block but viewing only
// [lo, hi) of s's view. No allocation is performed; the sub-handle
// keeps s's strategy and owns its own count unit. lo == hi yields the
// canonical empty value. Arguments outside 0 <= lo <= hi <= Len()
// signal ErrIndexOutOfRange.
func (s SharedString) Substring(lo, hi int) (SharedString, error) {
	if lo < 0 || lo > hi || hi > s.Len() {
		return SharedString{}, ErrIndexOutOfRange
	}
	if lo == hi {
		return SharedString{strategy: s.strategy}, nil
	}
	return SharedString{
		block:    s.block.retain(),
		begin:    s.begin + lo,
		end:      s.begin + hi,
		strategy: s.strategy,
	}, nil
}
