// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring

import "code.hybscloud.com/atomix"

// identity is the global monotonic counter for strategy identities.
var identity atomix.Uint32

// nextIdentity returns the next monotonically increasing identity.
func nextIdentity() uint32 {
	return identity.Add(1)
}

// counters is the shared instrumentation cell of a CountingStrategy.
// Instances returned by SelectForCopy of a non-isolated strategy share
// the cell, so their observations aggregate.
type counters struct {
	identity uint32
	allocs   atomix.Uint32
	deallocs atomix.Uint32
	live     atomix.Uint32
}

// CountingStrategy is a heap-backed strategy instrumented with shared
// atomic counters and a distinct identity. Two counting strategies are
// equal exactly when they share one cell, which lets callers observe
// block sharing, deep copies, and the moment a block is freed.
type CountingStrategy struct {
	cell     *counters
	policy   Policy
	isolated bool
}

// NewCounting returns a counting strategy with a fresh identity and the
// given propagation policy. SelectForCopy returns the same instance.
func NewCounting(policy Policy) *CountingStrategy {
	return &CountingStrategy{cell: &counters{identity: nextIdentity()}, policy: policy}
}

// NewIsolated returns a counting strategy that never propagates and
// whose SelectForCopy yields a brand-new identity, so copy-constructed
// handles never share its storage.
func NewIsolated() *CountingStrategy {
	return &CountingStrategy{cell: &counters{identity: nextIdentity()}, isolated: true}
}

// Acquire counts one allocation on the cell and returns a fresh n-byte
// slice.
func (c *CountingStrategy) Acquire(n int) ([]byte, error) {
	c.cell.allocs.Add(1)
	c.cell.live.Add(1)
	return make([]byte, n), nil
}

// Release counts one deallocation on the cell.
func (c *CountingStrategy) Release([]byte) {
	c.cell.deallocs.Add(1)
	c.cell.live.Add(^uint32(0))
}

// Equal reports whether other shares this strategy's counter cell.
func (c *CountingStrategy) Equal(other Strategy) bool {
	o, ok := other.(*CountingStrategy)
	return ok && o.cell == c.cell
}

// Policy returns the propagation policy given at construction.
func (c *CountingStrategy) Policy() Policy { return c.policy }

// SelectForCopy returns this instance, or a strategy with a brand-new
// identity when built with NewIsolated.
func (c *CountingStrategy) SelectForCopy() Strategy {
	if c.isolated {
		return &CountingStrategy{
			cell:     &counters{identity: nextIdentity()},
			policy:   c.policy,
			isolated: true,
		}
	}
	return c
}

// Identity returns the strategy's identity serial.
func (c *CountingStrategy) Identity() uint32 { return c.cell.identity }

// AllocCount returns the number of Acquire calls seen by the cell.
func (c *CountingStrategy) AllocCount() uint32 { return c.cell.allocs.Load() }

// DeallocCount returns the number of Release calls seen by the cell.
func (c *CountingStrategy) DeallocCount() uint32 { return c.cell.deallocs.Load() }

// LiveCount returns the acquisitions not yet released.
func (c *CountingStrategy) LiveCount() uint32 { return c.cell.live.Load() }

// LimitStrategy caps the total bytes outstanding through an inner
// strategy. Acquire fails with ErrOutOfMemory once the budget would be
// exceeded, making exhaustion a recoverable signal.
type LimitStrategy struct {
	inner Strategy
	limit uint32
	used  atomix.Uint32
}

// NewLimit wraps inner with a byte budget. A nil inner uses
// HeapStrategy.
func NewLimit(limit int, inner Strategy) *LimitStrategy {
	if inner == nil {
		inner = HeapStrategy{}
	}
	return &LimitStrategy{inner: inner, limit: uint32(limit)}
}

// Acquire reserves n bytes of the budget before delegating to the inner
// strategy. A reservation that would exceed the budget is rolled back
// and reported as ErrOutOfMemory.
func (l *LimitStrategy) Acquire(n int) ([]byte, error) {
	if l.used.Add(uint32(n)) > l.limit {
		l.used.Add(-uint32(n))
		return nil, ErrOutOfMemory
	}
	buf, err := l.inner.Acquire(n)
	if err != nil {
		l.used.Add(-uint32(n))
		return nil, err
	}
	return buf, nil
}

// Release returns buf to the inner strategy and its bytes to the
// budget.
func (l *LimitStrategy) Release(buf []byte) {
	l.inner.Release(buf)
	l.used.Add(-uint32(len(buf)))
}

// Equal reports whether other is the same budget instance.
func (l *LimitStrategy) Equal(other Strategy) bool {
	o, ok := other.(*LimitStrategy)
	return ok && o == l
}

// Policy returns instance-identity equality with no propagation.
func (l *LimitStrategy) Policy() Policy { return Policy{} }

// SelectForCopy returns this instance; copies draw on the same budget.
func (l *LimitStrategy) SelectForCopy() Strategy { return l }

// Used returns the bytes currently reserved from the budget.
func (l *LimitStrategy) Used() int { return int(l.used.Load()) }
