// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring

// Policy carries the propagation rules of an allocation strategy as
// explicit data. Each Propagate flag decides whether the destination
// handle adopts the source's strategy during the corresponding
// operation. AlwaysEqual declares every instance of the strategy
// interchangeable: storage acquired by one may be released by another.
type Policy struct {
	PropagateOnCopy bool
	PropagateOnMove bool
	PropagateOnSwap bool
	AlwaysEqual     bool
}

// Strategy is the pluggable memory acquisition capability a handle uses
// for the storage behind its value. Implementations decide where bytes
// come from (heap, pool, bounded budget) and when two instances may
// share each other's storage.
type Strategy interface {
	// Acquire returns a slice of n bytes, failing with ErrOutOfMemory
	// (possibly wrapped) on exhaustion.
	Acquire(n int) ([]byte, error)

	// Release takes back a slice previously returned by Acquire on this
	// strategy or on one compatible with it.
	Release(buf []byte)

	// Equal reports whether other may share storage with this strategy.
	Equal(other Strategy) bool

	// Policy returns the strategy's propagation rules.
	Policy() Policy

	// SelectForCopy returns the strategy instance a copy-constructed
	// handle starts with.
	SelectForCopy() Strategy
}

// compatible reports whether storage acquired through either strategy
// may be referenced and released through the other.
func compatible(a, b Strategy) bool {
	if a.Equal(b) {
		return true
	}
	return a.Policy().AlwaysEqual && b.Policy().AlwaysEqual
}
