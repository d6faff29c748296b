// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring

// HeapStrategy allocates from the Go heap and leaves release to the
// collector. Every instance is interchangeable with every other, so
// handles on it always share their block on copy. It is the strategy of
// the zero SharedString value.
//
// Acquire never reports ErrOutOfMemory: Go heap exhaustion terminates
// the process rather than surfacing as a recoverable condition. Bounded
// strategies such as LimitStrategy produce it instead.
type HeapStrategy struct{}

// Acquire returns a fresh n-byte slice.
func (HeapStrategy) Acquire(n int) ([]byte, error) { return make([]byte, n), nil }

// Release is a no-op; the collector reclaims heap storage.
func (HeapStrategy) Release([]byte) {}

// Equal reports whether other is also a HeapStrategy.
func (HeapStrategy) Equal(other Strategy) bool {
	_, ok := other.(HeapStrategy)
	return ok
}

// Policy declares every HeapStrategy instance always-equal; propagation
// never changes observable behavior between equal instances.
func (HeapStrategy) Policy() Policy { return Policy{AlwaysEqual: true} }

// SelectForCopy returns the stateless strategy itself.
func (HeapStrategy) SelectForCopy() Strategy { return HeapStrategy{} }
