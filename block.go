// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring

import "code.hybscloud.com/atomix"

// block is the combined storage unit behind one or more handles: the
// atomic count of live handles together with the payload acquired from
// a Strategy. The count is 1 on creation, stays ≥ 1 while any handle
// references the block, and the releaser observing the 1→0 transition
// frees the payload. A freed block is never reused.
type block struct {
	refs atomix.Uint32
	data []byte
}

// newBlock acquires n bytes from strat and builds the payload via fill.
// A failed acquisition constructs nothing. A failed fill releases the
// raw storage before the error is returned, so a partially built
// payload leaves no trace and no count unit behind.
func newBlock(n int, strat Strategy, fill func([]byte) error) (*block, error) {
	buf, err := strat.Acquire(n)
	if err != nil {
		return nil, err
	}
	if err := fill(buf); err != nil {
		strat.Release(buf)
		return nil, err
	}
	b := &block{data: buf}
	b.refs.Add(1)
	return b, nil
}

// retain registers one more live handle on b.
func (b *block) retain() *block {
	b.refs.Add(1)
	return b
}

// release drops one live handle from b; the caller dropping the last
// one frees the payload through strat. Racing releasers synchronize on
// the count: Go's sequentially consistent atomics order every payload
// access before the decrement that precedes the free.
func (b *block) release(strat Strategy) {
	if b.refs.Add(^uint32(0)) == 0 {
		strat.Release(b.data)
		b.data = nil
	}
}
