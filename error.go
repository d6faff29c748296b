// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring

import "errors"

// ErrOutOfMemory reports that a Strategy could not acquire the requested
// storage. An operation failing with it leaves no partial state behind:
// no leaked buffer, no dangling count unit, and the destination handle
// unchanged.
var ErrOutOfMemory = errors.New("sharedstring: out of memory")

// ErrIndexOutOfRange reports an At or Substring index outside the
// handle's view.
var ErrIndexOutOfRange = errors.New("sharedstring: index out of range")
