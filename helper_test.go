// Distributed under the Boost Software License, Version 1.0.
//    (See accompanying file LICENSE_1_0.txt or copy at
//          https://www.boost.org/LICENSE_1_0.txt)

package sharedstring_test

import (
	"errors"
	"testing"

	sharedstring "github.com/KABoissonneault/shared-string"
)

// propagating mirrors an allocator that follows its value on copy,
// move and swap assignment.
var propagating = sharedstring.Policy{
	PropagateOnCopy: true,
	PropagateOnMove: true,
	PropagateOnSwap: true,
}

// mustFrom builds a handle or fails the test.
func mustFrom(t *testing.T, v string, strat sharedstring.Strategy) sharedstring.SharedString {
	t.Helper()
	s, err := sharedstring.FromString(v, strat)
	if err != nil {
		t.Fatalf("FromString(%q) error: %v", v, err)
	}
	return s
}

// checkValue asserts that s views exactly want: size, front/back,
// checked and unchecked access, and the out-of-range boundary.
func checkValue(t *testing.T, s sharedstring.SharedString, want string) {
	t.Helper()
	if s.Empty() {
		t.Fatalf("handle is empty, want %q", want)
	}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}
	if got := s.Front(); got != want[0] {
		t.Fatalf("Front() = %q, want %q", got, want[0])
	}
	if got := s.Back(); got != want[len(want)-1] {
		t.Fatalf("Back() = %q, want %q", got, want[len(want)-1])
	}
	if got, err := s.At(0); err != nil || got != want[0] {
		t.Fatalf("At(0) = %q, %v; want %q, nil", got, err, want[0])
	}
	if got, err := s.At(len(want) - 1); err != nil || got != want[len(want)-1] {
		t.Fatalf("At(%d) = %q, %v; want %q, nil", len(want)-1, got, err, want[len(want)-1])
	}
	if _, err := s.At(len(want)); !errors.Is(err, sharedstring.ErrIndexOutOfRange) {
		t.Fatalf("At(%d) error = %v, want ErrIndexOutOfRange", len(want), err)
	}
	if got := s.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

// checkEmpty asserts that s is the canonical empty value.
func checkEmpty(t *testing.T, s sharedstring.SharedString) {
	t.Helper()
	if !s.Empty() {
		t.Fatalf("Empty() = false, want true")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
	if got := s.Bytes(); got != nil {
		t.Fatalf("Bytes() = %v, want nil", got)
	}
	if _, err := s.At(0); !errors.Is(err, sharedstring.ErrIndexOutOfRange) {
		t.Fatalf("At(0) error = %v, want ErrIndexOutOfRange", err)
	}
}
