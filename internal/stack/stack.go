// Package stack provides a small generic LIFO used for vktor's nesting
// stack and anywhere else a growable stack is convenient. Stack itself
// has no size limit; vktor's nesting stack enforces its own.
package stack

import "golang.org/x/exp/slices"

// Stack is a generic LIFO backed by a slice. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

// Push appends v to the top of the stack, growing the backing array as
// needed.
func (s *Stack[T]) Push(v T) {
	if len(s.items) == cap(s.items) {
		s.items = slices.Grow(s.items, 1)
	}
	s.items = append(s.items, v)
}

// Pop removes and returns the top of the stack. ok is false if the stack
// is empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	last := len(s.items) - 1
	v = s.items[last]
	s.items = s.items[:last]
	return v, true
}

// Top returns the top of the stack without removing it.
func (s *Stack[T]) Top() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of items on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Reset empties the stack, retaining its backing array.
func (s *Stack[T]) Reset() {
	s.items = s.items[:0]
}
