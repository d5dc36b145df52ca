package vktor

import (
	"fmt"

	"github.com/shevron/vktor/internal/stack"
)

// nestStack tracks which containers (array/object) are currently open,
// innermost last, and enforces the caller-configured maximum depth. Ported
// from libvktor's nest_stack_add/nest_stack_pop (vktor.c), backed here by a
// generic stack instead of a hand-rolled fixed-size C array.
type nestStack struct {
	s        stack.Stack[Container]
	maxDepth int
}

func newNestStack(maxDepth int) nestStack {
	return nestStack{maxDepth: maxDepth}
}

// push opens a new container. It fails with ErrMaxNest once depth would
// exceed maxDepth (0 means unlimited).
func (n *nestStack) push(c Container) error {
	if n.maxDepth > 0 && n.s.Len() >= n.maxDepth {
		return fmt.Errorf("%w: nesting depth exceeds limit of %d", ErrMaxNest, n.maxDepth)
	}
	n.s.Push(c)
	return nil
}

// pop closes the innermost open container, returning it. It fails with
// ErrInternal if no container is open; callers are expected to only call
// pop when the grammar guarantees one is.
func (n *nestStack) pop() (Container, error) {
	c, ok := n.s.Pop()
	if !ok {
		return ContainerNone, fmt.Errorf("%w: container stack underflow", ErrInternal)
	}
	return c, nil
}

// current returns the innermost open container, or ContainerNone at the
// top level.
func (n *nestStack) current() Container {
	c, ok := n.s.Top()
	if !ok {
		return ContainerNone
	}
	return c
}

// depth returns the number of currently open containers.
func (n *nestStack) depth() int {
	return n.s.Len()
}
