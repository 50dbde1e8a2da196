package wordstack

import "errors"

var ErrEmptyStack = errors.New("stack is empty")

// Stack is a LIFO of items. The scrambled pile and the placement history are
// both stacks of tile pointers.
type Stack[T any] struct {
	items []T
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

func (that *Stack[T]) Push(item T) {
	that.items = append(that.items, item)
}

// Pop removes and returns the top item.
func (that *Stack[T]) Pop() (T, error) {
	var zero T

	n := len(that.items)
	if n == 0 {
		return zero, ErrEmptyStack
	}

	item := that.items[n-1]
	that.items[n-1] = zero
	that.items = that.items[:n-1]

	return item, nil
}

func (that *Stack[T]) Peek() (T, error) {
	var zero T

	if len(that.items) == 0 {
		return zero, ErrEmptyStack
	}

	return that.items[len(that.items)-1], nil
}

func (that *Stack[T]) Len() int {
	return len(that.items)
}

func (that *Stack[T]) Empty() bool {
	return len(that.items) == 0
}

// Items returns a copy of the stack, bottom first.
func (that *Stack[T]) Items() []T {
	out := make([]T, len(that.items))
	copy(out, that.items)

	return out
}

func (that *Stack[T]) Clear() {
	that.items = nil
}
