package ring

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBuffer is returned when reading or removing from an empty buffer.
	ErrEmptyBuffer = errors.New("ring: buffer is empty")
	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("ring: capacity must be positive")
)

// Slot is one physical cell of a buffer as reported by Snapshot.
type Slot[T any] struct {
	Value    T
	Occupied bool
}

// RingBuffer is a fixed-capacity FIFO that evicts its oldest element when
// written to while full. It is not safe for concurrent use.
type RingBuffer[T any] struct {
	slots []T
	head  int
	tail  int
	count int
}

// New creates a ring buffer that holds up to capacity values.
func New[T any](capacity int) (*RingBuffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &RingBuffer[T]{slots: make([]T, capacity)}, nil
}

// MustNew is like New but panics on an invalid capacity.
func MustNew[T any](capacity int) *RingBuffer[T] {
	rb, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return rb
}

// Insert writes v at the tail, evicting the oldest value first if the buffer
// is full. It always succeeds.
func (rb *RingBuffer[T]) Insert(v T) bool {
	if rb.IsFull() {
		// Cannot fail: a full buffer is never empty.
		_ = rb.RemoveOldest()
	}
	rb.slots[rb.tail] = v
	rb.tail = (rb.tail + 1) % len(rb.slots)
	rb.count++
	return true
}

// RemoveOldest discards the value at the head. Read Front first to keep it.
func (rb *RingBuffer[T]) RemoveOldest() error {
	if rb.IsEmpty() {
		return ErrEmptyBuffer
	}
	var zero T
	rb.slots[rb.head] = zero
	rb.head = (rb.head + 1) % len(rb.slots)
	rb.count--
	return nil
}

// Front returns the oldest value without removing it.
func (rb *RingBuffer[T]) Front() (T, error) {
	if rb.IsEmpty() {
		var zero T
		return zero, ErrEmptyBuffer
	}
	return rb.slots[rb.head], nil
}

// Rear returns the most recently inserted value.
func (rb *RingBuffer[T]) Rear() (T, error) {
	if rb.IsEmpty() {
		var zero T
		return zero, ErrEmptyBuffer
	}
	return rb.slots[(rb.tail-1+len(rb.slots))%len(rb.slots)], nil
}

// IsEmpty reports whether no values are stored.
func (rb *RingBuffer[T]) IsEmpty() bool { return rb.count == 0 }

// IsFull reports whether the next Insert will evict the oldest value.
func (rb *RingBuffer[T]) IsFull() bool { return rb.count == len(rb.slots) }

// Len returns the number of stored values.
func (rb *RingBuffer[T]) Len() int { return rb.count }

// Cap returns the fixed capacity.
func (rb *RingBuffer[T]) Cap() int { return len(rb.slots) }

// Values returns the stored values oldest first.
func (rb *RingBuffer[T]) Values() []T {
	if rb.count == 0 {
		return nil
	}
	result := make([]T, rb.count)
	for i := range rb.count {
		result[i] = rb.slots[(rb.head+i)%len(rb.slots)]
	}
	return result
}

// Snapshot reports every slot in physical order, marking the count slots
// starting at head as occupied.
func (rb *RingBuffer[T]) Snapshot() []Slot[T] {
	result := make([]Slot[T], len(rb.slots))
	for i := range rb.count {
		idx := (rb.head + i) % len(rb.slots)
		result[idx] = Slot[T]{Value: rb.slots[idx], Occupied: true}
	}
	return result
}

// Clone returns an independent copy with the same contents and layout.
func (rb *RingBuffer[T]) Clone() *RingBuffer[T] {
	slots := make([]T, len(rb.slots))
	copy(slots, rb.slots)
	return &RingBuffer[T]{
		slots: slots,
		head:  rb.head,
		tail:  rb.tail,
		count: rb.count,
	}
}
