// Package queue provides FIFO queue used for breadth-first traversals of rule graphs.
package queue

const minSize = 3

// Queue is a ring buffer growing by powers of 2 and shrinking when drained.
type Queue[T any] struct {
	items      []T
	size       int
	head, tail int
	zero       T
}

func New[T any](items ...T) *Queue[T] {
	result := &Queue[T]{}
	l := len(items)
	result.tail = l
	result.size = computeSize(l)
	result.items = make([]T, result.size+1)
	copy(result.items, items)
	return result
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == q.tail
}

func (q *Queue[T]) Len() int {
	return (q.tail + q.size + 1 - q.head) & q.size
}

func (q *Queue[T]) Append(items ...T) *Queue[T] {
	for _, item := range items {
		q.items[q.tail] = item
		q.tail = (q.tail + 1) & q.size
		if q.tail == q.head {
			q.grow()
		}
	}
	return q
}

// First removes and returns the oldest item.
func (q *Queue[T]) First() (T, bool) {
	if q.head == q.tail {
		return q.zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = q.zero
	q.head = (q.head + 1) & q.size

	if q.head == q.tail && q.size > minSize {
		q.head, q.tail = 0, 0
		q.size = minSize
		q.items = make([]T, minSize+1)
	}

	return result, true
}

func computeSize(length int) (size int) {
	if length <= minSize {
		return minSize
	}

	length |= length >> 1
	length |= length >> 2
	length |= length >> 4
	length |= length >> 8
	length |= length >> 16
	return length | length>>32
}

func (q *Queue[T]) grow() {
	items := make([]T, (q.size+1)<<1)
	copy(items, q.items[q.head:])
	if q.head > 0 {
		copy(items[q.size+1-q.head:], q.items[0:q.head])
	}
	q.head = 0
	q.tail = q.size + 1
	q.size = q.size + q.tail
	q.items = items
}
