package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSize(t *testing.T) {
	for i := 0; i <= 33; i++ {
		t.Run(fmt.Sprintf("%d elements", i), func(t *testing.T) {
			size := computeSize(i)
			assert.GreaterOrEqual(t, size, minSize)
			assert.Zero(t, size&(size+1), "expecting 2^n - 1, got %b", size)
			assert.GreaterOrEqual(t, size, i)
			if size > minSize {
				assert.Less(t, size>>1, i)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	assert.Len(t, q.items, minSize+1)
	assert.True(t, q.IsEmpty())
	_, fetched := q.First()
	assert.False(t, fetched)
}

func TestFifoOrder(t *testing.T) {
	q := New("a", "b")
	q.Append("c", "d", "e", "f", "g", "h")
	assert.Equal(t, 8, q.Len())

	got := make([]string, 0)
	for !q.IsEmpty() {
		item, fetched := q.First()
		assert.True(t, fetched)
		got = append(got, item)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, got)
	assert.Equal(t, minSize, q.size)
}

func TestWrapAround(t *testing.T) {
	q := New[int]()
	for i := 0; i < 20; i++ {
		q.Append(i, i+100)
		first, _ := q.First()
		assert.Equal(t, i/2+(i%2)*100, first, "step %d", i)
	}
}

func TestGrow(t *testing.T) {
	q := New(make([]int, minSize)...)
	assert.Equal(t, minSize, q.size)
	q.Append(1)
	newSize := (minSize << 1) + 1
	assert.Equal(t, newSize, q.size)
	for i := 0; i < minSize; i++ {
		q.Append(i)
		assert.Equal(t, newSize, q.size)
	}
	q.Append(1)
	assert.Equal(t, (newSize<<1)+1, q.size)
}
