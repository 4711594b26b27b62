// Package seqmerge merges sorted iter.Seq streams into one sorted stream.
//
// The merge is streaming: only the head element of each input is held in
// memory, so cost is proportional to the number of streams, not their length.
package seqmerge

import (
	"container/heap"
	"iter"
)

// Merge returns a sequence yielding the elements of seqs in ascending order
// according to less. Each input must already be sorted by less. Elements that
// compare equal are yielded in the order of the streams they come from, and
// in stream order within one stream.
//
// Inputs are pulled lazily; every input is advanced at most one element
// ahead of the output. Stopping iteration early releases all inputs.
func Merge[T any](less func(a, b T) bool, seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		h := &cursorHeap[T]{less: less}
		defer h.stopAll()

		for i, seq := range seqs {
			next, stop := iter.Pull(seq)
			head, ok := next()
			if !ok {
				stop()
				continue
			}
			h.items = append(h.items, &cursor[T]{head: head, next: next, stop: stop, stream: i})
		}
		heap.Init(h)

		for h.Len() > 0 {
			c := h.items[0]
			if !yield(c.head) {
				return
			}

			head, ok := c.next()
			if !ok {
				c.stop()
				heap.Pop(h)
				continue
			}
			c.head = head
			heap.Fix(h, 0)
		}
	}
}

// cursor is the front of one input stream.
type cursor[T any] struct {
	head   T
	next   func() (T, bool)
	stop   func()
	stream int
}

type cursorHeap[T any] struct {
	items []*cursor[T]
	less  func(a, b T) bool
}

func (h *cursorHeap[T]) Len() int { return len(h.items) }

func (h *cursorHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.less(a.head, b.head) {
		return true
	}
	if h.less(b.head, a.head) {
		return false
	}
	return a.stream < b.stream
}

func (h *cursorHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *cursorHeap[T]) Push(x any) { h.items = append(h.items, x.(*cursor[T])) }

func (h *cursorHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return c
}

func (h *cursorHeap[T]) stopAll() {
	for _, c := range h.items {
		c.stop()
	}
	h.items = nil
}
