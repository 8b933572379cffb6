// Package heap implements a mutable binary heap over integer ids, ordered by
// an externally supplied comparator rather than any ordering intrinsic to
// the ids themselves. The core rebinds the comparator's pivot (see
// TravelingCosts) between searches instead of rebuilding the heap's type.
package heap

import "container/heap"

// Less reports whether id a should sort before id b.
type Less func(a, b int) bool

// idHeap adapts a Less comparator to container/heap's sort.Interface.
type idHeap struct {
	ids  []int
	less Less
}

func (h idHeap) Len() int           { return len(h.ids) }
func (h idHeap) Less(i, j int) bool { return h.less(h.ids[i], h.ids[j]) }
func (h idHeap) Swap(i, j int)      { h.ids[i], h.ids[j] = h.ids[j], h.ids[i] }

func (h *idHeap) Push(x any) { h.ids = append(h.ids, x.(int)) }

func (h *idHeap) Pop() any {
	old := h.ids
	n := len(old)
	x := old[n-1]
	h.ids = old[:n-1]
	return x
}

// BinaryHeap is a min- or max-heap over ids, depending on the comparator
// passed to New. It is undefined behavior to mutate the comparator's pivot
// while any id is held in the heap.
type BinaryHeap struct {
	h idHeap
}

// New builds an empty heap ordered by less.
func New(less Less) *BinaryHeap {
	return &BinaryHeap{h: idHeap{less: less}}
}

// Push adds id to the heap.
func (b *BinaryHeap) Push(id int) { heap.Push(&b.h, id) }

// Pop removes and returns the root element per the comparator.
func (b *BinaryHeap) Pop() int { return heap.Pop(&b.h).(int) }

// Peek returns the root element without removing it.
func (b *BinaryHeap) Peek() int { return b.h.ids[0] }

// Len returns the number of ids currently held.
func (b *BinaryHeap) Len() int { return len(b.h.ids) }

// Ids returns the heap's backing buffer as an unordered list of ids. The
// caller must treat the returned slice as read-only.
func (b *BinaryHeap) Ids() []int { return b.h.ids }
