// Package ipq implements an indexed priority queue: a min-heap of
// (Key, Cell) pairs supporting insert, pop, top-key peek, and O(log n)
// removal by value identity via an index lookup map.
package ipq

import (
	"container/heap"
	"math"

	"upside-down-research.com/oss/lpastar-nav/internal/naverrors"
	"upside-down-research.com/oss/lpastar-nav/internal/navcontracts"
)

// Key is the lexicographically-ordered 2-tuple of real-valued
// potentials used to order the open set.
type Key struct {
	A, B float64
}

// Less reports whether k sorts before other: k.A < other.A, or
// k.A == other.A and k.B < other.B.
func (k Key) Less(other Key) bool {
	if k.A != other.A {
		return k.A < other.A
	}
	return k.B < other.B
}

// Equal reports exact equality of both components.
func (k Key) Equal(other Key) bool {
	return k.A == other.A && k.B == other.B
}

// PosInf is the sentinel key treated as "priority = +infinity" by
// callers that choose to read TopKey's error instead of propagating it.
var PosInf = Key{math.Inf(1), math.Inf(1)}

type entry struct {
	key   Key
	value navcontracts.Cell
}

// Queue is a min-heap of (Key, Cell) entries, indexed by cell for
// O(log n) removal.
type Queue struct {
	items  []entry
	lookup map[navcontracts.Cell]int
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{lookup: make(map[navcontracts.Cell]int)}
}

// Len reports the number of entries in the queue.
func (q *Queue) Len() int { return len(q.items) }

// heapView is Queue's storage seen through container/heap.Interface. It
// is a separate type so that Queue.Pop can return (Key, Cell, error).
type heapView Queue

func (q *heapView) Len() int { return len(q.items) }

func (q *heapView) Less(i, j int) bool { return q.items[i].key.Less(q.items[j].key) }

func (q *heapView) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.lookup[q.items[i].value] = i
	q.lookup[q.items[j].value] = j
}

func (q *heapView) Push(x interface{}) {
	e := x.(entry)
	q.lookup[e.value] = len(q.items)
	q.items = append(q.items, e)
}

func (q *heapView) Pop() interface{} {
	old := q.items
	n := len(old)
	e := old[n-1]
	delete(q.lookup, e.value)
	q.items = old[:n-1]
	return e
}

// Insert adds (key, value) to the queue. Duplicate values may coexist;
// the planner always precedes Insert with Remove so duplicates do not
// arise in practice.
func (q *Queue) Insert(key Key, value navcontracts.Cell) {
	heap.Push((*heapView)(q), entry{key, value})
}

// Pop removes and returns the entry with the smallest key.
func (q *Queue) Pop() (Key, navcontracts.Cell, error) {
	if q.Len() == 0 {
		return Key{}, navcontracts.Cell{}, &naverrors.EmptyQueueError{}
	}
	e := heap.Pop((*heapView)(q)).(entry)
	return e.key, e.value, nil
}

// TopKey peeks the smallest key without removing it.
func (q *Queue) TopKey() (Key, error) {
	if q.Len() == 0 {
		return Key{}, &naverrors.EmptyQueueError{}
	}
	return q.items[0].key, nil
}

// Remove deletes the first entry whose value equals value; a no-op if
// absent.
func (q *Queue) Remove(value navcontracts.Cell) {
	idx, ok := q.lookup[value]
	if !ok {
		return
	}
	heap.Remove((*heapView)(q), idx)
}

// Contains reports whether value currently has an entry in the queue.
func (q *Queue) Contains(value navcontracts.Cell) bool {
	_, ok := q.lookup[value]
	return ok
}

// IsEmpty reports whether the queue holds no entries.
func (q *Queue) IsEmpty() bool {
	return len(q.items) == 0
}
