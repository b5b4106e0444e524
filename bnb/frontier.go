package bnb

import "container/heap"

// entry is a frontier reference to a tree node and its bound.
type entry struct {
	lb int
	id int32
}

// frontierPQ is a min-heap ordered by lb; equal bounds favor the newest
// node, so the most recent branch is resumed first.
type frontierPQ []entry

// Len returns the number of items in the heap.
func (pq frontierPQ) Len() int { return len(pq) }

// Less orders by bound, then by descending id.
func (pq frontierPQ) Less(i, j int) bool {
	if pq[i].lb != pq[j].lb {
		return pq[i].lb < pq[j].lb
	}

	return pq[i].id > pq[j].id
}

// Swap swaps two elements in the heap.
func (pq frontierPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push is called by heap.Push; x must be an entry.
func (pq *frontierPQ) Push(x any) { *pq = append(*pq, x.(entry)) }

// Pop is called by heap.Pop.
func (pq *frontierPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// frontier wraps frontierPQ with typed helpers.
type frontier struct{ pq frontierPQ }

func (f *frontier) push(e entry) { heap.Push(&f.pq, e) }

func (f *frontier) pop() entry { return heap.Pop(&f.pq).(entry) }

func (f *frontier) len() int { return len(f.pq) }

// minLB returns the smallest bound, or ok=false when empty.
func (f *frontier) minLB() (lb int, ok bool) {
	if len(f.pq) == 0 {
		return 0, false
	}

	return f.pq[0].lb, true
}
