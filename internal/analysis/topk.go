package analysis

import (
	"cmp"
	"container/heap"
	"slices"
)

// Compile time check to ensure candidateHeap satisfies the heap interface.
var _ heap.Interface = (*candidateHeap)(nil)

// candidateHeap is a min-heap on Matches, so the weakest retained candidate
// sits at index 0.
type candidateHeap []Candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].Matches < h[j].Matches }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(Candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopK keeps the k highest scoring candidates offered to it.
//
// Which of several equal-scoring candidates survives at the retention
// boundary depends on heap order and carries no meaning.
type TopK struct {
	k     int
	items candidateHeap
}

// NewTopK returns an empty TopK with capacity k.
func NewTopK(k int) *TopK {
	return &TopK{k: k, items: make(candidateHeap, 0, max(k, 0))}
}

// Offer inserts c while fewer than k candidates are held. Once full, c
// replaces the lowest scoring candidate only if it scores strictly higher.
func (t *TopK) Offer(c Candidate) {
	if t.k <= 0 {
		return
	}
	if len(t.items) < t.k {
		heap.Push(&t.items, c)
		return
	}
	if c.Matches > t.items[0].Matches {
		t.items[0] = c
		heap.Fix(&t.items, 0)
	}
}

// Len returns the number of retained candidates.
func (t *TopK) Len() int { return len(t.items) }

// Min returns the lowest scoring retained candidate.
func (t *TopK) Min() (Candidate, bool) {
	if len(t.items) == 0 {
		return Candidate{}, false
	}
	return t.items[0], true
}

// Merge offers every candidate retained by o.
func (t *TopK) Merge(o *TopK) {
	for _, c := range o.items {
		t.Offer(c)
	}
}

// Sorted returns the retained candidates by descending score, lower address
// first among equal scores.
func (t *TopK) Sorted() []Candidate {
	out := slices.Clone([]Candidate(t.items))
	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Matches, a.Matches); c != 0 {
			return c
		}
		return cmp.Compare(a.Address, b.Address)
	})
	return out
}
