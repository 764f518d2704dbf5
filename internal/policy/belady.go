package policy

import "container/heap"

const infiniteNextUse = int(^uint(0) >> 1)

// PrecomputeNextUse returns, for each request, the index of the next
// request referencing the same key, or infiniteNextUse if the key is
// never referenced again. Computed in a single reverse pass over the
// sequence, O(n) time and space.
func PrecomputeNextUse(requests []Request) []int {
	nextUse := make([]int, len(requests))
	lastOccurrence := make(map[int64]int, len(requests))

	for i := len(requests) - 1; i >= 0; i-- {
		key := requests[i].Key
		if idx, ok := lastOccurrence[key]; ok {
			nextUse[i] = idx
		} else {
			nextUse[i] = infiniteNextUse
		}
		lastOccurrence[key] = i
	}

	return nextUse
}

// nextUseEntry is a (next-use index, key) pair in the victim heap.
// Entries may go stale once a key's canonical next-use advances or the
// key is evicted; staleness is detected lazily on pop.
type nextUseEntry struct {
	nextUse int
	key     int64
}

// farthestHeap is a max-heap on nextUse: the farthest next use pops first.
type farthestHeap []nextUseEntry

func (h farthestHeap) Len() int            { return len(h) }
func (h farthestHeap) Less(i, j int) bool  { return h[i].nextUse > h[j].nextUse }
func (h farthestHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *farthestHeap) Push(x interface{}) { *h = append(*h, x.(nextUseEntry)) }
func (h *farthestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// Belady is the offline-optimal policy: it evicts whichever resident
// key's next use is farthest in the future, given the full trace ahead
// of time via PrecomputeNextUse.
type Belady struct {
	capacity    int
	nextUse     []int
	cursor      int
	cache       map[int64]struct{}
	pageNextUse map[int64]int
	victims     farthestHeap
}

// NewBelady returns a Belady/OPT engine. nextUse must be the output of
// PrecomputeNextUse run over the same request sequence OnRequest will be
// fed, in the same order.
func NewBelady(capacity int, nextUse []int) *Belady {
	return &Belady{
		capacity:    capacity,
		nextUse:     nextUse,
		cache:       make(map[int64]struct{}, capacity),
		pageNextUse: make(map[int64]int, capacity),
	}
}

// OnRequest consumes the next entry of the precomputed nextUse array in
// call order; callers must invoke OnRequest once per request, in the
// same order the array was built from.
func (b *Belady) OnRequest(key int64) Outcome {
	nu := b.nextUse[b.cursor]
	b.cursor++

	if _, ok := b.cache[key]; ok {
		b.pageNextUse[key] = nu
		heap.Push(&b.victims, nextUseEntry{nextUse: nu, key: key})
		return Hit
	}

	if len(b.cache) >= b.capacity {
		b.evict()
	}

	b.cache[key] = struct{}{}
	b.pageNextUse[key] = nu
	heap.Push(&b.victims, nextUseEntry{nextUse: nu, key: key})
	return Miss
}

// evict pops the victim heap until it finds an entry that still
// corroborates the canonical pageNextUse for its key, discarding stale
// entries along the way.
func (b *Belady) evict() {
	for b.victims.Len() > 0 {
		entry := heap.Pop(&b.victims).(nextUseEntry)
		if _, resident := b.cache[entry.key]; !resident {
			continue
		}
		if b.pageNextUse[entry.key] != entry.nextUse {
			continue
		}
		delete(b.cache, entry.key)
		delete(b.pageNextUse, entry.key)
		return
	}
}

func (b *Belady) Occupancy() int {
	return len(b.cache)
}
