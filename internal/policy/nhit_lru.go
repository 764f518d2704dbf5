package policy

import (
	"container/list"

	"github.com/cachetrace/simulator/internal/cache"
)

// NHitLRU is the LRU-backed N-Hit admission variant: a miss is only
// promoted into the LRU cache once it has been referenced N times, or
// immediately if the cache is under trigger_threshold percent full. A
// separate, FIFO-bounded tracker counts references on every access; a
// key's tracker entry is dropped when it is admitted.
type NHitLRU struct {
	capacity           int
	triggerThreshold   float64
	insertionThreshold int
	maxTracked         int

	resident *cache.RecencySet[int64]

	counts   map[int64]int
	fifo     *list.List
	fifoElem map[int64]*list.Element
}

// NewNHitLRU returns an NHitLRU engine. triggerThreshold is a percent
// (0-100); insertionThreshold is N; trackingRatio scales the tracker's
// bound to trackingRatio*capacity.
func NewNHitLRU(capacity int, triggerThreshold float64, insertionThreshold, trackingRatio int) *NHitLRU {
	return &NHitLRU{
		capacity:           capacity,
		triggerThreshold:   triggerThreshold,
		insertionThreshold: insertionThreshold,
		maxTracked:         trackingRatio * capacity,
		resident:           cache.NewRecencySet[int64](),
		counts:             make(map[int64]int),
		fifo:               list.New(),
		fifoElem:           make(map[int64]*list.Element),
	}
}

func (n *NHitLRU) recordAccess(key int64) {
	if _, ok := n.counts[key]; ok {
		n.counts[key]++
		return
	}
	if len(n.counts) >= n.maxTracked {
		if oldest := n.fifo.Front(); oldest != nil {
			oldestKey := oldest.Value.(int64)
			n.fifo.Remove(oldest)
			delete(n.fifoElem, oldestKey)
			delete(n.counts, oldestKey)
		}
	}
	n.counts[key] = 1
	n.fifoElem[key] = n.fifo.PushBack(key)
}

func (n *NHitLRU) untrack(key int64) {
	if elem, ok := n.fifoElem[key]; ok {
		n.fifo.Remove(elem)
		delete(n.fifoElem, key)
	}
	delete(n.counts, key)
}

func (n *NHitLRU) OnRequest(key int64) Outcome {
	n.recordAccess(key)

	if n.resident.Contains(key) {
		n.resident.Touch(key)
		return Hit
	}

	occupancyPercent := 100.0 * float64(n.resident.Len()) / float64(n.capacity)
	promote := occupancyPercent < n.triggerThreshold || n.counts[key] >= n.insertionThreshold

	if promote {
		wasResident := n.resident.Touch(key)
		if !wasResident && n.resident.Len() > n.capacity {
			n.resident.PopOldest()
		}
		n.untrack(key)
	}

	return Miss
}

func (n *NHitLRU) Occupancy() int {
	return n.resident.Len()
}
