package policy

import "github.com/cachetrace/simulator/internal/cache"

// LRU is the baseline recency policy: strict least-recently-used
// eviction, with no distinction between read and write accesses.
type LRU struct {
	resident *cache.RecencySet[int64]
	capacity int
}

// NewLRU returns an LRU engine bounded to capacity resident keys.
func NewLRU(capacity int) *LRU {
	return &LRU{
		resident: cache.NewRecencySet[int64](),
		capacity: capacity,
	}
}

func (l *LRU) OnRequest(key int64) Outcome {
	if l.resident.Touch(key) {
		return Hit
	}
	if l.resident.Len() > l.capacity {
		l.resident.PopOldest()
	}
	return Miss
}

func (l *LRU) Occupancy() int {
	return l.resident.Len()
}
