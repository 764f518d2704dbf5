package policy

import "github.com/cachetrace/simulator/internal/cache"

// LARC is an admission-filter policy: a miss is first placed in
// recentCache, an adaptive-size probation list, and only promoted into
// the real cache on a second reference. recentCacheLimit adapts within
// [0.1*capacity, 0.9*capacity].
type LARC struct {
	capacity         float64
	capacityInt      int
	recentCacheLimit float64
	cache            *cache.RecencySet[int64]
	recentCache      *cache.RecencySet[int64]
}

// NewLARC returns a LARC engine bounded to capacity resident keys, with
// recentCacheLimit initialized to 0.1*capacity as specified.
func NewLARC(capacity int) *LARC {
	c := float64(capacity)
	return &LARC{
		capacity:         c,
		capacityInt:      capacity,
		recentCacheLimit: 0.1 * c,
		cache:            cache.NewRecencySet[int64](),
		recentCache:      cache.NewRecencySet[int64](),
	}
}

func (l *LARC) OnRequest(key int64) Outcome {
	switch {
	case l.cache.Contains(key):
		l.cache.Touch(key)
		l.recentCacheLimit = maxFloat(0.1*l.capacity, l.recentCacheLimit-l.capacity/(l.capacity-l.recentCacheLimit))
		return Hit

	case l.recentCache.Contains(key):
		l.recentCacheLimit = minFloat(0.9*l.capacity, l.recentCacheLimit+l.capacity/l.recentCacheLimit)
		l.recentCache.Remove(key)
		l.cache.Touch(key)
		if l.cache.Len() > l.capacityInt {
			l.cache.PopOldest()
		}
		return Miss

	default:
		l.recentCache.Touch(key)
		for float64(l.recentCache.Len()) > l.recentCacheLimit {
			l.recentCache.PopOldest()
		}
		return Miss
	}
}

func (l *LARC) Occupancy() int {
	return l.cache.Len()
}

// RecentCacheLimit exposes the current adaptive limit for invariant
// tests.
func (l *LARC) RecentCacheLimit() float64 {
	return l.recentCacheLimit
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
