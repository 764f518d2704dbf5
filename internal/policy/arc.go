package policy

import "github.com/cachetrace/simulator/internal/cache"

// ARC is the Adaptive Replacement Cache: two resident recency lists
// (T1 recent, T2 frequent) and two ghost lists (B1, B2) recording
// recently evicted keys, steering the adaptation target p.
//
// This reproduces the source's divergent Case IV: a brand-new key is
// inserted into T1 without a preceding REPLACE, relying entirely on the
// post-insertion balancing loop to restore the capacity invariant.
// Canonical ARC runs REPLACE on every miss; this implementation does
// not, by design choice documented alongside the policy.
type ARC struct {
	capacity int
	p        int
	t1, t2   *cache.RecencySet[int64]
	b1, b2   *cache.RecencySet[int64]
}

// NewARC returns an ARC engine bounded to capacity resident keys (T1+T2),
// with ghost lists bounded to capacity additionally.
func NewARC(capacity int) *ARC {
	return &ARC{
		capacity: capacity,
		t1:       cache.NewRecencySet[int64](),
		t2:       cache.NewRecencySet[int64](),
		b1:       cache.NewRecencySet[int64](),
		b2:       cache.NewRecencySet[int64](),
	}
}

func (a *ARC) OnRequest(key int64) Outcome {
	outcome := Miss

	switch {
	case a.t1.Contains(key):
		a.t1.Remove(key)
		a.t2.Touch(key)
		outcome = Hit

	case a.t2.Contains(key):
		a.t2.Touch(key)
		outcome = Hit

	case a.b1.Contains(key):
		a.p = minInt(a.capacity, a.p+maxInt(1, ceilDiv(a.b2.Len(), maxInt(1, a.b1.Len()))))
		a.b1.Remove(key)
		a.t2.Touch(key)

	case a.b2.Contains(key):
		a.p = maxInt(0, a.p-maxInt(1, ceilDiv(a.b1.Len(), maxInt(1, a.b2.Len()))))
		a.b2.Remove(key)
		a.t2.Touch(key)

	default:
		a.t1.Touch(key)
	}

	a.balance()
	a.trimGhosts()

	return outcome
}

// balance shrinks T1+T2 back to capacity by demoting the oldest entry
// of whichever list currently exceeds its p-determined share into the
// corresponding ghost list.
func (a *ARC) balance() {
	for a.t1.Len()+a.t2.Len() > a.capacity {
		if a.t1.Len() > a.p {
			if key, ok := a.t1.PopOldest(); ok {
				a.b1.Touch(key)
			}
		} else {
			if key, ok := a.t2.PopOldest(); ok {
				a.b2.Touch(key)
			}
		}
	}
}

// trimGhosts shrinks the combined directory back to 2*capacity by
// dropping the oldest entry of whichever ghost list exceeds its share.
func (a *ARC) trimGhosts() {
	for a.t1.Len()+a.t2.Len()+a.b1.Len()+a.b2.Len() > 2*a.capacity {
		if a.b1.Len() > a.p {
			a.b1.PopOldest()
		} else {
			a.b2.PopOldest()
		}
	}
}

func (a *ARC) Occupancy() int {
	return a.t1.Len() + a.t2.Len()
}

// P returns the current adaptation target, exposed for invariant tests
// and diagnostics.
func (a *ARC) P() int {
	return a.p
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ceilDiv(num, den int) int {
	if den == 0 {
		return 0
	}
	return (num + den - 1) / den
}
