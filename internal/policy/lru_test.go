package policy

import "testing"

func TestLRU_FirstAccessIsMiss(t *testing.T) {
	lru := NewLRU(2)
	if got := lru.OnRequest(1); got != Miss {
		t.Fatalf("first access = %v, want Miss", got)
	}
	if got := lru.OnRequest(1); got != Hit {
		t.Fatalf("repeat access = %v, want Hit", got)
	}
}

func TestLRU_ScenarioS1(t *testing.T) {
	lru := NewLRU(2)
	trace := []int64{1, 2, 1, 3, 2} // A,B,A,C,B
	want := []Outcome{Miss, Miss, Hit, Miss, Miss}

	hits := 0
	for i, key := range trace {
		got := lru.OnRequest(key)
		if got != want[i] {
			t.Errorf("access %d (key=%d) = %v, want %v", i, key, got, want[i])
		}
		if got == Hit {
			hits++
		}
	}
	if hits != 1 {
		t.Errorf("total hits = %d, want 1", hits)
	}
}

func TestLRU_CapacityInvariance(t *testing.T) {
	lru := NewLRU(3)
	for key := int64(0); key < 100; key++ {
		lru.OnRequest(key)
		if lru.Occupancy() > 3 {
			t.Fatalf("occupancy %d exceeds capacity 3 after key %d", lru.Occupancy(), key)
		}
	}
	if lru.Occupancy() != 3 {
		t.Errorf("final occupancy = %d, want 3", lru.Occupancy())
	}
}

func TestLRU_OccupancyIdempotent(t *testing.T) {
	lru := NewLRU(4)
	lru.OnRequest(1)
	lru.OnRequest(2)
	first := lru.Occupancy()
	second := lru.Occupancy()
	if first != second {
		t.Errorf("Occupancy() not idempotent: %d then %d", first, second)
	}
}

func TestLRU_EvictsLeastRecent(t *testing.T) {
	lru := NewLRU(2)
	lru.OnRequest(1)
	lru.OnRequest(2)
	lru.OnRequest(1) // touch 1, now 2 is oldest
	lru.OnRequest(3) // evicts 2

	if got := lru.OnRequest(1); got != Hit {
		t.Errorf("key 1 survives = %v, want Hit", got)
	}
	if got := lru.OnRequest(2); got != Miss {
		t.Errorf("key 2 after eviction = %v, want Miss", got)
	}
}
