package policy

import "testing"

func TestARC_ScenarioS3(t *testing.T) {
	arc := NewARC(4)
	trace := []int64{1, 2, 3, 4, 1, 5, 2, 6, 1}

	for i, key := range trace {
		arc.OnRequest(key)
		assertARCInvariants(t, arc, i)
	}

	if arc.P() < 0 || arc.P() > 4 {
		t.Errorf("final p = %d, want in [0,4]", arc.P())
	}
	if arc.Occupancy() != 4 {
		t.Errorf("final occupancy = %d, want 4", arc.Occupancy())
	}

	if got := arc.t1.Contains(6) || arc.t2.Contains(6); !got {
		t.Error("key 6 should be resident after the final step")
	}
	if got := arc.t1.Contains(1) || arc.t2.Contains(1); !got {
		t.Error("key 1 should be resident after its re-reference")
	}
}

func TestARC_ResidentAndGhostPartitionsDisjoint(t *testing.T) {
	arc := NewARC(4)
	keys := []int64{1, 2, 3, 4, 5, 6, 1, 7, 2, 8, 3, 9}
	for i, key := range keys {
		arc.OnRequest(key)
		assertARCInvariants(t, arc, i)
	}
}

func assertARCInvariants(t *testing.T, arc *ARC, step int) {
	t.Helper()

	sets := map[string][]int64{
		"T1": arc.t1.Keys(),
		"T2": arc.t2.Keys(),
		"B1": arc.b1.Keys(),
		"B2": arc.b2.Keys(),
	}

	seen := make(map[int64]string)
	for name, keys := range sets {
		for _, k := range keys {
			if other, ok := seen[k]; ok {
				t.Fatalf("step %d: key %d present in both %s and %s", step, k, other, name)
			}
			seen[k] = name
		}
	}

	if arc.t1.Len()+arc.t2.Len() > 4 {
		t.Fatalf("step %d: |T1|+|T2| = %d exceeds capacity 4", step, arc.t1.Len()+arc.t2.Len())
	}
	if arc.t1.Len()+arc.t2.Len()+arc.b1.Len()+arc.b2.Len() > 8 {
		t.Fatalf("step %d: total directory size exceeds 2*capacity", step)
	}
	if arc.P() < 0 || arc.P() > 4 {
		t.Fatalf("step %d: p = %d out of [0,4]", step, arc.P())
	}
}
