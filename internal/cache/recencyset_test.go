package cache

import (
	"testing"
)

func TestRecencySet_TouchAndContains(t *testing.T) {
	tests := []struct {
		name string
		ops  []int
		want []int
	}{
		{"empty", nil, nil},
		{"single", []int{1}, []int{1}},
		{"no duplicate reorder on repeat touch of last", []int{1, 2, 2}, []int{1, 2}},
		{"touch moves to back", []int{1, 2, 3, 1}, []int{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRecencySet[int]()
			for _, k := range tt.ops {
				s.Touch(k)
			}
			got := s.Keys()
			if len(got) != len(tt.want) {
				t.Fatalf("Keys() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Keys() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRecencySet_TouchReturnsPresence(t *testing.T) {
	s := NewRecencySet[string]()
	if existed := s.Touch("a"); existed {
		t.Fatal("first touch of a fresh key must report absent")
	}
	if existed := s.Touch("a"); !existed {
		t.Fatal("second touch of the same key must report present")
	}
}

func TestRecencySet_RemoveAndOldest(t *testing.T) {
	s := NewRecencySet[int]()
	s.Touch(1)
	s.Touch(2)
	s.Touch(3)

	if ok := s.Remove(2); !ok {
		t.Fatal("Remove(2) should report true for a present key")
	}
	if ok := s.Remove(2); ok {
		t.Fatal("Remove(2) should report false once already removed")
	}

	oldest, ok := s.Oldest()
	if !ok || oldest != 1 {
		t.Fatalf("Oldest() = (%v, %v), want (1, true)", oldest, ok)
	}

	popped, ok := s.PopOldest()
	if !ok || popped != 1 {
		t.Fatalf("PopOldest() = (%v, %v), want (1, true)", popped, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Contains(1) {
		t.Fatal("1 should no longer be a member after PopOldest")
	}
}

func TestRecencySet_EmptyPopOldest(t *testing.T) {
	s := NewRecencySet[int]()
	if _, ok := s.PopOldest(); ok {
		t.Fatal("PopOldest on an empty set must report false")
	}
}
