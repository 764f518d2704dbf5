// Package cache provides the recency-ordered set primitive shared by the
// LRU, ARC, and LARC policy engines: O(1) move-to-most-recent on a present
// key, O(1) pop of the least-recent key, backed by container/list plus a
// hash map from key to list element.
package cache

import "container/list"

// RecencySet is an ordered set of comparable keys, iterated oldest-first.
// It is the intrusive-list-plus-map structure every recency-based policy
// in this module builds on: LRU uses one, ARC uses four (T1, T2, B1, B2),
// LARC uses two (cache, recent_cache).
type RecencySet[K comparable] struct {
	order *list.List
	index map[K]*list.Element
}

// NewRecencySet returns an empty recency-ordered set.
func NewRecencySet[K comparable]() *RecencySet[K] {
	return &RecencySet[K]{
		order: list.New(),
		index: make(map[K]*list.Element),
	}
}

// Contains reports whether key is a member.
func (s *RecencySet[K]) Contains(key K) bool {
	_, ok := s.index[key]
	return ok
}

// Len returns the number of resident keys.
func (s *RecencySet[K]) Len() int {
	return s.order.Len()
}

// Touch inserts key if absent, or moves it to the most-recent end if
// present. Returns true if the key was already a member.
func (s *RecencySet[K]) Touch(key K) bool {
	if elem, ok := s.index[key]; ok {
		s.order.MoveToBack(elem)
		return true
	}
	elem := s.order.PushBack(key)
	s.index[key] = elem
	return false
}

// Remove deletes key if present. Returns true if it was present.
func (s *RecencySet[K]) Remove(key K) bool {
	elem, ok := s.index[key]
	if !ok {
		return false
	}
	s.order.Remove(elem)
	delete(s.index, key)
	return true
}

// Oldest returns the least-recently-touched key and true, or the zero
// value and false if the set is empty.
func (s *RecencySet[K]) Oldest() (K, bool) {
	var zero K
	front := s.order.Front()
	if front == nil {
		return zero, false
	}
	return front.Value.(K), true
}

// PopOldest removes and returns the least-recently-touched key.
func (s *RecencySet[K]) PopOldest() (K, bool) {
	key, ok := s.Oldest()
	if !ok {
		return key, false
	}
	s.Remove(key)
	return key, true
}

// Keys returns the resident keys, oldest first. Intended for tests and
// invariant checks, not the hot path.
func (s *RecencySet[K]) Keys() []K {
	keys := make([]K, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(K))
	}
	return keys
}
