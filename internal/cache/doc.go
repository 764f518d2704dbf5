// Package cache provides the RecencySet primitive: an ordered set with
// O(1) move-to-most-recent and O(1) pop-oldest, the shared building
// block behind every recency-based policy engine in internal/policy.
package cache
