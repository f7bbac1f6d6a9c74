// Package dedupe provides a seen-set with keep-first semantics, used to drop
// duplicate rows.
package dedupe

// Set records the keys it has seen.
// It is not safe for concurrent use; callers own one Set per computation.
type Set[K comparable] struct {
	seen map[K]struct{}
}

// New creates an empty Set.
func New[K comparable](opts ...Option) *Set[K] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Set[K]{seen: make(map[K]struct{}, o.capacity)}
}

// SeenAndRecord checks if k was seen and records it if not.
// Returns true if k was already seen, false if it was newly recorded.
func (s *Set[K]) SeenAndRecord(k K) bool {
	if _, ok := s.seen[k]; ok {
		return true
	}
	s.seen[k] = struct{}{}
	return false
}

// Size returns the number of recorded keys.
func (s *Set[K]) Size() int {
	return len(s.seen)
}

// Filter returns the items whose key was not seen before, keeping the first
// occurrence of every key in input order.
func Filter[T any, K comparable](items []T, key func(T) K) []T {
	s := New[K](WithCapacity(len(items)))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !s.SeenAndRecord(key(it)) {
			out = append(out, it)
		}
	}
	return out
}
