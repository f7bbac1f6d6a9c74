// Package ranking counts values and orders them by count.
package ranking

import "sort"

// Item is a counted value.
type Item[K comparable] struct {
	Key   K
	Count int
	first int // position of first occurrence, used for tie-breaking
}

// Counter tallies occurrences of comparable values.
type Counter[K comparable] struct {
	idx   map[K]int
	items []Item[K]
}

// NewCounter creates an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{idx: make(map[K]int)}
}

// Add counts one occurrence of k.
func (c *Counter[K]) Add(k K) {
	c.AddN(k, 1)
}

// AddN counts n occurrences of k.
func (c *Counter[K]) AddN(k K, n int) {
	if i, ok := c.idx[k]; ok {
		c.items[i].Count += n
		return
	}
	c.idx[k] = len(c.items)
	c.items = append(c.items, Item[K]{Key: k, Count: n, first: len(c.items)})
}

// Len returns the number of distinct values.
func (c *Counter[K]) Len() int {
	return len(c.items)
}

// less orders by count desc, then by first occurrence asc.
func less[K comparable](a, b Item[K]) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.first < b.first
}

// Top returns at most n items ordered by count descending.
// Equal counts keep first-occurrence order so Top(k) is always a prefix of Top(m) for k < m.
// n <= 0 returns every item.
func (c *Counter[K]) Top(n int) []Item[K] {
	out := make([]Item[K], len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Count tallies key(item) over items.
func Count[T any, K comparable](items []T, key func(T) K) *Counter[K] {
	c := NewCounter[K]()
	for _, it := range items {
		c.Add(key(it))
	}
	return c
}
