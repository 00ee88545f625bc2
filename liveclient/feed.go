// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package liveclient

import "sort"

// Feed is an id-keyed list that never holds two records with the same id.
// Append feeds keep oldest-first order; newest-first feeds prepend.
type Feed[T any] struct {
	key         func(T) int64
	newestFirst bool
	items       []T
	ids         map[int64]struct{}
}

func NewFeed[T any](key func(T) int64, newestFirst bool) *Feed[T] {
	return &Feed[T]{
		key:         key,
		newestFirst: newestFirst,
		ids:         make(map[int64]struct{}),
	}
}

// Add inserts item unless its id is already present. Existing records are
// never overwritten. Reports whether the item was added.
func (f *Feed[T]) Add(item T) bool {
	id := f.key(item)
	if _, ok := f.ids[id]; ok {
		return false
	}
	f.ids[id] = struct{}{}
	if f.newestFirst {
		f.items = append([]T{item}, f.items...)
	} else {
		f.items = append(f.items, item)
	}
	return true
}

// Merge adds every record of a snapshot that is missing locally and then
// restores id order. Nothing already present is removed or replaced.
// Returns the number of records added.
func (f *Feed[T]) Merge(snapshot []T) int {
	added := 0
	for _, item := range snapshot {
		id := f.key(item)
		if _, ok := f.ids[id]; ok {
			continue
		}
		f.ids[id] = struct{}{}
		f.items = append(f.items, item)
		added++
	}
	if added > 0 {
		sort.SliceStable(f.items, func(i, j int) bool {
			if f.newestFirst {
				return f.key(f.items[i]) > f.key(f.items[j])
			}
			return f.key(f.items[i]) < f.key(f.items[j])
		})
	}
	return added
}

func (f *Feed[T]) Contains(id int64) bool {
	_, ok := f.ids[id]
	return ok
}

func (f *Feed[T]) Len() int { return len(f.items) }

// Items returns a copy in display order
func (f *Feed[T]) Items() []T {
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out
}

// Newest returns up to n records, most recent first
func (f *Feed[T]) Newest(n int) []T {
	if n > len(f.items) {
		n = len(f.items)
	}
	out := make([]T, 0, n)
	if f.newestFirst {
		return append(out, f.items[:n]...)
	}
	for i := len(f.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.items[i])
	}
	return out
}
