// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"math/rand/v2"

	"github.com/danielhkuo/gala-live/models"
)

// Shuffler permutes n elements in place by calling swap, like rand.Shuffle
type Shuffler func(n int, swap func(i, j int))

// defaultShuffle is a uniform Fisher-Yates shuffle
var defaultShuffle Shuffler = rand.Shuffle

// DrawWinners returns up to max entries of pool chosen uniformly without
// replacement. pool is not modified. When max covers the whole pool every
// entry is returned in shuffled order.
func DrawWinners[T any](pool []T, max int, shuffle Shuffler) []T {
	if max <= 0 || len(pool) == 0 {
		return []T{}
	}
	drawn := make([]T, len(pool))
	copy(drawn, pool)
	shuffle(len(drawn), func(i, j int) { drawn[i], drawn[j] = drawn[j], drawn[i] })

	if max > len(drawn) {
		max = len(drawn)
	}
	return drawn[:max]
}

// DealGroups shuffles members and deals them round-robin into count groups,
// so group sizes differ by at most one. Callers ensure 1 <= count <= len(members).
func DealGroups(members []string, count int, shuffle Shuffler) []models.Group {
	shuffled := make([]string, len(members))
	copy(shuffled, members)
	shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	groups := make([]models.Group, count)
	for i := range groups {
		groups[i] = models.Group{
			Index:   i + 1,
			Name:    fmt.Sprintf("Team %d", i+1),
			Members: models.StringList{},
		}
	}
	for i, name := range shuffled {
		g := &groups[i%count]
		g.Members = append(g.Members, name)
	}
	return groups
}
