// Package allocator distributes a pool of cents across a set of users in
// proportion to arbitrary non-negative integer weights, preserving the
// pool exactly. It is the one place in tripsplit where "largest
// remainder" rounding happens, used by the expense engine to spread tax
// and tip over per-item subtotals (spec.md §4.B, §4.F).
package allocator

import (
	"sort"

	"tripsplit/money"
)

// UserID is left as a type parameter surrogate via a plain comparable
// key; callers pass their own ID type through generics.
type UserID interface {
	comparable
}

// entry tracks one user's exact allocation while the largest-remainder
// pass runs.
type entry[K UserID] struct {
	key        K
	weight     money.Cents
	floor      money.Cents
	remainder  int64 // remainder numerator, compared against weight*sum via cross-multiplication
	inputOrder int
}

// Allocate distributes pool cents across shares in proportion to each
// key's weight. It always returns one entry per input key, and the sum
// of the returned map is exactly pool.
//
// If pool is zero or every weight is zero, every key gets zero.
// Otherwise each key's exact share is pool*weight/total computed in
// rational arithmetic (via cross-multiplication, never floating point),
// floored to find a baseline, and the cents short of pool are handed
// one-by-one to the keys with the largest fractional remainder,
// breaking ties by the order keys were supplied in.
func Allocate[K UserID](shares map[K]money.Cents, pool money.Cents, order []K) map[K]money.Cents {
	out := make(map[K]money.Cents, len(shares))

	var total money.Cents
	for _, w := range shares {
		total += w
	}

	if pool == 0 || total == 0 {
		for k := range shares {
			out[k] = 0
		}
		return out
	}

	entries := make([]entry[K], 0, len(shares))
	idx := make(map[K]int, len(order))
	for i, k := range order {
		idx[k] = i
	}

	for k, w := range shares {
		// exact_i = pool * w / total; floor_i = floor(exact_i)
		num := int64(pool) * int64(w)
		den := int64(total)
		floorPart := num / den
		remNum := num % den // remainder numerator over the same denominator `den`
		e := entry[K]{
			key:        k,
			weight:     w,
			floor:      money.Cents(floorPart),
			remainder:  remNum,
			inputOrder: idx[k],
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].inputOrder < entries[j].inputOrder })

	var floorSum money.Cents
	for _, e := range entries {
		floorSum += e.floor
	}
	deficit := int(pool - floorSum)

	// Largest remainder first; ties keep input order because the sort
	// above is stable and this second sort only reorders on strict
	// remainder differences.
	ranked := make([]entry[K], len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].remainder > ranked[j].remainder })

	bonus := make(map[K]money.Cents, len(entries))
	for i := 0; i < deficit && i < len(ranked); i++ {
		bonus[ranked[i].key] += 1
	}

	var assigned money.Cents
	for _, e := range entries {
		v := e.floor + bonus[e.key]
		out[e.key] = v
		assigned += v
	}

	// Exact integer math above should already hit pool; this guards
	// against a deficit larger than len(entries) (cannot happen since
	// deficit < total entries under floor/ceil arithmetic) and pushes
	// any stray residual onto the first input-ordered key.
	if residual := pool - assigned; residual != 0 && len(entries) > 0 {
		out[entries[0].key] += residual
	}

	return out
}
