package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tripsplit/money"
)

func TestAllocate_ZeroPool(t *testing.T) {
	shares := map[string]money.Cents{"a": 10, "b": 20}
	out := Allocate(shares, 0, []string{"a", "b"})
	assert.Equal(t, money.Cents(0), out["a"])
	assert.Equal(t, money.Cents(0), out["b"])
}

func TestAllocate_ZeroWeights(t *testing.T) {
	shares := map[string]money.Cents{"a": 0, "b": 0}
	out := Allocate(shares, 500, []string{"a", "b"})
	assert.Equal(t, money.Cents(0), out["a"])
	assert.Equal(t, money.Cents(0), out["b"])
}

func TestAllocate_PennyDistribution(t *testing.T) {
	// Scenario 2 from spec.md §8: item subtotals 334/333/333, tax 5
	// cents allocated proportionally -> 2, 2, 1 (largest remainder to
	// A then B).
	shares := map[string]money.Cents{"A": 334, "B": 333, "C": 333}
	out := Allocate(shares, 5, []string{"A", "B", "C"})
	assert.Equal(t, money.Cents(2), out["A"])
	assert.Equal(t, money.Cents(2), out["B"])
	assert.Equal(t, money.Cents(1), out["C"])
	assert.Equal(t, money.Cents(5), money.Sum(out["A"], out["B"], out["C"]))
}

func TestAllocate_SumPreservation(t *testing.T) {
	pools := []money.Cents{1, 7, 100, 9999, 123456}
	weightSets := []map[string]money.Cents{
		{"a": 1, "b": 1, "c": 1},
		{"a": 5, "b": 3, "c": 1, "d": 1},
		{"a": 1000, "b": 1},
	}
	order := []string{"a", "b", "c", "d"}

	for _, pool := range pools {
		for _, weights := range weightSets {
			out := Allocate(weights, pool, order)
			var sum money.Cents
			for k := range weights {
				sum += out[k]
				assert.True(t, out[k] >= 0)
			}
			assert.Equal(t, pool, sum)
			assert.Equal(t, len(weights), len(out))
		}
	}
}

func TestAllocate_IdempotentUnderScaling(t *testing.T) {
	base := map[string]money.Cents{"a": 1, "b": 2, "c": 3}
	scaled := map[string]money.Cents{"a": 10, "b": 20, "c": 30}
	order := []string{"a", "b", "c"}

	out1 := Allocate(base, 60, order)
	out2 := Allocate(scaled, 600, order)

	for _, k := range order {
		assert.Equal(t, out1[k]*10, out2[k])
	}
}

func TestAllocate_TieBreakByInputOrder(t *testing.T) {
	// Equal weights produce equal remainders; the deficit cents go to
	// the earliest keys in `order`.
	shares := map[string]money.Cents{"x": 1, "y": 1, "z": 1}
	out := Allocate(shares, 10, []string{"x", "y", "z"})
	assert.Equal(t, money.Cents(4), out["x"])
	assert.Equal(t, money.Cents(3), out["y"])
	assert.Equal(t, money.Cents(3), out["z"])
}

func TestAllocate_AllKeysPresent(t *testing.T) {
	shares := map[string]money.Cents{"a": 0, "b": 5}
	out := Allocate(shares, 5, []string{"a", "b"})
	_, ok := out["a"]
	assert.True(t, ok)
	assert.Equal(t, money.Cents(0), out["a"])
	assert.Equal(t, money.Cents(5), out["b"])
}
