package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// FloorDiv divides rounding toward negative infinity, so FloorDiv(-1, 12) == -1.
func FloorDiv[A constraints.Signed](a, b A) A {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a result with the sign of b, so FloorMod(-1, 12) == 11.
func FloorMod[A constraints.Signed](a, b A) A {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func Abs[A constraints.Signed](a A) A {
	if a < 0 {
		return -a
	}
	return a
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// GetKeysSorted is GetKeys in ascending order.
func GetKeysSorted[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
