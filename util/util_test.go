package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivAndMod(t *testing.T) {
	cases := []struct {
		a, b, div, mod int
	}{
		{61, 12, 5, 1},
		{60, 12, 5, 0},
		{0, 12, 0, 0},
		{-1, 12, -1, 11},
		{-12, 12, -1, 0},
		{-13, 12, -2, 11},
	}

	assert := assert.New(t)
	for _, c := range cases {
		assert.Equal(c.div, FloorDiv(c.a, c.b), "FloorDiv(%d, %d)", c.a, c.b)
		assert.Equal(c.mod, FloorMod(c.a, c.b), "FloorMod(%d, %d)", c.a, c.b)
		assert.Equal(c.a, FloorDiv(c.a, c.b)*c.b+FloorMod(c.a, c.b))
	}
}

func TestAbsAndMin(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3, Abs(-3))
	assert.Equal(3, Abs(3))
	assert.Equal(2, Min(2, 7))
	assert.Equal(1.5, Min(4.0, 1.5))
}

func TestGetKeysSorted(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	assert.Equal(t, []int{1, 2, 3}, GetKeysSorted(m))
}
