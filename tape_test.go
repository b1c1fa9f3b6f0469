package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTape_wrap(t *testing.T) {
	nan := math.NaN()
	for _, tc := range []struct {
		name   string
		bounds []float64
		in     float64
		out    float64
	}{
		{"unbounded", nil, -12.5, -12.5},
		{"in range", []float64{10, 0, 9}, 4, 4},
		{"over", []float64{10, 0, 9}, 12, 2},
		{"far over", []float64{10, 0, 9}, 35, 5},
		{"under", []float64{10, 0, 9}, -1, 9},
		{"far under", []float64{10, 0, 9}, -21, 9},
		{"offset range", []float64{10, 5, 9}, 11, 6},
		{"degenerate", []float64{10, 9, 5}, 7, 9},
		{"upper only", []float64{nan, nan, 9}, 25, 5},
		{"upper only under", []float64{nan, nan, 9}, -100, -100},
		{"lower only", []float64{nan, 0}, -5, 0},
		{"lower only over", []float64{nan, 0}, 1e9, 1e9},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tp := newTape(4, tc.bounds...)
			assert.Equal(t, tc.out, tp.Set(tc.in), "expected wrapped value")
			val, err := tp.Get()
			require.NoError(t, err)
			assert.Equal(t, tc.out, val, "expected stored value")
		})
	}
}

func TestTape_bounds(t *testing.T) {
	tp := newTape(4, 10, 0, 9, 7)
	assert.Equal(t, 10.0, tp.Size)
	assert.Equal(t, 7.0, tp.Default)

	tp.Pointer = 9
	val, err := tp.Get()
	require.NoError(t, err)
	assert.Equal(t, 7.0, val, "expected default at max")
	assert.True(t, tp.cells.Has(9), "expected default written through")

	tp.Pointer = 10
	_, err = tp.Get()
	assert.Equal(t, BoundsError{10}, err, "expected read past max to fail")

	tp.Pointer = 9.5
	_, err = tp.Get()
	assert.EqualError(t, err, "9.5 is out of bounds")

	tp.Pointer = 1e20
	_, err = tp.Get()
	assert.EqualError(t, err, "100000000000000000000 is out of bounds", "expected huge pointer to stay above max")

	tp.Pointer = math.Inf(1)
	_, err = tp.Get()
	assert.EqualError(t, err, "Infinity is out of bounds")

	tp.Pointer = math.NaN()
	assert.Equal(t, 2.0, tp.Set(12), "expected wrapped value without a cell")
	val, err = tp.Get()
	require.NoError(t, err)
	assert.Equal(t, 7.0, val, "expected NaN pointer to read default")

	tp.Pointer = -4
	val, err = tp.Get()
	require.NoError(t, err, "expected reads below min to go unchecked")
	assert.Equal(t, 7.0, val)

	var cells []float64
	tp.Cells(func(addr int, val float64) {
		if addr == -4 || addr == 9 {
			cells = append(cells, val)
		}
	})
	assert.Equal(t, []float64{7, 7}, cells)
}
