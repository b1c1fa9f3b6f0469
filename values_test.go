package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToString(t *testing.T) {
	pat, err := compilePattern("a|b", "g")
	require.NoError(t, err)
	for _, tc := range []struct {
		in  interface{}
		out string
	}{
		{nil, "undefined"},
		{"text", "text"},
		{3.0, "3"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{123456789.0, "123456789"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
		{true, "true"},
		{[]float64{1, 2.5}, "1,2.5"},
		{[]string{"a", "b"}, "a,b"},
		{[]interface{}{1.0, nil, "x"}, "1,,x"},
		{pat, "/a|b/g"},
		{closure{"eval", []string{"print", "string"}}, "eval print string"},
		{stackOps["add"], "func add"},
	} {
		assert.Equal(t, tc.out, toString(tc.in), "toString(%#v)", tc.in)
	}
}

func TestParseNumber(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out float64
	}{
		{"", 0},
		{"  ", 0},
		{"42", 42},
		{" 7 ", 7},
		{"-1.5", -1.5},
		{".5", 0.5},
		{"1e3", 1000},
		{"0x1f", 31},
		{"0b101", 5},
		{"0o17", 15},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	} {
		assert.Equal(t, tc.out, parseNumber(tc.in), "parseNumber(%q)", tc.in)
	}
	for _, in := range []string{"abc", "1_000", "0x", "0xZZ", "inf", "NaN", "0x1p4", "1,2"} {
		assert.True(t, math.IsNaN(parseNumber(in)), "parseNumber(%q) expected NaN", in)
	}
}

func TestTruthy(t *testing.T) {
	for _, falsy := range []interface{}{nil, false, 0.0, math.NaN(), ""} {
		assert.False(t, truthy(falsy), "truthy(%#v)", falsy)
	}
	for _, val := range []interface{}{true, 1.0, -1.0, "0", []interface{}{}, &Stack{}} {
		assert.True(t, truthy(val), "truthy(%#v)", val)
	}
}

func TestSame(t *testing.T) {
	assert.True(t, same(nil, nil))
	assert.False(t, same(nil, 0.0))
	assert.True(t, same(1.0, "1"))
	assert.True(t, same(true, 1.0))
	assert.False(t, same(math.NaN(), math.NaN()))
	assert.True(t, same("a", "a"))
	assert.False(t, same("a", "b"))
}

func TestCompilePattern(t *testing.T) {
	pat, err := compilePattern("^b", "m")
	require.NoError(t, err)
	assert.Equal(t, "a\nc", pat.replace("a\nb", "c"))
	assert.False(t, pat.Global)

	pat, err = compilePattern(`(\w)(\d)`, "g")
	require.NoError(t, err)
	assert.Equal(t, "1a 2b", pat.replace("a1 b2", "$2$1"))

	_, err = compilePattern("a", "q")
	assert.EqualError(t, err, `invalid pattern flag 'q'`)
}

func TestToNumbers(t *testing.T) {
	assert.Nil(t, toNumbers(nil))
	assert.Equal(t, []float64{3}, toNumbers(3.0))
	assert.Equal(t, []float64{1, 2}, toNumbers([]string{"1", "2"}))
	assert.Equal(t, []float64{4, 0}, toNumbers([]interface{}{"4", false}))
}
