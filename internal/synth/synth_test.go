package synth

import (
	"regexp"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numRe = regexp.MustCompile(`\d+`)

func TestExpressionsSingleLeaf(t *testing.T) {
	got := slices.Collect(Expressions([]string{"7"}))
	assert.Equal(t, []string{"7"}, got)
}

func TestExpressionsTwoLeaves(t *testing.T) {
	got := slices.Collect(Expressions([]string{"3", "1"}))
	want := []string{
		"(3) + (1)", "3 + 1",
		"(3) - (1)", "3 - 1",
		"(3) * (1)", "3 * 1",
		"(3) / (1)", "3 / 1",
	}
	assert.Equal(t, want, got)
}

func TestExpressionsCount(t *testing.T) {
	for n, want := range map[int]int{1: 1, 2: 8, 3: 128, 4: 2304} {
		leaves := Leaves(slices.Repeat([]int{5}, n))
		got := 0
		for range Expressions(leaves) {
			got++
		}
		assert.Equal(t, want, got, "n=%d", n)
		assert.Equal(t, want, Count(n), "Count(%d)", n)
	}
	assert.Equal(t, 0, Count(0))
}

func TestExpressionsUseEveryLeafOnce(t *testing.T) {
	for _, in := range [][]int{{1, 2}, {4, 7, 9}, {1, 2, 3, 4}, {8, 8, 3, 3}} {
		want := slices.Clone(in)
		slices.Sort(want)
		for expr := range Expressions(Leaves(in)) {
			var got []int
			for _, m := range numRe.FindAllString(expr, -1) {
				v, err := strconv.Atoi(m)
				require.NoError(t, err)
				got = append(got, v)
			}
			slices.Sort(got)
			require.Equal(t, want, got, "expression %q", expr)
		}
	}
}

func TestExpressionsPreserveLeafOrder(t *testing.T) {
	in := []int{1, 2, 3, 4}
	for expr := range Expressions(Leaves(in)) {
		var got []int
		for _, m := range numRe.FindAllString(expr, -1) {
			v, _ := strconv.Atoi(m)
			got = append(got, v)
		}
		require.Equal(t, in, got, "expression %q", expr)
	}
}

func TestExpressionsDeterministic(t *testing.T) {
	leaves := Leaves([]int{2, 9, 4, 6})
	a := slices.Collect(Expressions(leaves))
	b := slices.Collect(Expressions(leaves))
	assert.Equal(t, a, b)
	assert.Equal(t, "(2) + ((9) + ((4) + (6)))", a[0])
}

func TestExpressionsEarlyExit(t *testing.T) {
	var got []string
	for expr := range Expressions(Leaves([]int{1, 2, 3, 4})) {
		got = append(got, expr)
		if len(got) == 5 {
			break
		}
	}
	assert.Len(t, got, 5)

	// a fresh production starts from the beginning
	first := slices.Collect(Expressions(Leaves([]int{1, 2, 3, 4})))[:5]
	assert.Equal(t, first, got)
}

func TestExpressionsEmpty(t *testing.T) {
	assert.Empty(t, slices.Collect(Expressions(nil)))
}
