// Package synth enumerates arithmetic expressions over an ordered sequence of
// leaves. Every expression uses each leaf exactly once, in order.
package synth

import (
	"iter"
	"strconv"
)

// Operators in emission order.
var Operators = [...]string{"+", "-", "*", "/"}

// Expressions lazily yields every expression that combines leaves left to
// right. For each split point and operator it yields "(L) op (R)" and, when
// either side is a single leaf, also "L op R". The order is fixed by split
// point, then left and right sub-expression order, then operator order.
func Expressions(leaves []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		emit(leaves, yield)
	}
}

// emit reports false once the consumer stops pulling.
func emit(leaves []string, yield func(string) bool) bool {
	if len(leaves) == 0 {
		return true
	}
	if len(leaves) == 1 {
		return yield(leaves[0])
	}
	for i := 1; i < len(leaves); i++ {
		left, right := leaves[:i], leaves[i:]
		bare := len(left) == 1 || len(right) == 1
		for l := range Expressions(left) {
			for r := range Expressions(right) {
				for _, op := range Operators {
					if !yield("(" + l + ") " + op + " (" + r + ")") {
						return false
					}
					if bare && !yield(l+" "+op+" "+r) {
						return false
					}
				}
			}
		}
	}
	return true
}

// Count returns how many expressions Expressions yields for n leaves.
func Count(n int) int {
	if n <= 0 {
		return 0
	}
	memo := make([]int, n+1)
	memo[1] = 1
	for k := 2; k <= n; k++ {
		for i := 1; i < k; i++ {
			forms := 1
			if i == 1 || k-i == 1 {
				forms = 2
			}
			memo[k] += memo[i] * memo[k-i] * len(Operators) * forms
		}
	}
	return memo[n]
}

// Leaves formats numbers as leaf tokens.
func Leaves(nums []int) []string {
	out := make([]string, len(nums))
	for i, v := range nums {
		out[i] = strconv.Itoa(v)
	}
	return out
}
