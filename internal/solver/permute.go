package solver

import (
	"iter"
	"slices"
)

// Permutations yields every ordering of in using Heap's algorithm, starting
// with in itself. Repeated values produce repeated orderings. Each yielded
// slice is a fresh copy.
func Permutations(in []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		p := slices.Clone(in)
		if !yield(slices.Clone(p)) {
			return
		}
		c := make([]int, len(p))
		i := 1
		for i < len(p) {
			if c[i] < i {
				k := 0
				if i%2 == 1 {
					k = c[i]
				}
				p[i], p[k] = p[k], p[i]
				c[i]++
				i = 1
				if !yield(slices.Clone(p)) {
					return
				}
			} else {
				c[i] = 0
				i++
			}
		}
	}
}
