// Package census solves every digit multiset in a range and tallies which
// ones can reach the target.
package census

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

// Entry is the outcome for one multiset.
type Entry struct {
	Digits   domain.Digits `json:"numbers"`
	Solution string        `json:"solution,omitempty"`
	Solvable bool          `json:"solvable"`
	Nodes    int           `json:"nodes"`
}

// Report lists entries in enumeration order.
type Report struct {
	Entries    []Entry `json:"entries"`
	Solvable   int     `json:"solvable"`
	Unsolvable int     `json:"unsolvable"`
}

// Options bounds the enumeration.
type Options struct {
	Count    int
	MinDigit int
	MaxDigit int
	Workers  int
}

// Multisets returns every non-decreasing sequence of count digits in
// [min,max], in lexicographic order.
func Multisets(count, min, max int) []domain.Digits {
	var out []domain.Digits
	cur := make(domain.Digits, count)
	var rec func(pos, from int)
	rec = func(pos, from int) {
		if pos == count {
			out = append(out, append(domain.Digits(nil), cur...))
			return
		}
		for v := from; v <= max; v++ {
			cur[pos] = v
			rec(pos+1, v)
		}
	}
	if count > 0 && min <= max {
		rec(0, min)
	}
	return out
}

// Run solves every multiset with up to opts.Workers concurrent searches.
// The first solver error cancels the rest.
func Run(ctx context.Context, s ports.Solver, opts Options) (*Report, error) {
	sets := Multisets(opts.Count, opts.MinDigit, opts.MaxDigit)
	entries := make([]Entry, len(sets))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range sets {
		g.Go(func() error {
			sol, st, err := s.Solve(gctx, d)
			if err != nil {
				return err
			}
			e := Entry{Digits: d, Nodes: st.Nodes}
			if sol != nil {
				e.Solvable = true
				e.Solution = sol.Expression
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Entries: entries}
	for _, e := range entries {
		if e.Solvable {
			rep.Solvable++
		} else {
			rep.Unsolvable++
		}
	}
	return rep, nil
}
