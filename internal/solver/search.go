package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
	"svw.info/make24/internal/synth"
)

// ErrBudgetExceeded is returned when a search evaluates more than MaxNodes expressions.
var ErrBudgetExceeded = errors.New("search budget exceeded")

// Search is an exhaustive solver: every permutation of the digits, every
// synthesized expression per permutation, first match within Tolerance wins.
type Search struct {
	Eval      ports.Evaluator
	Target    float64
	Tolerance float64
	NumCount  int
	MinDigit  int
	MaxDigit  int
	// MaxNodes bounds evaluated expressions; 0 means unbounded.
	MaxNodes int
}

// Option configures a Search.
type Option func(*Search)

// WithTarget sets the value expressions must reach.
func WithTarget(target, tolerance float64) Option {
	return func(s *Search) {
		s.Target = target
		s.Tolerance = tolerance
	}
}

// WithDigits sets the accepted digit count and range.
func WithDigits(count, min, max int) Option {
	return func(s *Search) {
		s.NumCount = count
		s.MinDigit = min
		s.MaxDigit = max
	}
}

// WithMaxNodes bounds the number of expressions evaluated per search.
func WithMaxNodes(n int) Option {
	return func(s *Search) {
		s.MaxNodes = n
	}
}

// NewSearch builds a solver for the classic game (four digits 1-9, target 24).
func NewSearch(eval ports.Evaluator, opts ...Option) *Search {
	s := &Search{
		Eval:      eval,
		Target:    24,
		Tolerance: 1e-10,
		NumCount:  4,
		MinDigit:  1,
		MaxDigit:  9,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve returns the first expression reaching the target, in permutation then
// synthesis order. A nil solution with a nil error means no expression works.
func (s *Search) Solve(ctx context.Context, digits domain.Digits) (*domain.Solution, ports.Stats, error) {
	start := time.Now()
	if err := s.check(digits); err != nil {
		return nil, ports.Stats{}, err
	}
	nodes := 0
	stats := func() ports.Stats {
		return ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	}
	for perm := range Permutations(digits) {
		if err := ctx.Err(); err != nil {
			return nil, stats(), err
		}
		for expr := range synth.Expressions(synth.Leaves(perm)) {
			nodes++
			if s.MaxNodes > 0 && nodes > s.MaxNodes {
				return nil, stats(), fmt.Errorf("%w: more than %d expressions", ErrBudgetExceeded, s.MaxNodes)
			}
			v, err := s.Eval.Evaluate(expr)
			if err != nil {
				continue // division by zero and the like never match
			}
			if math.Abs(v-s.Target) < s.Tolerance {
				return &domain.Solution{Expression: expr, Value: v}, stats(), nil
			}
		}
	}
	return nil, stats(), nil
}

func (s *Search) check(d domain.Digits) error {
	if s.NumCount > 0 && len(d) != s.NumCount {
		return fmt.Errorf("%w: want %d digits, got %d", domain.ErrInvalidDigits, s.NumCount, len(d))
	}
	if len(d) == 0 {
		return fmt.Errorf("%w: empty", domain.ErrInvalidDigits)
	}
	for _, v := range d {
		if v < s.MinDigit || v > s.MaxDigit {
			return fmt.Errorf("%w: %d outside [%d,%d]", domain.ErrInvalidDigits, v, s.MinDigit, s.MaxDigit)
		}
	}
	return nil
}
