package generator

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/evaluator"
	"svw.info/make24/internal/ports"
	"svw.info/make24/internal/solver"
)

func TestGenerateSolvable(t *testing.T) {
	g := NewSolvableGenerator(solver.NewSearch(evaluator.New()), nil)

	for seed := int64(1); seed <= 20; seed++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		p, st, err := g.Generate(ctx, seed)
		cancel()
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, p.Digits, 4)
		for _, d := range p.Digits {
			assert.GreaterOrEqual(t, d, 1)
			assert.LessOrEqual(t, d, 9)
		}
		v, err := evaluator.Evaluate(p.Solution)
		require.NoError(t, err, "seed %d: %s", seed, p.Solution)
		assert.Less(t, math.Abs(v-24), 1e-9, "seed %d: %s", seed, p.Solution)
		assert.GreaterOrEqual(t, st.Attempts, 1)
		assert.Equal(t, seed, p.Seed)
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	g := NewSolvableGenerator(solver.NewSearch(evaluator.New()), nil)
	a, _, err := g.Generate(context.Background(), 42)
	require.NoError(t, err)
	b, _, err := g.Generate(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

type nopSolver struct{ calls int }

func (s *nopSolver) Solve(ctx context.Context, d domain.Digits) (*domain.Solution, ports.Stats, error) {
	s.calls++
	return nil, ports.Stats{Nodes: 1}, nil
}

func TestGenerateFallback(t *testing.T) {
	s := &nopSolver{}
	g := NewSolvableGenerator(s, nil)

	p, st, err := g.Generate(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Equal(t, domain.Digits{1, 2, 3, 4}, p.Digits)
	assert.Equal(t, FallbackSolution, p.Solution)
	assert.Equal(t, 100, st.Attempts)
	assert.Equal(t, 101, s.calls)

	v, err := evaluator.Evaluate(p.Solution)
	require.NoError(t, err)
	assert.Equal(t, 24.0, v)
}

func TestGenerateFallbackUsesSolverWitness(t *testing.T) {
	g := NewSolvableGenerator(solver.NewSearch(evaluator.New()), nil)
	g.MinDigit, g.MaxDigit = 1, 1 // only 1,1,1,1 can be drawn
	g.MaxAttempts = 3

	p, st, err := g.Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Equal(t, 3, st.Attempts)
	v, err := evaluator.Evaluate(p.Solution)
	require.NoError(t, err)
	assert.InDelta(t, 24, v, 1e-10)
}

func TestGenerateCanceled(t *testing.T) {
	g := NewSolvableGenerator(solver.NewSearch(evaluator.New()), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := g.Generate(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateFallbackOtherTarget(t *testing.T) {
	g := NewSolvableGenerator(&nopSolver{}, nil)
	g.Target = 10
	p, _, err := g.Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Empty(t, p.Solution, "no witness reaches 10")

	s := solver.NewSearch(evaluator.New(), solver.WithTarget(10, 1e-10))
	g = NewSolvableGenerator(s, nil)
	g.Target = 10
	g.MinDigit, g.MaxDigit = 1, 1
	g.MaxAttempts = 2
	p, _, err = g.Generate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	v, err := evaluator.Evaluate(p.Solution)
	require.NoError(t, err)
	assert.InDelta(t, 10, v, 1e-10)
}
