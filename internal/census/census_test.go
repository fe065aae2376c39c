package census

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/evaluator"
	"svw.info/make24/internal/solver"
)

func TestMultisets(t *testing.T) {
	assert.Len(t, Multisets(4, 1, 9), 495)
	assert.Len(t, Multisets(4, 1, 4), 35)
	sets := Multisets(2, 1, 3)
	assert.Equal(t, []domain.Digits{{1, 1}, {1, 2}, {1, 3}, {2, 2}, {2, 3}, {3, 3}}, sets)
	assert.Empty(t, Multisets(4, 5, 1))
}

func TestRunSmallRange(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s := solver.NewSearch(evaluator.New())
	rep, err := Run(ctx, s, Options{Count: 4, MinDigit: 1, MaxDigit: 4, Workers: 4})
	require.NoError(t, err)
	require.Len(t, rep.Entries, 35)
	assert.Equal(t, 35, rep.Solvable+rep.Unsolvable)

	byKey := map[[4]int]Entry{}
	for _, e := range rep.Entries {
		byKey[[4]int(e.Digits)] = e
	}
	assert.False(t, byKey[[4]int{1, 1, 1, 1}].Solvable)
	assert.True(t, byKey[[4]int{1, 2, 3, 4}].Solvable)
	assert.True(t, byKey[[4]int{4, 4, 4, 4}].Solvable) // 4*4+4+4

	for _, e := range rep.Entries {
		if !e.Solvable {
			continue
		}
		v, err := evaluator.Evaluate(e.Solution)
		require.NoError(t, err)
		assert.InDelta(t, 24, v, 1e-9, "%v: %s", e.Digits, e.Solution)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	s := solver.NewSearch(evaluator.New(), solver.WithMaxNodes(10))
	_, err := Run(context.Background(), s, Options{Count: 4, MinDigit: 1, MaxDigit: 2, Workers: 2})
	assert.ErrorIs(t, err, solver.ErrBudgetExceeded)
}
