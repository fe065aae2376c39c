package hint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstStep(t *testing.T) {
	cases := []struct {
		solution string
		want     string
	}{
		{"(3 + 1) * (4 + 2)", "Start with 3 + 1 = 4"},
		{"(6) + ((6) + ((6) + (6)))", "Start with 6 + 6 = 12"},
		{"8 / ((3) - (8 / 3))", "Start with 8 / 3 = 2.666666667"},
		{"4 * ((3) * (2 * 1))", "Start with 2 * 1 = 2"},
	}
	h := NewFirstStep()
	for _, tc := range cases {
		msg, ok, err := h.Hint(context.Background(), tc.solution)
		require.NoError(t, err, tc.solution)
		assert.True(t, ok)
		assert.Equal(t, tc.want, msg)
	}
}

func TestFirstStepNothingToCombine(t *testing.T) {
	_, ok, err := NewFirstStep().Hint(context.Background(), "24")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFirstStepBadSolution(t *testing.T) {
	_, _, err := NewFirstStep().Hint(context.Background(), "(3 +")
	assert.Error(t, err)
}

func TestFirstStepNoWitness(t *testing.T) {
	msg, ok, err := NewFirstStep().Hint(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, msg)
}
