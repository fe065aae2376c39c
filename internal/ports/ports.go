package ports

import (
	"context"
	"time"

	"svw.info/make24/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Attempts int
	Duration time.Duration
}

// Evaluator parses and evaluates an infix arithmetic expression.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// Solver finds one expression over the digits that reaches the target.
// A nil solution with a nil error means the digits are unsolvable.
type Solver interface {
	Solve(ctx context.Context, digits domain.Digits) (*domain.Solution, Stats, error)
}

// Generator draws digit sets until one is solvable.
type Generator interface {
	Generate(ctx context.Context, seed int64) (*domain.Puzzle, Stats, error)
}

// Validator checks a player's expression against the round's digits and
// returns its (possibly snapped) result.
type Validator interface {
	Validate(expr string, digits domain.Digits) (float64, error)
}

// Hinter suggests the first step of a known solution.
type Hinter interface {
	Hint(ctx context.Context, solution string) (string, bool, error)
}

// Storage persists and retrieves rounds.
type Storage interface {
	Save(ctx context.Context, r *domain.Round) error
	Load(ctx context.Context, id string) (*domain.Round, error)
	List(ctx context.Context) ([]domain.RoundMeta, error)
}
