package generator

import (
	"io"
	"log/slog"

	"svw.info/make24/internal/ports"
)

// SolvableGenerator draws random digit sets and keeps the first one the
// Solver can reach the target with.
type SolvableGenerator struct {
	Solver ports.Solver
	Logger *slog.Logger
	// Target is the value FallbackSolution is checked against.
	Target      float64
	NumCount    int
	MinDigit    int
	MaxDigit    int
	MaxAttempts int
}

// NewSolvableGenerator wires a generator for four digits in [1,9] and up to
// 100 draws.
func NewSolvableGenerator(s ports.Solver, logger *slog.Logger) *SolvableGenerator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SolvableGenerator{
		Solver:      s,
		Logger:      logger,
		Target:      24,
		NumCount:    4,
		MinDigit:    1,
		MaxDigit:    9,
		MaxAttempts: 100,
	}
}
