package generator

import (
	"context"
	"math/rand"
	"time"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

// FallbackDigits is used when no solvable set turns up within MaxAttempts.
var FallbackDigits = domain.Digits{1, 2, 3, 4}

// FallbackSolution is a known witness for FallbackDigits when the target is 24.
const FallbackSolution = "(3 + 1) * (4 + 2)"

const fallbackTarget = 24

// Generate draws up to MaxAttempts digit sets from a source seeded with seed
// and returns the first solvable one with its solution. Exhausting the draws
// is not an error: the fallback set is returned instead.
func (g *SolvableGenerator) Generate(ctx context.Context, seed int64) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))
	nodes := 0

	for attempt := 1; attempt <= g.MaxAttempts; attempt++ {
		digits := g.draw(rng)
		sol, st, err := g.Solver.Solve(ctx, digits)
		nodes += st.Nodes
		if err != nil {
			return nil, ports.Stats{Nodes: nodes, Attempts: attempt, Duration: time.Since(start)}, err
		}
		if sol == nil {
			continue
		}
		g.Logger.Debug("generated", "numbers", digits.String(), "solution", sol.Expression, "attempts", attempt)
		p := &domain.Puzzle{Digits: digits, Solution: sol.Expression, Seed: seed}
		return p, ports.Stats{Nodes: nodes, Attempts: attempt, Duration: time.Since(start)}, nil
	}

	g.Logger.Warn("no solvable set found, using default", "attempts", g.MaxAttempts, "numbers", FallbackDigits.String())
	p := &domain.Puzzle{
		Digits:   append(domain.Digits(nil), FallbackDigits...),
		Solution: FallbackSolution,
		Seed:     seed,
		Fallback: true,
	}
	sol, st, err := g.Solver.Solve(ctx, p.Digits)
	nodes += st.Nodes
	switch {
	case err == nil && sol != nil:
		p.Solution = sol.Expression
	case g.Target != fallbackTarget:
		// no known witness reaches this target
		p.Solution = ""
		g.Logger.Warn("default set has no solution for target", "target", g.Target)
	}
	return p, ports.Stats{Nodes: nodes, Attempts: g.MaxAttempts, Duration: time.Since(start)}, nil
}

func (g *SolvableGenerator) draw(rng *rand.Rand) domain.Digits {
	out := make(domain.Digits, g.NumCount)
	span := g.MaxDigit - g.MinDigit + 1
	for i := range out {
		out[i] = g.MinDigit + rng.Intn(span)
	}
	return out
}
