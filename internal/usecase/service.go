package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/metrics"
	"svw.info/make24/internal/ports"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	Target      float64
	MaxAttempts int
	now         func() time.Time
	rounds      roundLocks
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{
		Solver:      s,
		Generator:   g,
		Validator:   v,
		Hinter:      h,
		Storage:     st,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Target:      24,
		MaxAttempts: 6,
		now:         time.Now,
	}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, d domain.Digits) (*domain.Solution, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	sol, st, err := u.Solver.Solve(ctx, d)
	switch {
	case err != nil:
		u.Metrics.ObserveSearch("error", st.Nodes)
	case sol == nil:
		u.Metrics.ObserveSearch("unsolvable", st.Nodes)
	default:
		u.Metrics.ObserveSearch("solved", st.Nodes)
	}
	return sol, st, err
}

func (u *Service) Generate(ctx context.Context, seed int64) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	p, st, err := u.Generator.Generate(ctx, seed)
	if err != nil {
		return nil, st, err
	}
	u.Metrics.ObserveGeneration(p.Fallback, st.Duration)
	return p, st, nil
}

func (u *Service) Validate(ctx context.Context, expr string, d domain.Digits) (float64, error) {
	if u.Validator == nil {
		return 0, errNotConfigured
	}
	return u.Validator.Validate(expr, d)
}

// ---- Rounds ----

// NewRound generates a puzzle and persists it as a fresh round.
func (u *Service) NewRound(ctx context.Context, seed int64) (*domain.Round, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	p, _, err := u.Generate(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	r := &domain.Round{
		ID:          uuid.New().String(),
		Digits:      p.Digits,
		Solution:    p.Solution,
		Seed:        p.Seed,
		MaxAttempts: u.MaxAttempts,
		Status:      domain.RoundPlaying,
		CreatedAt:   u.now().UnixNano(),
	}
	if err := u.Storage.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("save round: %w", err)
	}
	u.Metrics.ObserveRound("started")
	u.Logger.Info("round started", "id", r.ID, "numbers", r.Digits.String(), "fallback", p.Fallback)
	return r, nil
}

// Submit validates expr against the round and records the attempt. Usage and
// evaluation failures are recorded as StatusError attempts, not returned.
func (u *Service) Submit(ctx context.Context, id, expr string) (domain.Attempt, *domain.Round, error) {
	if u.Storage == nil || u.Validator == nil {
		return domain.Attempt{}, nil, errNotConfigured
	}
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return domain.Attempt{}, nil, domain.ErrEmptyExpression
	}
	defer u.rounds.lock(id)()
	r, err := u.Storage.Load(ctx, id)
	if err != nil {
		return domain.Attempt{}, nil, err
	}
	if r.Status.Finished() || r.Remaining() == 0 {
		return domain.Attempt{}, r, domain.ErrRoundOver
	}

	a := u.grade(expr, r.Digits)
	r.Attempts = append(r.Attempts, a)
	switch {
	case a.Status == domain.StatusCorrect:
		r.Status = domain.RoundWon
	case r.Remaining() == 0:
		r.Status = domain.RoundLost
	}
	if err := u.Storage.Save(ctx, r); err != nil {
		return domain.Attempt{}, nil, fmt.Errorf("save round: %w", err)
	}

	u.Metrics.ObserveAttempt(string(a.Status))
	if r.Status.Finished() {
		u.Metrics.ObserveRound(string(r.Status))
	}
	u.Logger.Debug("attempt", "id", r.ID, "expression", expr, "status", a.Status, "round", r.Status)
	return a, r, nil
}

func (u *Service) grade(expr string, d domain.Digits) domain.Attempt {
	a := domain.Attempt{Expression: expr, At: u.now().UnixNano()}
	res, err := u.Validator.Validate(expr, d)
	if err != nil {
		a.Status = domain.StatusError
		a.Error = err.Error()
		return a
	}
	a.Result = &res
	if res == u.Target {
		a.Status = domain.StatusCorrect
	} else {
		a.Status = domain.StatusIncorrect
	}
	return a
}

// Hint suggests the first step of the round's witness solution.
func (u *Service) Hint(ctx context.Context, id string) (string, bool, error) {
	if u.Hinter == nil || u.Storage == nil {
		return "", false, errNotConfigured
	}
	r, err := u.Storage.Load(ctx, id)
	if err != nil {
		return "", false, err
	}
	return u.Hinter.Hint(ctx, r.Solution)
}

// Reveal marks the round as revealed and returns its witness solution.
func (u *Service) Reveal(ctx context.Context, id string) (string, error) {
	if u.Storage == nil {
		return "", errNotConfigured
	}
	defer u.rounds.lock(id)()
	r, err := u.Storage.Load(ctx, id)
	if err != nil {
		return "", err
	}
	if !r.Revealed {
		r.Revealed = true
		if err := u.Storage.Save(ctx, r); err != nil {
			return "", fmt.Errorf("save round: %w", err)
		}
		u.Metrics.ObserveRound("revealed")
	}
	return r.Solution, nil
}

// Board returns exactly MaxAttempts rows: the attempts so far, then empty rows.
func (u *Service) Board(r *domain.Round) []domain.Attempt {
	n := max(r.MaxAttempts, len(r.Attempts))
	rows := make([]domain.Attempt, n)
	copy(rows, r.Attempts)
	for i := len(r.Attempts); i < n; i++ {
		rows[i] = domain.Attempt{Status: domain.StatusEmpty}
	}
	return rows
}

// Persistence
func (u *Service) Load(ctx context.Context, id string) (*domain.Round, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.RoundMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
