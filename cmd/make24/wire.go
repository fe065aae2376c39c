package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadapter "svw.info/make24/internal/adapters/http"
	"svw.info/make24/internal/config"
	"svw.info/make24/internal/evaluator"
	"svw.info/make24/internal/generator"
	"svw.info/make24/internal/hint"
	"svw.info/make24/internal/infrastructure/storage"
	"svw.info/make24/internal/metrics"
	"svw.info/make24/internal/ports"
	"svw.info/make24/internal/solver"
	"svw.info/make24/internal/usecase"
	"svw.info/make24/internal/validator"
	"svw.info/make24/web"
)

func newSearch(g config.GameConfig) *solver.Search {
	return solver.NewSearch(evaluator.New(),
		solver.WithTarget(g.Target, g.SearchTolerance),
		solver.WithDigits(g.NumCount, g.MinDigit, g.MaxDigit),
		solver.WithMaxNodes(g.MaxSearchNodes),
	)
}

func newValidator(g config.GameConfig) *validator.SubmissionValidator {
	v := validator.New(evaluator.New())
	v.Target = g.Target
	v.Tolerance = g.ValidateTolerance
	return v
}

func newGenerator(g config.GameConfig, s ports.Solver, logger *slog.Logger) *generator.SolvableGenerator {
	gen := generator.NewSolvableGenerator(s, logger)
	gen.NumCount = g.NumCount
	gen.MinDigit = g.MinDigit
	gen.MaxDigit = g.MaxDigit
	gen.MaxAttempts = g.MaxGenerationAttempts
	gen.Target = g.Target
	return gen
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStorage returns the configured round store and a closer for it.
func openStorage(c config.StorageConfig, logger *slog.Logger) (ports.Storage, io.Closer, error) {
	switch c.Backend {
	case "redis":
		st := storage.NewRedis(c.Redis.Addr, c.Redis.Password, c.Redis.DB,
			storage.WithTTL(c.Redis.TTL), storage.WithPrefix(c.Redis.Prefix), storage.WithLogger(logger))
		return st, st, nil
	case "badger":
		st, err := storage.OpenBadger(c.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger: %w", err)
		}
		return st, st, nil
	case "fs", "":
		return storage.NewFS(c.Path), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", c.Backend)
}

// newService wires providers into the use case layer.
func newService(cfg config.Config, st ports.Storage, m *metrics.Metrics, logger *slog.Logger) *usecase.Service {
	s := newSearch(cfg.Game)
	svc := usecase.NewService(s, newGenerator(cfg.Game, s, logger), newValidator(cfg.Game), hint.NewFirstStep(), st)
	svc.Metrics = m
	svc.Logger = logger
	svc.Target = cfg.Game.Target
	svc.MaxAttempts = cfg.Game.MaxAttemptsPerRound
	return svc
}

// newRouter mounts the page, static assets, metrics and the JSON API.
func newRouter(cfg config.Config, svc *usecase.Service, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(httpadapter.RequestLogger(logger))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	r.Get("/", web.Index(web.Templates(), web.PageData{
		Target:      cfg.Game.Target,
		NumCount:    cfg.Game.NumCount,
		MaxAttempts: cfg.Game.MaxAttemptsPerRound,
	}))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(httpadapter.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
		httpadapter.New(svc).Register(r)
	})
	return r
}
