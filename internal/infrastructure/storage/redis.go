package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"svw.info/make24/internal/domain"
)

// Redis stores rounds as JSON strings plus a sorted-set index scored by
// creation time in milliseconds.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

type RedisOption func(*Redis)

// WithTTL sets the expiration for rounds. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *Redis) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for rounds.
func WithPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLogger sets the logger for best-effort index maintenance.
func WithLogger(logger *slog.Logger) RedisOption {
	return func(s *Redis) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRedis connects to a Redis server.
func NewRedis(address, password string, db int, opts ...RedisOption) *Redis {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(rdb, opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	s := &Redis{
		client: client,
		prefix: "make24:round:",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Redis) key(id string) string { return s.prefix + id }

func (s *Redis) indexKey() string { return s.prefix + "index" }

func (s *Redis) Save(ctx context.Context, r *domain.Round) error {
	if r == nil || r.ID == "" {
		return errors.New("invalid round: missing ID")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(r.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(time.Duration(r.CreatedAt).Milliseconds()),
		Member: r.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

func (s *Redis) Load(ctx context.Context, id string) (*domain.Round, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	var r domain.Round
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round: %w", err)
	}
	return &r, nil
}

// List returns rounds newest first. Index entries whose round expired are
// pruned from the index.
func (s *Redis) List(ctx context.Context) ([]domain.RoundMeta, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds: %w", err)
	}

	out := make([]domain.RoundMeta, 0, len(ids))
	var stale []any
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var r domain.Round
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			continue
		}
		out = append(out, r.Meta())
	}
	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			s.logger.Warn("prune round index", "stale", len(stale), "err", err)
		}
	}
	// scores are milliseconds; CreatedAt and ID settle the order within one
	sortNewestFirst(out)
	return out, nil
}

// Close releases the client.
func (s *Redis) Close() error { return s.client.Close() }
