package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/ports"
)

func sampleRound(id string, created int64) *domain.Round {
	res := 10.0
	return &domain.Round{
		ID:          id,
		Digits:      domain.Digits{1, 2, 3, 4},
		Solution:    "(3 + 1) * (4 + 2)",
		MaxAttempts: 6,
		Status:      domain.RoundPlaying,
		CreatedAt:   created,
		Attempts: []domain.Attempt{
			{Expression: "1+2+3+4", Result: &res, Status: domain.StatusIncorrect},
		},
	}
}

// runContract exercises the behavior every ports.Storage must share.
func runContract(t *testing.T, st ports.Storage) {
	ctx := context.Background()

	_, err := st.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRoundNotFound)

	list, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.Error(t, st.Save(ctx, &domain.Round{}))

	a := sampleRound("aaa", 100)
	b := sampleRound("bbb", 200)
	require.NoError(t, st.Save(ctx, a))
	require.NoError(t, st.Save(ctx, b))

	got, err := st.Load(ctx, "aaa")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	// overwrite keeps a single entry
	a.Status = domain.RoundWon
	require.NoError(t, st.Save(ctx, a))

	list, err = st.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bbb", list[0].ID)
	assert.Equal(t, "aaa", list[1].ID)
	assert.Equal(t, domain.RoundWon, list[1].Status)
	assert.Equal(t, 1, list[1].Attempts)
	assert.Equal(t, domain.Digits{1, 2, 3, 4}, list[1].Digits)
}

func TestFSContract(t *testing.T) {
	runContract(t, NewFS(filepath.Join(t.TempDir(), "rounds")))
}

func TestFSIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	list, err := NewFS(dir).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFSRejectsPathIDs(t *testing.T) {
	st := NewFS(t.TempDir())
	assert.Error(t, st.Save(context.Background(), sampleRound("../escape", 1)))
	_, err := st.Load(context.Background(), "../escape")
	assert.ErrorIs(t, err, domain.ErrRoundNotFound)
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisContract(t *testing.T) {
	_, client := newMiniRedis(t)
	runContract(t, NewRedisFromClient(client, WithPrefix("test:round:")))
}

func TestRedisTTLAndIndexPruning(t *testing.T) {
	mr, client := newMiniRedis(t)
	st := NewRedisFromClient(client, WithPrefix("test:round:"), WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, sampleRound("r1", 1)))
	assert.True(t, mr.Exists("test:round:r1"))
	assert.Equal(t, time.Minute, mr.TTL("test:round:r1"))

	mr.FastForward(2 * time.Minute)

	_, err := st.Load(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrRoundNotFound)

	list, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	members, err := mr.ZMembers("test:round:index")
	if err == nil {
		assert.Empty(t, members)
	}
}

func TestRedisListOrdersCloseTimestamps(t *testing.T) {
	mr, client := newMiniRedis(t)
	st := NewRedisFromClient(client, WithPrefix("test:round:"))
	ctx := context.Background()

	// one nanosecond apart: indistinguishable as float64 nanoseconds
	const base = int64(1_700_000_000_000_000_000)
	require.NoError(t, st.Save(ctx, sampleRound("zzz", base+1)))
	require.NoError(t, st.Save(ctx, sampleRound("aaa", base+2)))

	list, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "aaa", list[0].ID)
	assert.Equal(t, "zzz", list[1].ID)

	score, err := mr.ZScore("test:round:index", "aaa")
	require.NoError(t, err)
	assert.Equal(t, float64(base/int64(time.Millisecond)), score)
}

// failingZRem rejects ZREM so index pruning fails.
type failingZRem struct{}

func (failingZRem) DialHook(next backend.DialHook) backend.DialHook { return next }

func (failingZRem) ProcessHook(next backend.ProcessHook) backend.ProcessHook {
	return func(ctx context.Context, cmd backend.Cmder) error {
		if cmd.Name() == "zrem" {
			return errors.New("zrem refused")
		}
		return next(ctx, cmd)
	}
}

func (failingZRem) ProcessPipelineHook(next backend.ProcessPipelineHook) backend.ProcessPipelineHook {
	return next
}

func TestRedisLogsPruneFailure(t *testing.T) {
	mr, client := newMiniRedis(t)
	client.AddHook(failingZRem{})
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	st := NewRedisFromClient(client, WithPrefix("test:round:"), WithTTL(time.Minute), WithLogger(logger))
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, sampleRound("r1", 1)))
	mr.FastForward(2 * time.Minute)

	list, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Contains(t, buf.String(), "prune round index")
	assert.Contains(t, buf.String(), "zrem refused")
}

func TestBadgerContract(t *testing.T) {
	st, err := OpenBadger("", nil)
	require.NoError(t, err)
	defer st.Close()
	runContract(t, st)
}

func TestBadgerPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	st, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), sampleRound("keep", 5)))
	require.NoError(t, st.Close())

	st, err = OpenBadger(dir, nil)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Load(context.Background(), "keep")
	require.NoError(t, err)
	assert.Equal(t, "keep", got.ID)
}
