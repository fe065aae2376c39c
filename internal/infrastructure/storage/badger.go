package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"svw.info/make24/internal/domain"
)

const badgerRoundPrefix = "round/"

// Badger stores rounds in an embedded BadgerDB.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a database under path. An empty path opens
// an in-memory database.
func OpenBadger(path string, logger *slog.Logger) (*Badger, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: logger})
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Badger{db: db}, nil
}

func badgerKey(id string) []byte { return []byte(badgerRoundPrefix + id) }

func (s *Badger) Save(ctx context.Context, r *domain.Round) error {
	if r == nil || r.ID == "" {
		return errors.New("invalid round: missing ID")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(r.ID), data)
	})
}

func (s *Badger) Load(ctx context.Context, id string) (*domain.Round, error) {
	var r domain.Round
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrRoundNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns every stored round, newest first.
func (s *Badger) List(ctx context.Context) ([]domain.RoundMeta, error) {
	var out []domain.RoundMeta
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(badgerRoundPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r domain.Round
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil || r.ID == "" {
				continue
			}
			out = append(out, r.Meta())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

// Close flushes and closes the database.
func (s *Badger) Close() error { return s.db.Close() }

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
