package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/make24/internal/domain"
)

// FS stores each round as an indented JSON file under dir.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid round id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FS) Save(ctx context.Context, r *domain.Round) error {
	if r == nil || r.ID == "" {
		return errors.New("invalid round: missing ID")
	}
	target, err := s.pathFor(r.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	// write then rename so readers never see a partial file
	tmp, err := os.CreateTemp(s.dir, r.ID+".*.tmp")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Round, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return nil, domain.ErrRoundNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrRoundNotFound
		}
		return nil, err
	}
	var out domain.Round
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every stored round, newest first.
func (s *FS) List(ctx context.Context) ([]domain.RoundMeta, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.RoundMeta
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var r domain.Round
		if err := json.Unmarshal(data, &r); err != nil || r.ID == "" {
			continue
		}
		out = append(out, r.Meta())
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(ms []domain.RoundMeta) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].CreatedAt != ms[j].CreatedAt {
			return ms[i].CreatedAt > ms[j].CreatedAt
		}
		return ms[i].ID < ms[j].ID
	})
}
