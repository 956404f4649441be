// Package jsonfile keeps a candidate pool in a JSON file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/model"
	"github.com/spigell/candidate-ranker/internal/storage/dataset"
)

// Store reads and writes a JSON candidate file. When the file does not exist
// yet, List serves the bundled sample pool.
type Store struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
}

// New returns a store for path. An empty path always serves the sample pool
// and cannot be saved to.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

func (s *Store) List(ctx context.Context) ([]model.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Save merges candidates into the file by ID: known IDs are replaced in
// place and new ones are appended.
func (s *Store) Save(ctx context.Context, candidates []model.Candidate) error {
	if s.path == "" {
		return errors.New("no candidate file configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if errors.Is(err, fs.ErrNotExist) {
		current, err = nil, nil
	}
	if err != nil {
		return err
	}

	for _, c := range candidates {
		if c.ID == "" {
			return fmt.Errorf("candidate %q has no id", c.Name)
		}
		i := slices.IndexFunc(current, func(existing model.Candidate) bool { return existing.ID == c.ID })
		if i >= 0 {
			current[i] = c
			continue
		}
		current = append(current, c)
	}

	return s.write(current)
}

func (s *Store) Close() error { return nil }

func (s *Store) load() ([]model.Candidate, error) {
	if s.path == "" {
		return dataset.Sample(), nil
	}

	candidates, err := s.read()
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("candidate file not found, serving bundled sample",
			zap.String("path", s.path),
		)
		return dataset.Sample(), nil
	}
	return candidates, err
}

func (s *Store) read() ([]model.Candidate, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates from %q: %w", s.path, err)
	}

	candidates, err := dataset.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("candidates file %q: %w", s.path, err)
	}
	return candidates, nil
}

// write replaces the file atomically.
func (s *Store) write(candidates []model.Candidate) error {
	data, err := dataset.Encode(candidates)
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create candidates directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".candidates-*.json")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write candidates: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write candidates: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %q: %w", s.path, err)
	}
	return nil
}
