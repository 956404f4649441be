// Package storage loads and persists the candidate pool.
package storage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/model"
	"github.com/spigell/candidate-ranker/internal/secrets"
	"github.com/spigell/candidate-ranker/internal/storage/dataset"
	"github.com/spigell/candidate-ranker/internal/storage/jsonfile"
	"github.com/spigell/candidate-ranker/internal/storage/postgres"
	"github.com/spigell/candidate-ranker/internal/storage/sqlite"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CandidateStore loads and persists candidate pools.
type CandidateStore interface {
	List(ctx context.Context) ([]model.Candidate, error)
	Save(ctx context.Context, candidates []model.Candidate) error
	Close() error
}

// Config selects and configures the storage driver.
type Config struct {
	Driver   string           `mapstructure:"driver"`
	Path     string           `mapstructure:"path"`
	DSN      string           `mapstructure:"dsn"`
	DSNFile  string           `mapstructure:"dsn-file"`
	Postgres postgres.Options `mapstructure:"postgres"`
}

// Open returns the store for the configured driver.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (CandidateStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	logger = logger.With(zap.String("driver", driver))

	switch driver {
	case "", DriverFile:
		logger.Debug("using candidate file", zap.String("path", cfg.Path))
		return jsonfile.New(cfg.Path, logger), nil

	case DriverSQLite:
		logger.Debug("opening sqlite database", zap.String("path", cfg.Path))
		return sqlite.Open(ctx, cfg.Path)

	case DriverPostgres:
		dsn, err := secrets.Load(secrets.Source{
			Name:  "postgres dsn",
			Value: cfg.DSN,
			File:  cfg.DSNFile,
			Env:   "DATABASE_URL",
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("connecting to postgres")
		return postgres.Open(ctx, dsn, cfg.Postgres)

	default:
		return nil, fmt.Errorf("unknown storage driver %q: expected %s, %s or %s", cfg.Driver, DriverFile, DriverSQLite, DriverPostgres)
	}
}

// Import validates a JSON candidate pool, assigns IDs to candidates that lack
// one and saves them. It returns the saved candidates.
func Import(ctx context.Context, store CandidateStore, data []byte) ([]model.Candidate, error) {
	candidates, err := dataset.Decode(data)
	if err != nil {
		return nil, err
	}

	candidates = dataset.AssignIDs(candidates)
	if err := store.Save(ctx, candidates); err != nil {
		return nil, fmt.Errorf("save candidates: %w", err)
	}
	return candidates, nil
}
