// Package ranking assembles scored candidates into the final ordered result
// and drives the whole extract, filter, score pipeline for one request.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/extract"
	"github.com/spigell/candidate-ranker/internal/filtering"
	"github.com/spigell/candidate-ranker/internal/model"
	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/utils"
)

const jobPreviewLimit = 80

// Options configure a Ranker.
type Options struct {
	Vocabulary    *extract.Vocabulary
	Weights       scoring.Weights
	Normalization Normalization
	EnforceSkills bool

	// DisabledFilters names filtering steps to switch off.
	DisabledFilters []string
	Logger          *zap.Logger
}

// Ranker runs ranking requests. It holds only read-only configuration and is
// safe for concurrent use.
type Ranker struct {
	extractor     *extract.Extractor
	engine        *scoring.Engine
	normalization Normalization
	filterOptions filtering.Options
	validate      *validator.Validate
	logger        *zap.Logger
}

// New validates the options and builds a Ranker.
func New(opts Options) (*Ranker, error) {
	norm, err := ParseNormalization(string(opts.Normalization))
	if err != nil {
		return nil, err
	}

	weights := opts.Weights
	if weights.IsZero() {
		weights = scoring.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring weights: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ranker{
		extractor:     extract.New(opts.Vocabulary),
		engine:        scoring.NewEngine(weights),
		normalization: norm,
		filterOptions: filtering.Options{EnforceSkills: opts.EnforceSkills, Disabled: opts.DisabledFilters},
		validate:      newValidator(),
		logger:        logger,
	}, nil
}

// Extract exposes the requirement extraction step on its own.
func (r *Ranker) Extract(text string) model.RequirementSet {
	return r.extractor.Extract(text)
}

// Filters returns the filtering steps the ranker would run for the filters.
func (r *Ranker) Filters(filters model.RecruiterFilters) []filtering.Filter {
	return filtering.New(filters, r.filterOptions)
}

// Rank validates the request and runs the pipeline. Invalid requests fail
// with an error wrapping ErrInvalidRequest; unexpected failures inside the
// pipeline wrap ErrInternal and never return partial results.
func (r *Ranker) Rank(ctx context.Context, req *model.RankRequest) (*model.RankingResult, error) {
	return r.RankWithLogger(ctx, r.logger, req)
}

// RankWithLogger is Rank with a request-scoped logger.
func (r *Ranker) RankWithLogger(ctx context.Context, logger *zap.Logger, req *model.RankRequest) (result *model.RankingResult, err error) {
	if logger == nil {
		logger = r.logger
	}

	if err := r.Validate(req); err != nil {
		logger.Info("ranking request rejected", zap.Error(err))
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			logger.Error("ranking pipeline panicked",
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
			result, err = nil, fmt.Errorf("%w: %v", ErrInternal, p)
		}
	}()

	started := time.Now()

	requirements := r.extractor.Extract(req.JobDescriptionText)
	logger.Debug("requirements extracted",
		zap.String("job", utils.Preview(req.JobDescriptionText, jobPreviewLimit)),
		zap.Strings("required_skills", requirements.RequiredSkills),
		zap.Strings("preferred_skills", requirements.PreferredSkills),
		zap.Int("minimum_experience", requirements.MinimumExperience),
		zap.String("location", requirements.Location),
	)

	filtered, err := filtering.Run(ctx, logger, r.Filters(*req.RecruiterFilters), req.Candidates)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.Error("filtering failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	scored := make([]model.RankedCandidate, 0, filtered.Len())
	for _, candidate := range filtered {
		scored = append(scored, r.engine.Score(candidate, requirements))
	}

	assembled := Assemble(scored, len(req.Candidates), filtered.Len(), r.normalization)

	logger.Info("candidates ranked",
		zap.Int("total", assembled.TotalCandidates),
		zap.Int("filtered", assembled.FilteredCount),
		zap.String("normalization", r.normalization.String()),
		zap.Duration("took", time.Since(started)),
	)

	return &assembled, nil
}

// Validate checks that every required top-level field is present and that
// the recruiter filters can be applied. An empty candidate list is valid.
func (r *Ranker) Validate(req *model.RankRequest) error {
	if req == nil {
		return &ValidationError{Fields: []string{"jobDescriptionText", "recruiterFilters", "candidates"}}
	}

	err := r.validate.Struct(req)
	if err == nil {
		if ferr := filtering.Validate(r.Filters(*req.RecruiterFilters)); ferr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, ferr)
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
