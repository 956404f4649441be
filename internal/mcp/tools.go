package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/extract"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/model"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/storage"
)

const transportMCP = "mcp"

// RankParams defines the arguments for the rank_candidates tool.
type RankParams struct {
	JobDescriptionText string                  `json:"jobDescriptionText" jsonschema:"Free-text job description"`
	RecruiterFilters   *model.RecruiterFilters `json:"recruiterFilters" jsonschema:"Hard constraints applied before scoring"`
	Candidates         []model.Candidate       `json:"candidates,omitempty" jsonschema:"Candidate pool to rank; the configured store is used when omitted"`
}

// ExtractParams defines the arguments for the extract_requirements tool.
type ExtractParams struct {
	JobDescriptionText string `json:"jobDescriptionText" jsonschema:"Free-text job description"`
}

// ExtractResult is returned by the extract_requirements tool.
type ExtractResult struct {
	Requirements     model.RequirementSet   `json:"requirements"`
	SuggestedFilters model.RecruiterFilters `json:"suggestedFilters"`
}

type tools struct {
	ranker *ranking.Ranker
	store  storage.CandidateStore
	logger *zap.Logger
}

func (t *tools) rank(ctx context.Context, _ *sdkmcp.CallToolRequest, params RankParams) (*sdkmcp.CallToolResult, any, error) {
	log := logger.ForRequest(t.logger, transportMCP, uuid.NewString())
	log.Debug("rank_candidates called", zap.Int("candidates", len(params.Candidates)))

	if params.Candidates == nil {
		if t.store == nil {
			return nil, nil, errors.New("candidates are required: no candidate store configured")
		}

		pool, err := t.store.List(ctx)
		if err != nil {
			log.Error("rank_candidates: loading candidate pool failed", zap.Error(err))
			return nil, nil, fmt.Errorf("load candidate pool: %w", err)
		}
		log.Debug("rank_candidates: using stored pool", zap.Int("candidates", len(pool)))
		params.Candidates = pool
	}

	result, err := t.ranker.RankWithLogger(ctx, log, &model.RankRequest{
		JobDescriptionText: params.JobDescriptionText,
		RecruiterFilters:   params.RecruiterFilters,
		Candidates:         params.Candidates,
	})
	if err != nil {
		return nil, nil, err
	}

	res, err := jsonResult(result)
	if err != nil {
		return nil, nil, err
	}
	return res, result, nil
}

func (t *tools) extract(_ context.Context, _ *sdkmcp.CallToolRequest, params ExtractParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.JobDescriptionText) == "" {
		return nil, nil, fmt.Errorf("%w: jobDescriptionText is empty", ranking.ErrInvalidRequest)
	}

	requirements := t.ranker.Extract(params.JobDescriptionText)
	out := ExtractResult{
		Requirements:     requirements,
		SuggestedFilters: extract.SuggestFilters(requirements, params.JobDescriptionText),
	}

	res, err := jsonResult(out)
	if err != nil {
		return nil, nil, err
	}
	return res, out, nil
}

// jsonResult renders v as the text content of a tool result.
func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(data)},
		},
	}, nil
}
