// Package mcp exposes the ranking pipeline as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/storage"
)

const serverName = "candidate-ranker"

// Deps aggregates the collaborators used by the tools.
type Deps struct {
	Ranker *ranking.Ranker
	// Store backs rank_candidates calls that omit the candidate pool. Optional.
	Store  storage.CandidateStore
	Logger *zap.Logger
}

// NewServer constructs an MCP server with every tool registered.
func NewServer(version string, deps Deps) *sdkmcp.Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	t := &tools{ranker: deps.Ranker, store: deps.Store, logger: deps.Logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rank_candidates",
		Description: "Rank candidates against a job description after applying recruiter filters",
	}, t.rank)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "extract_requirements",
		Description: "Extract required and preferred skills, experience, location and salary from a job description",
	}, t.extract)

	return server
}

// Run serves the tools over stdin/stdout until ctx is cancelled or the client disconnects.
func Run(ctx context.Context, server *sdkmcp.Server, logger *zap.Logger) error {
	logger.Info("mcp server listening on stdio")

	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	logger.Info("mcp server stopped")
	return nil
}
