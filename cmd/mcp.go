package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/mcp"
	"github.com/spigell/candidate-ranker/internal/storage"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the ranking tools over MCP on stdin/stdout",
	Run: func(_ *cobra.Command, _ []string) {
		// stdout belongs to the protocol.
		logger, config := setup("stderr")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ranker, err := newRanker(config, logger)
		if err != nil {
			logger.Fatal("creating a ranker", zap.Error(err))
		}

		store, err := storage.Open(ctx, config.Storage, logger)
		if err != nil {
			logger.Fatal("opening candidate store", zap.Error(err))
		}
		defer store.Close()

		server := mcp.NewServer(version, mcp.Deps{
			Ranker: ranker,
			Store:  store,
			Logger: logger,
		})

		if err := mcp.Run(ctx, server, logger); err != nil {
			logger.Error("mcp server stopped with error", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
