package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/server"
	"github.com/spigell/candidate-ranker/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranking API over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup("stdout")
		defer logger.Sync() //nolint:errcheck

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			config.Server.Addr = addr
		}

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

		logger.Info("starting the candidate-ranker", zap.String("version", version))

		router := server.NewRouter(config.Server, server.Deps{
			Ranker: ranker,
			Store:  store,
			Logger: logger,
		})

		if err := server.Serve(ctx, config.Server, router, logger); err != nil {
			logger.Error("server stopped with error", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}
