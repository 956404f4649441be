package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/output"
	"github.com/spigell/candidate-ranker/internal/storage"
	"github.com/spigell/candidate-ranker/internal/storage/dataset"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Manage the stored candidate pool",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stored candidate pool",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		logger, config := setup("stderr")
		format, _ := cmd.Flags().GetString("output")

		store, err := storage.Open(ctx, config.Storage, logger)
		if err != nil {
			logger.Fatal("opening candidate store", zap.Error(err))
		}
		defer store.Close()

		candidates, err := store.List(ctx)
		if err != nil {
			logger.Fatal("listing candidates", zap.Error(err))
		}

		if err := output.Output(os.Stdout, format, candidates); err != nil {
			logger.Fatal("printing candidates", zap.Error(err))
		}
	},
}

var candidatesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Validate a JSON candidate file and save it to the configured store",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		logger, config := setup("stderr")

		data, err := os.ReadFile(args[0])
		if err != nil {
			logger.Fatal("reading candidate file", zap.Error(err))
		}

		store, err := storage.Open(ctx, config.Storage, logger)
		if err != nil {
			logger.Fatal("opening candidate store", zap.Error(err))
		}
		defer store.Close()

		saved, err := storage.Import(ctx, store, data)
		if err != nil {
			var verr *dataset.ValidationError
			if errors.As(err, &verr) {
				for _, fe := range verr.Errors {
					logger.Error("invalid candidate", zap.String("field", fe.Field), zap.String("message", fe.Message))
				}
			}
			logger.Fatal("importing candidates", zap.Error(err))
		}

		logger.Info("candidates imported",
			zap.Int("count", len(saved)),
			zap.String("driver", config.Storage.Driver),
		)
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
	candidatesCmd.AddCommand(candidatesListCmd, candidatesImportCmd)

	candidatesListCmd.Flags().StringP("output", "o", output.FormatTable, "output format: table or json")
}
