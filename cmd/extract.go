package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/extract"
	"github.com/spigell/candidate-ranker/internal/output"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Show the requirements and suggested filters extracted from a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup("stderr")
		format, _ := cmd.Flags().GetString("output")

		text, err := jobText(cmd)
		if err != nil {
			logger.Fatal("reading the job description", zap.Error(err))
		}

		ranker, err := newRanker(config, logger)
		if err != nil {
			logger.Fatal("creating a ranker", zap.Error(err))
		}

		requirements := ranker.Extract(text)
		filters := extract.SuggestFilters(requirements, text)

		if format == output.FormatJSON {
			err = output.JSONTo(os.Stdout, map[string]any{
				"requirements":     requirements,
				"suggestedFilters": filters,
			})
		} else {
			err = output.TableTo(os.Stdout, requirements)
			if err == nil {
				err = output.TableTo(os.Stdout, filters)
			}
		}
		if err != nil {
			logger.Fatal("printing requirements", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().String("job", "", "job description text")
	extractCmd.Flags().String("job-file", "", "file with the job description text")
	extractCmd.Flags().StringP("output", "o", output.FormatTable, "output format: table or json")

	extractCmd.MarkFlagsMutuallyExclusive("job", "job-file")
}
