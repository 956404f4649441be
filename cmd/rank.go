package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/extract"
	"github.com/spigell/candidate-ranker/internal/filtering"
	"github.com/spigell/candidate-ranker/internal/model"
	"github.com/spigell/candidate-ranker/internal/output"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/storage"
)

const PromptExit = "exit"

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the candidate pool against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "job description text")
	rankCmd.Flags().String("job-file", "", "file with the job description text")
	rankCmd.Flags().String("request", "", "JSON file with a complete ranking request (job, filters and candidates)")
	rankCmd.Flags().StringSlice("skill", nil, "recruiter skill filter (repeatable)")
	rankCmd.Flags().StringSlice("location", nil, "accepted candidate location (repeatable)")
	rankCmd.Flags().Int("min-experience", 0, "minimum years of experience")
	rankCmd.Flags().Float64("salary-max", 0, "maximum salary budget in dollars")
	rankCmd.Flags().Bool("suggest-filters", false, "pre-fill filters from the job description; explicit filter flags win")
	rankCmd.Flags().StringP("output", "o", output.FormatTable, "output format: table or json")
	rankCmd.Flags().BoolP("interactive", "i", false, "browse ranked candidates after ranking")

	rankCmd.MarkFlagsMutuallyExclusive("job", "job-file", "request")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup("stderr")
	format, _ := cmd.Flags().GetString("output")

	ranker, err := newRanker(config, logger)
	if err != nil {
		logger.Fatal("creating a ranker", zap.Error(err))
	}

	req, err := buildRequest(ctx, cmd, ranker, config, logger)
	if err != nil {
		logger.Fatal("building the ranking request", zap.Error(err))
	}

	result, err := ranker.RankWithLogger(ctx, logger, req)
	if err != nil {
		var verr *ranking.ValidationError
		if errors.As(err, &verr) {
			logger.Fatal("ranking request is incomplete", zap.Strings("fields", verr.Fields))
		}
		logger.Fatal("ranking candidates", zap.Error(err))
	}

	if format != output.FormatJSON {
		if err := output.Output(os.Stdout, format, filtering.Describe(ranker.Filters(*req.RecruiterFilters))); err != nil {
			logger.Fatal("printing filters", zap.Error(err))
		}
	}

	if err := output.Output(os.Stdout, format, result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := browse(result); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// buildRequest assembles the request from a request file or from flags and the configured store.
func buildRequest(ctx context.Context, cmd *cobra.Command, ranker *ranking.Ranker, config *Config, logger *zap.Logger) (*model.RankRequest, error) {
	flags := cmd.Flags()

	if path, _ := flags.GetString("request"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading request file: %w", err)
		}
		var req model.RankRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("decoding request file %q: %w", path, err)
		}
		return &req, nil
	}

	text, err := jobText(cmd)
	if err != nil {
		return nil, err
	}

	filters := model.RecruiterFilters{}
	if suggest, _ := flags.GetBool("suggest-filters"); suggest {
		filters = extract.SuggestFilters(ranker.Extract(text), text)
		logger.Debug("suggested filters",
			zap.Int("minimum_experience", filters.MinimumExperience),
			zap.Strings("locations", filters.Locations),
		)
	}

	if flags.Changed("skill") {
		filters.Skills, _ = flags.GetStringSlice("skill")
	}
	if flags.Changed("location") {
		filters.Locations, _ = flags.GetStringSlice("location")
	}
	if flags.Changed("min-experience") {
		filters.MinimumExperience, _ = flags.GetInt("min-experience")
	}
	if flags.Changed("salary-max") {
		salary, _ := flags.GetFloat64("salary-max")
		filters.SalaryMax = model.Float(salary)
	}

	store, err := storage.Open(ctx, config.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("opening candidate store: %w", err)
	}
	defer store.Close()

	candidates, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded candidate pool", zap.Int("candidates", len(candidates)))

	return &model.RankRequest{
		JobDescriptionText: text,
		RecruiterFilters:   &filters,
		Candidates:         candidates,
	}, nil
}

// jobText reads the job description from --job or --job-file.
func jobText(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("job"); strings.TrimSpace(text) != "" {
		return text, nil
	}

	path, _ := cmd.Flags().GetString("job-file")
	if path == "" {
		return "", errors.New("a job description is required: use --job, --job-file or --request")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading job file: %w", err)
	}
	return string(data), nil
}

// browse lets the user pick ranked candidates and prints their score breakdown.
func browse(result *model.RankingResult) error {
	if len(result.RankedCandidates) == 0 {
		return nil
	}

	items := make([]string, 0, len(result.RankedCandidates)+1)
	for i, c := range result.RankedCandidates {
		items = append(items, fmt.Sprintf("%d. %s (%.0f%%)", i+1, c.Name, c.FinalScore*100))
	}

	for {
		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptExit),
			Size:  10,
		}

		i, _, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if i == len(result.RankedCandidates) {
			return nil
		}

		if err := output.JSONTo(os.Stdout, result.RankedCandidates[i]); err != nil {
			return err
		}
	}
}
