package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/extract"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/server"
	"github.com/spigell/candidate-ranker/internal/storage"
	"github.com/spigell/candidate-ranker/internal/storage/postgres"
)

const (
	app       = "candidate-ranker"
	envPrefix = "CANDIDATE_RANKER"
)

type Config struct {
	Ranking RankingConfig  `mapstructure:"ranking"`
	Storage storage.Config `mapstructure:"storage"`
	Server  server.Config  `mapstructure:"server"`
}

type RankingConfig struct {
	Normalization   ranking.Normalization `mapstructure:"normalization"`
	EnforceSkills   bool                  `mapstructure:"enforce-skills"`
	DisabledFilters []string              `mapstructure:"disabled-filters"`
	VocabularyFile  string                `mapstructure:"vocabulary-file"`
	Weights         scoring.Weights       `mapstructure:"weights"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "candidate-ranker ranks candidates against a free-text job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is candidate-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional unless it was asked for explicitly.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

// setDefaults registers every key so that environment variables can override
// keys absent from the config file.
func setDefaults(v *viper.Viper) {
	weights := scoring.DefaultWeights()

	v.SetDefault("ranking.normalization", string(ranking.NormalizationNone))
	v.SetDefault("ranking.enforce-skills", false)
	v.SetDefault("ranking.disabled-filters", []string{})
	v.SetDefault("ranking.vocabulary-file", "")
	v.SetDefault("ranking.weights.required-skills", weights.RequiredSkills)
	v.SetDefault("ranking.weights.preferred-skills", weights.PreferredSkills)
	v.SetDefault("ranking.weights.experience", weights.Experience)
	v.SetDefault("ranking.weights.location", weights.Location)
	v.SetDefault("ranking.weights.salary", weights.Salary)

	v.SetDefault("storage.driver", storage.DriverFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.dsn-file", "")
	pg := postgres.DefaultOptions()
	v.SetDefault("storage.postgres.max-open-conns", pg.MaxOpenConns)
	v.SetDefault("storage.postgres.max-idle-conns", pg.MaxIdleConns)
	v.SetDefault("storage.postgres.conn-max-lifetime", pg.ConnMaxLifetime.String())
	v.SetDefault("storage.postgres.ping-timeout", pg.PingTimeout.String())

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.shutdown-timeout", "10s")
	v.SetDefault("server.cors-allow-origin", "")
	v.SetDefault("server.max-body-bytes", 10<<20)
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config Config
	err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &config, nil
}

// setup builds the logger and config shared by every command. Failures are fatal.
// Commands whose stdout carries results or protocol traffic log to stderr.
func setup(output string) (*zap.Logger, *Config) {
	logger, err := logger.NewWithOutput(viper.GetBool("json"), viper.GetBool("debug"), output)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

func newRanker(config *Config, logger *zap.Logger) (*ranking.Ranker, error) {
	var vocab *extract.Vocabulary
	if path := strings.TrimSpace(config.Ranking.VocabularyFile); path != "" {
		loaded, err := extract.LoadVocabulary(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("using custom vocabulary", zap.String("path", path))
		vocab = loaded
	}

	return ranking.New(ranking.Options{
		Vocabulary:      vocab,
		Weights:         config.Ranking.Weights,
		Normalization:   config.Ranking.Normalization,
		EnforceSkills:   config.Ranking.EnforceSkills,
		DisabledFilters: config.Ranking.DisabledFilters,
		Logger:          logger,
	})
}
