package cmd

import (
	"fmt"
	"os"

	"github.com/peekknuf/skatergrade/internal/config"
	"github.com/peekknuf/skatergrade/internal/connectors"
	"github.com/peekknuf/skatergrade/internal/dataset"
	"github.com/peekknuf/skatergrade/internal/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envFile    string
	dataPath   string
	minIceTime float64
	delimiter  string
	logLevel   string

	cfg    *config.Config
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "skatergrade",
	Short: "Grade NHL skaters against their season",
	Long: `Answers "how good is this player" by ranking every skater of a season
table on scoring, shooting, playmaking, defense, physicality and possession.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// initConfig loads .env and the environment, then applies explicitly set
// persistent flags on top.
func initConfig(cmd *cobra.Command) error {
	// An explicit --config must exist; the default .env is optional.
	if err := config.LoadDotEnv(envFile, cmd.Flags().Changed("config")); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("data") {
		cfg.Data.Path = dataPath
	}
	if cmd.Flags().Changed("min-icetime") {
		cfg.Data.MinIceTimeMinutes = minIceTime
	}
	if cmd.Flags().Changed("delimiter") {
		cfg.Data.Delimiter = delimiter
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger.SetLevel(level)
	return nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&envFile, "config", ".env",
		"Environment file with SKATERGRADE_* settings")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "skaters.csv",
		"Season table, or a directory holding one table per season (latest is used)")
	rootCmd.PersistentFlags().Float64Var(&minIceTime, "min-icetime", dataset.DefaultMinIceTimeMinutes,
		"Minimum ice time in minutes to be graded (0 disables the filter)")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "",
		"Field separator of the season table (default: detected from the header)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
}

// loadOptions converts the configured threshold and separator into loader
// options.
func loadOptions() (dataset.Options, error) {
	opts := dataset.Options{
		FilterIceTime:     cfg.Data.MinIceTimeMinutes > 0,
		MinIceTimeMinutes: cfg.Data.MinIceTimeMinutes,
		Logger:            logger,
	}
	if delim := cfg.Data.Delimiter; delim != "" {
		if delim == `\t` {
			delim = "\t"
		}
		runes := []rune(delim)
		if len(runes) != 1 {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", cfg.Data.Delimiter)
		}
		opts.Delimiter = runes[0]
	}
	return opts, nil
}

// loadDataset reads the configured season, resolving a directory to its
// latest table.
func loadDataset() (*dataset.Dataset, error) {
	path, err := connectors.ResolveDataPath(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to locate season table: %w", err)
	}

	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path, opts)
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("no skaters left in %s after filtering", path)
	}

	stats := ds.Stats()
	logger.WithFields(logrus.Fields{
		"path":            path,
		"skaters":         ds.Len(),
		"skipped_icetime": stats.SkippedIceTime,
	}).Info("season loaded")

	return ds, nil
}

// loadEvaluator reads the configured season and prepares its population.
func loadEvaluator() (*report.Evaluator, error) {
	ds, err := loadDataset()
	if err != nil {
		return nil, err
	}
	return report.NewEvaluator(ds), nil
}
