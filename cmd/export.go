package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/peekknuf/skatergrade/internal/export"
	"github.com/redis/go-redis/v9"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	exportOut       string
	exportSQLite    string
	exportRedisAddr string
	exportRedisTTL  time.Duration
	exportNoPretty  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Grade every skater and write the static site data",
	Long: `Grade every skater of the season and write index.json, players-full.json
and manifest.json. Optionally mirror the result into SQLite and Redis.

Examples:
  skatergrade export --out static_data
  skatergrade export --sqlite players.db
  skatergrade export --redis-addr localhost:6379 --redis-ttl 24h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyExportFlags(cmd)

		ev, err := loadEvaluator()
		if err != nil {
			return err
		}

		startTime := time.Now()
		total := ev.Dataset().Len()
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Grading players..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		bundle := export.Build(ev, func(done, total int) {
			bar.Set(done)
		})
		bar.Finish()

		jsonSink := export.NewJSONWriter(cfg.Export.OutDir, cfg.Export.Pretty)
		sinks := []export.Sink{jsonSink}

		var sqliteSink *export.SQLiteWriter
		if cfg.Export.SQLitePath != "" {
			sqliteSink, err = export.OpenSQLite(cfg.Export.SQLitePath)
			if err != nil {
				return err
			}
			defer sqliteSink.Close()
			sinks = append(sinks, sqliteSink)
		}

		if cfg.Redis.Addr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			err := client.Ping(ctx).Err()
			cancel()
			if err != nil {
				return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
			}
			sinks = append(sinks, export.NewRedisWriter(client, cfg.Redis.TTL))
		}

		for _, sink := range sinks {
			if err := sink.Write(cmd.Context(), bundle); err != nil {
				return fmt.Errorf("%s: %w", sink.Name(), err)
			}
			logger.WithFields(logrus.Fields{
				"sink":    sink.Name(),
				"players": len(bundle.Players),
			}).Debug("export written")
		}

		verified, err := export.VerifyDir(cfg.Export.OutDir)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", cfg.Export.OutDir, err)
		}

		fmt.Printf("\nExported %s players from %s in %v\n",
			humanize.Comma(int64(len(bundle.Players))), bundle.Manifest.Source, time.Since(startTime).Round(time.Millisecond))
		fmt.Printf("Build: %s\n", bundle.Manifest.BuildID)
		for _, f := range jsonSink.Written {
			fmt.Printf("  %-50s %10s\n", f.Path, humanize.Bytes(uint64(f.Size)))
		}
		fmt.Printf("Verified %s index entries against player records\n", humanize.Comma(int64(verified)))
		if sqliteSink != nil {
			players, categories, err := sqliteSink.Counts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("  %s: %s players, %s category rows\n", sqliteSink.Name(),
				humanize.Comma(int64(players)), humanize.Comma(int64(categories)))
		}
		if cfg.Redis.Addr != "" {
			fmt.Printf("  %s\n", sinks[len(sinks)-1].Name())
		}
		return nil
	},
}

// applyExportFlags lets explicit flags override the environment.
func applyExportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Export.OutDir = exportOut
	}
	if flags.Changed("sqlite") {
		cfg.Export.SQLitePath = exportSQLite
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = exportRedisAddr
	}
	if flags.Changed("redis-ttl") {
		cfg.Redis.TTL = exportRedisTTL
	}
	if exportNoPretty {
		cfg.Export.Pretty = false
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "static_data",
		"Output directory for the JSON files")
	exportCmd.Flags().StringVar(&exportSQLite, "sqlite", "",
		"Also write a SQLite database to this path")
	exportCmd.Flags().StringVar(&exportRedisAddr, "redis-addr", "",
		"Also publish players to Redis at host:port")
	exportCmd.Flags().DurationVar(&exportRedisTTL, "redis-ttl", 0,
		"Expiry of the Redis keys (0 keeps them)")
	exportCmd.Flags().BoolVar(&exportNoPretty, "no-pretty", false,
		"Skip the indented players-full-pretty.json copy")
}
