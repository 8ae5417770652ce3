package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/peekknuf/skatergrade/internal/connectors"
	"github.com/peekknuf/skatergrade/internal/dataset"
	"github.com/peekknuf/skatergrade/internal/profiler"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	seasonsDir       string
	seasonsRecursive bool
	seasonsWorkers   int
	verbose          bool
)

type seasonResult struct {
	File     connectors.FileMeta
	Quality  profiler.QualityMetrics
	Missing  []string
	Graded   int
	BelowTOI int
	Err      error
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List season tables and check their quality",
	Long: `Scan a directory for season tables, profile each one and report how
many skaters would be graded with the current ice time filter.

Examples:
  skatergrade seasons --dir data
  skatergrade seasons --dir data --recursive --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := seasonsDir
		if dir == "" {
			dir = cfg.Data.Path
			if info, err := os.Stat(dir); err == nil && !info.IsDir() {
				dir = filepath.Dir(dir)
			}
		}

		options := connectors.DiscoveryOptions{
			Recursive: seasonsRecursive,
		}
		files, err := connectors.DiscoverFiles(dir, connectors.DefaultExt, options)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Profiling seasons..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(20),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		results := profileSeasons(files, seasonsWorkers, bar)
		bar.Finish()

		printSeasons(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seasonsCmd)
	seasonsCmd.Flags().StringVar(&seasonsDir, "dir", "",
		"Directory to scan (default: the --data directory)")
	seasonsCmd.Flags().BoolVarP(&seasonsRecursive, "recursive", "r", false,
		"Search directories recursively")
	seasonsCmd.Flags().IntVar(&seasonsWorkers, "workers", 0,
		"Number of parallel workers (default: CPU cores)")
	seasonsCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Display per-column quality metrics")
}

// profileSeasons checks files concurrently and returns results in input order.
func profileSeasons(files []connectors.FileMeta, workers int, bar *progressbar.ProgressBar) []seasonResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	semaphore := make(chan struct{}, workers)
	results := make([]seasonResult, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[i] = profileSeason(f)
			bar.Add(1)
		}(i, file)
	}
	wg.Wait()

	return results
}

func profileSeason(f connectors.FileMeta) seasonResult {
	result := seasonResult{File: f}

	p := profiler.NewCSVProfiler(f.Path)
	if err := p.Profile(); err != nil {
		result.Err = err
		return result
	}
	result.Quality = p.CalculateQuality()
	result.Missing = p.MissingColumns

	if verbose {
		var b strings.Builder
		for _, col := range p.Columns() {
			fmt.Fprintf(&b, "    %-24s nulls %-6d invalid %-6d", col.Name, col.NullCount, col.InvalidCount)
			if col.Numeric {
				fmt.Fprintf(&b, " min %-10.2f max %.2f\n", col.Min, col.Max)
			} else {
				fmt.Fprintf(&b, " distinct %d\n", col.DistinctCount)
			}
		}
		logger.WithField("path", f.Path).Infof("column quality\n%s", b.String())
	}

	if len(result.Missing) > 0 {
		return result
	}

	opts, err := loadOptions()
	if err != nil {
		result.Err = err
		return result
	}
	ds, err := dataset.Load(f.Path, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Graded = ds.Len()
	result.BelowTOI = ds.Stats().SkippedIceTime
	return result
}

func printSeasons(results []seasonResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].File.Season > results[j].File.Season
	})

	fmt.Printf("%-40s %7s %10s %8s %8s %8s %9s %8s  %s\n",
		"File", "Season", "Size", "Rows", "Skaters", "Graded", "Below TOI", "Nulls", "Status")
	fmt.Println(strings.Repeat("-", 120))

	for _, r := range results {
		name := filepath.Base(r.File.Path)
		if len(name) > 37 {
			name = name[:34] + "..."
		}
		season := "-"
		if r.File.Season > 0 {
			season = strconv.Itoa(r.File.Season)
		}

		status := "ok"
		switch {
		case r.Err != nil:
			status = r.Err.Error()
		case len(r.Missing) > 0:
			status = "missing " + strings.Join(r.Missing, ", ")
		case !r.Quality.Clean():
			status = fmt.Sprintf("%.1f%% invalid cells", r.Quality.InvalidPercentage*100)
		}

		fmt.Printf("%-40s %7s %10s %8s %8s %8s %9s %7.1f%%  %s\n",
			name, season, humanize.Bytes(uint64(r.File.Size)),
			humanize.Comma(int64(r.Quality.TotalRows)), humanize.Comma(int64(r.Quality.SkaterRows)),
			humanize.Comma(int64(r.Graded)), humanize.Comma(int64(r.BelowTOI)),
			r.Quality.NullPercentage*100, status)
	}
}
