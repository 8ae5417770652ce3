package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/peekknuf/skatergrade/internal/criteria"
	"github.com/peekknuf/skatergrade/internal/stats"
	"github.com/spf13/cobra"
)

var outputFile string

type describeRow struct {
	Name    string
	Summary stats.Summary
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarise the population behind every criterion",
	Long: `Print count, mean, standard deviation and quartiles of each criterion
across the graded population, plus the defense components and game score.

Examples:
  skatergrade describe
  skatergrade describe --min-icetime 0 --output population.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := loadEvaluator()
		if err != nil {
			return err
		}
		pop := ev.Population()
		defense := pop.Defense()

		var rows []describeRow
		for _, c := range criteria.All {
			values := pop.DefenseComposites()
			if c != criteria.Defense {
				values = pop.Values(c)
			}
			rows = append(rows, describeRow{Name: c.Label(), Summary: stats.Describe(values)})
		}
		rows = append(rows,
			describeRow{"  xG %", stats.Describe(defense.XGPct)},
			describeRow{"  Takeaways/60", stats.Describe(defense.TakeawaysP60)},
			describeRow{"  Blocks/60", stats.Describe(defense.BlocksP60)},
			describeRow{"Game Score", stats.Describe(pop.GameScores())},
		)

		output := formatDescribe(ev.Dataset().Source(), rows)
		if outputFile == "" {
			fmt.Print(output)
			return nil
		}
		if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		logger.WithField("path", outputFile).Info("results saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVar(&outputFile, "output", "",
		"Output file to save results (default: stdout)")
}

func formatDescribe(source string, rows []describeRow) string {
	var output strings.Builder

	output.WriteString("=== POPULATION SUMMARY ===\n")
	output.WriteString(fmt.Sprintf("Source: %s\n", source))
	if len(rows) > 0 {
		output.WriteString(fmt.Sprintf("Skaters: %d\n", rows[0].Summary.Count))
	}
	output.WriteString("Defense is the mean z-score of xG %, takeaways/60 and blocks/60.\n\n")

	output.WriteString(fmt.Sprintf("%-20s %8s %10s %10s %10s %10s %10s %10s %10s\n",
		"Criterion", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"))
	output.WriteString(strings.Repeat("-", 104) + "\n")
	for _, row := range rows {
		s := row.Summary
		output.WriteString(fmt.Sprintf("%-20s %8d %10.2f %10.2f %10.2f %10.2f %10.2f %10.2f %10.2f\n",
			row.Name, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max))
	}

	return output.String()
}
