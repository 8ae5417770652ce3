package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peekknuf/skatergrade/internal/report"
	"github.com/spf13/cobra"
)

var askDetails bool

var askCmd = &cobra.Command{
	Use:   "ask <player name>",
	Short: "Is this player good?",
	Long: `Find a skater by (partial) name and print the answer, the overall
percentile and a per-criterion breakdown.

Examples:
  skatergrade ask mcdavid
  skatergrade ask "Cale Makar" --details
  skatergrade ask tkachuk --data data/ --min-icetime 0`,
	Args: cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if err := initConfig(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeNames(args, toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := loadEvaluator()
		if err != nil {
			return err
		}

		r, err := ev.Evaluate(strings.Join(args, " "))
		var notFound *report.NotFoundError
		switch {
		case errors.Is(err, report.ErrEmptyQuery):
			return errors.New("Please enter a player name")
		case errors.As(err, &notFound):
			return notFound
		case err != nil:
			return err
		}

		fmt.Printf("%s (%s, %s) - %d GP, %.0f min\n\n", r.Name, r.Team, r.Position, r.GamesPlayed, r.IceTimeMinutes)
		fmt.Print(report.RenderAnswer(r))
		fmt.Printf("Overall grade: %s\n\n", r.OverallGrade)
		fmt.Println(report.RenderBreakdown(r))
		if askDetails {
			fmt.Println()
			fmt.Print(report.RenderDetails(r))
		}
		return nil
	},
}

// completeNames suggests skater names matching the words typed so far. An
// unreadable season yields no suggestions.
func completeNames(args []string, toComplete string) []string {
	ds, err := loadDataset()
	if err != nil {
		logger.WithError(err).Debug("name completion unavailable")
		return nil
	}
	query := strings.TrimSpace(strings.Join(append(args, toComplete), " "))
	return ds.Suggest(query, maxSuggestions)
}

const maxSuggestions = 50

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVarP(&askDetails, "details", "v", false,
		"Show the raw value behind each criterion")
}
