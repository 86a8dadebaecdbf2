package commands

import (
	"fmt"
	"leagueexport/lib/serviceutil"
	"leagueexport/services/report"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var generateFlags struct {
	playerList     bool
	topScorers     bool
	powerRankings  bool
	transactions   bool
	strict         bool
	refreshPlayers bool
}

func init() {
	flags := generateCmd.Flags()
	flags.BoolVar(&generateFlags.playerList, "player-list", false, "Generate the league player list.")
	flags.BoolVar(&generateFlags.topScorers, "top-scorers", false, "Generate the week's top scoring players.")
	flags.BoolVar(&generateFlags.powerRankings, "power-rankings", false, "Generate the power rankings.")
	flags.BoolVar(&generateFlags.transactions, "transactions", false, "Generate the week's transactions.")
	flags.BoolVar(&generateFlags.strict, "strict", false, "Fail the top scorers report when a leaderboard player cannot be matched.")
	flags.BoolVar(&generateFlags.refreshPlayers, "refresh-players", false, "Fetch the player list again instead of using the cached one.")
	rootCmd.AddCommand(generateCmd)
}

// selectedKinds returns the reports asked for, all of them when none were.
func selectedKinds() []report.Kind {
	selected := map[report.Kind]bool{
		report.KindPlayerList:    generateFlags.playerList,
		report.KindTopScorers:    generateFlags.topScorers,
		report.KindPowerRankings: generateFlags.powerRankings,
		report.KindTransactions:  generateFlags.transactions,
	}
	var kinds []report.Kind
	for _, kind := range report.Kinds {
		if selected[kind] {
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return report.Kinds
	}
	return kinds
}

var generateCmd = &cobra.Command{
	Use:   "generate <year> <week> [--player-list] [--top-scorers] [--power-rankings] [--transactions]",
	Short: "Generates the weekly reports, all of them unless some are selected.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		period, err := parsePeriod(args)
		if err != nil {
			serviceutil.Fatal("invalid arguments", err)
		}

		p, err := env.pipeline(cmd.Context(), pipelineFlags{
			strict:         generateFlags.strict,
			refreshPlayers: generateFlags.refreshPlayers,
		})
		if err != nil {
			serviceutil.Fatal("failed to setup pipeline", err)
		}

		results, runErr := p.Run(cmd.Context(), period, selectedKinds())

		t := newTable()
		t.AppendHeader(table.Row{"Report", "File", "Rows"})
		for _, r := range results {
			t.AppendRow(table.Row{r.Kind, r.Path, r.Rows})
		}
		t.Render()

		for _, r := range results {
			renderAmbiguous(r.Ambiguous)
			if len(r.Unresolved) == 0 {
				continue
			}
			fmt.Printf("\n%d leaderboard players could not be matched, pin them with `links add`:\n", len(r.Unresolved))
			unresolved := newTable()
			unresolved.AppendHeader(table.Row{"Leaderboard Name", "Points", "Suggestions"})
			for _, u := range r.Unresolved {
				var suggestions string
				for i, s := range u.Suggestions {
					if i > 0 {
						suggestions += "\n"
					}
					suggestions += fmt.Sprintf("%s [%s] %.2f", s.DisplayName, s.PlayerKey, s.Correlation)
				}
				unresolved.AppendRow(table.Row{u.Name, report.FormatPoints(u.Points), suggestions})
			}
			unresolved.Render()
		}

		if runErr != nil {
			serviceutil.Fatal("some reports failed", runErr)
		}
	},
}
