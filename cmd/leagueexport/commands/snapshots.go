package commands

import (
	"leagueexport/lib/fantasy"
	"leagueexport/lib/serviceutil"
	"leagueexport/services/rankings"
	"leagueexport/services/report"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspects the stored standings used for power ranking changes.",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the periods with stored standings.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := env.snapshots()
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		periods, err := store.ListPeriods(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list snapshots", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Year", "Week", "Teams", "Stored"})
		for _, p := range periods {
			stored := ""
			if !p.CreatedAt.IsZero() {
				stored = p.CreatedAt.Format(time.ANSIC)
			}
			t.AppendRow(table.Row{p.Period.Year, p.Period.Week, p.Teams, stored})
		}
		t.Render()
	},
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <year> <week>",
	Short: "Prints the stored standings of a week with the change from the week before.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		period, err := parsePeriod(args)
		if err != nil {
			serviceutil.Fatal("invalid arguments", err)
		}
		store, err := env.snapshots()
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}

		standings, err := store.Pull(ctx, period)
		if err != nil {
			serviceutil.Fatal("failed to read snapshot", err)
		}
		var previous []fantasy.TeamStanding
		if prev, ok := period.Previous(); ok {
			// a missing previous week only means every team is new
			previous, _ = store.Pull(ctx, prev)
		}

		t := newTable()
		header := table.Row{}
		for _, column := range report.PowerRankingsHeader {
			header = append(header, column)
		}
		t.AppendHeader(header)
		for _, row := range report.PowerRankingRows(standings, rankings.ComputeDelta(standings, previous)) {
			r := table.Row{}
			for _, field := range row {
				r = append(r, field)
			}
			t.AppendRow(r)
		}
		t.Render()
	},
}
