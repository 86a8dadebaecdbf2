package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"leagueexport/lib/fantasy"
	"leagueexport/lib/serviceutil"
	"leagueexport/lib/timezone"
	"leagueexport/services/linker"
	"leagueexport/services/pipeline"
	"leagueexport/services/report"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	linksCmd.AddCommand(linksListCmd)
	linksCmd.AddCommand(linksAddCmd)
	linksCmd.AddCommand(linksDelCmd)
	linksCmd.AddCommand(linksSuggestCmd)
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manages the leaderboard name to player key overrides.",
}

var linksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every override.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := env.overrides()
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		overrides, err := store.List(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list overrides", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Leaderboard Name", "Player Key", "Created"})
		for _, o := range overrides {
			created := time.Unix(o.CreatedAt, 0).In(timezone.Location).Format(time.ANSIC)
			t.AppendRow(table.Row{o.ExternalName, o.PlayerKey, created})
		}
		t.Render()
	},
}

var linksAddCmd = &cobra.Command{
	Use:   "add <leaderboard name> <player key>",
	Short: "Pins a leaderboard name to a league player key.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := env.overrides()
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		err = store.Add(cmd.Context(), args[0], args[1])
		if err != nil {
			serviceutil.Fatal("failed to add override", err)
		}
		fmt.Printf("%q now joins on %s\n", args[0], args[1])
	},
}

var linksDelCmd = &cobra.Command{
	Use:   "del <leaderboard name>",
	Short: "Removes an override.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := env.overrides()
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		deleted, err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			serviceutil.Fatal("failed to delete override", err)
		}
		if !deleted {
			serviceutil.Fatal(fmt.Sprintf("no override for %q", args[0]), nil)
		}
	},
}

var linksSuggestCmd = &cobra.Command{
	Use:   "suggest <year> <week>",
	Short: "Suggests overrides for the week's leaderboard players that do not match a league player.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		period, err := parsePeriod(args)
		if err != nil {
			serviceutil.Fatal("invalid arguments", err)
		}

		topN := env.config.Join.TopN
		if topN <= 0 {
			topN = pipeline.DefaultTopN
		}
		scores, err := env.fantasyPros(topN)
		if err != nil {
			serviceutil.Fatal("failed to create fantasypros client", err)
		}
		leaders, err := scores.GetTopScorers(ctx, period.Year, period.Week)
		if err != nil {
			serviceutil.Fatal("failed to fetch leaderboard", err)
		}

		players, err := report.ReadPlayerListFile(filepath.Join(env.outputDir(), report.PlayerListFile))
		if errors.Is(err, fs.ErrNotExist) {
			league, clientErr := env.yahoo()
			if clientErr != nil {
				serviceutil.Fatal("failed to create yahoo client", clientErr)
			}
			players, err = league.GetLeaguePlayers(ctx)
		}
		if err != nil {
			serviceutil.Fatal("failed to read player list", err)
		}

		store, err := env.overrides()
		if err != nil {
			serviceutil.Fatal("failed to open database", err)
		}
		overrides, err := store.Map(ctx)
		if err != nil {
			serviceutil.Fatal("failed to read overrides", err)
		}
		policy, err := linker.ParsePolicy(env.config.Join.Policy)
		if err != nil {
			serviceutil.Fatal("invalid join policy", err)
		}

		suggested, ambiguous := suggestOverrides(players, linker.Truncate(leaders, topN), overrides, policy)
		if len(suggested) == 0 && len(ambiguous) == 0 {
			fmt.Println("every leaderboard player matches a single league player")
			return
		}

		if len(suggested) > 0 {
			t := newTable()
			t.AppendHeader(table.Row{"Leaderboard Name", "League Player", "Player Key", "Correlation"})
			for _, s := range suggested {
				t.AppendRow(table.Row{
					s.name,
					s.playerName,
					strings.Join(s.playerKeys, ", "),
					fmt.Sprintf("%.3f", s.correlation),
				})
			}
			t.Render()
		}
		renderAmbiguous(ambiguous)
		printPeriodHint(period)
	},
}

type suggestedOverride struct {
	name        string
	playerName  string
	playerKeys  []string
	correlation float64
}

// suggestOverrides joins leaders the way generate does. Unresolved names get
// the closest league players above the suggestion threshold, names shared by
// several league players come back as they are.
func suggestOverrides(
	players []fantasy.PlayerRecord,
	leaders []fantasy.ExternalRow,
	overrides map[string]string,
	policy linker.Policy,
) ([]suggestedOverride, []*linker.AmbiguousKeyError) {
	joined, _ := linker.Join(players, leaders, linker.JoinOptions{
		Policy:    policy,
		Overrides: overrides,
	})
	if len(joined.Unresolved) == 0 {
		return nil, joined.Ambiguous
	}

	var unresolvedNames []string
	for _, u := range joined.Unresolved {
		unresolvedNames = append(unresolvedNames, u.Name)
	}
	keysByName := make(map[string][]string)
	var playerNames []string
	for _, p := range players {
		if _, seen := keysByName[p.DisplayName]; !seen {
			playerNames = append(playerNames, p.DisplayName)
		}
		keysByName[p.DisplayName] = append(keysByName[p.DisplayName], p.PlayerKey)
	}

	var out []suggestedOverride
	for _, l := range linker.CreateImplicitLinks(unresolvedNames, playerNames) {
		if l.Correlation < linker.DefaultSuggestionThreshold {
			continue
		}
		out = append(out, suggestedOverride{
			name:        l.Left,
			playerName:  l.Right,
			playerKeys:  keysByName[l.Right],
			correlation: l.Correlation,
		})
	}
	return out, joined.Ambiguous
}

func renderAmbiguous(ambiguous []*linker.AmbiguousKeyError) {
	if len(ambiguous) == 0 {
		return
	}
	fmt.Printf("\n%d leaderboard names match several league players, pin each with `links add`:\n", len(ambiguous))
	t := newTable()
	t.AppendHeader(table.Row{"Leaderboard Name", "Points", "Player Keys"})
	for _, a := range ambiguous {
		t.AppendRow(table.Row{a.Name, report.FormatPoints(a.Points), strings.Join(a.PlayerKeys, "\n")})
	}
	t.Render()
}

func printPeriodHint(period fantasy.Period) {
	fmt.Printf("confirm a suggestion with `leagueexport links add <leaderboard name> <player key>` then regenerate %s\n", period)
}
