package commands

import (
	"context"
	"fmt"
	"leagueexport/lib/fantasy"
	"leagueexport/lib/telemetry"
	"log/slog"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mazen160/go-random"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configName string
	// set before any subcommand runs
	env *app
	tel telemetry.Telemetry
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and dump http traffic to .dev/resty.")
	rootCmd.PersistentFlags().StringVar(&configName, "config", "leagueexport.json5", "The configuration file, searched for upwards from the working directory.")
}

var rootCmd = &cobra.Command{
	Use:           "leagueexport",
	Short:         "leagueexport generates weekly fantasy football league reports.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		runId, err := random.String(8)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.Default().With("run", runId))

		tel, err = telemetry.SetupFromEnv(cmd.Context(), "leagueexport")
		if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
		}

		env, err = loadApp(configName, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.RecordPerfStats(cmd.Context())
		if env != nil {
			env.close()
		}
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func parsePeriod(args []string) (fantasy.Period, error) {
	year, err := strconv.Atoi(args[0])
	if err != nil || year < 1 {
		return fantasy.Period{}, fmt.Errorf("invalid year %q", args[0])
	}
	week, err := strconv.Atoi(args[1])
	if err != nil || week < 1 {
		return fantasy.Period{}, fmt.Errorf("invalid week %q", args[1])
	}
	return fantasy.Period{Year: year, Week: week}, nil
}
