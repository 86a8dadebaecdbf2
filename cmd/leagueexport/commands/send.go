package commands

import (
	"errors"
	"io/fs"
	"leagueexport/lib/serviceutil"
	"leagueexport/services/report"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <year> <week>",
	Short: "Emails the week's generated reports to the configured recipients.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		period, err := parsePeriod(args)
		if err != nil {
			serviceutil.Fatal("invalid arguments", err)
		}

		var attachments []string
		for _, kind := range report.Kinds {
			if kind == report.KindPlayerList {
				continue
			}
			path := filepath.Join(env.outputDir(), report.FileName(kind, period.Week))
			_, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				slog.Warn("report was not generated, skipping it", "report", kind, "path", path)
				continue
			}
			if err != nil {
				serviceutil.Fatal("failed to read report", err)
			}
			attachments = append(attachments, path)
		}

		err = env.delivery().Send(cmd.Context(), period, attachments)
		if err != nil {
			serviceutil.Fatal("failed to send reports", err)
		}
		slog.Info("reports sent", "period", period.Key(), "recipients", len(env.config.Delivery.Recipients))
	},
}
