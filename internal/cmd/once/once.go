package once

import (
	"context"
	"fmt"
	"github.com/ovasylenko/printer-sentry/internal/cmd/monitor"
	"github.com/ovasylenko/printer-sentry/internal/guard"
	"github.com/ovasylenko/printer-sentry/internal/notifier"
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"github.com/ovasylenko/printer-sentry/internal/printer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

var Cmd = cobra.Command{
	Use:   "once",
	Short: "Run a single evaluation pass and exit",
	Long:  "Fetches the outage schedule, runs one guard evaluation and exits. Intended for external schedulers (cron, systemd timers).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), viper.GetViper(), os.Stdout, slog.Default())
	},
}

const formatString = "%-10s %s\n"

func run(ctx context.Context, v *viper.Viper, w io.Writer, logger *slog.Logger) error {
	profile, err := monitor.ResumeProfile(v)
	if err != nil {
		return err
	}

	feedClient := outages.Client{
		URL:        monitor.FeedURL(v),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	raw, err := feedClient.GetGroupSchedule(ctx, v.GetString("guard.group"))
	if err != nil {
		return fmt.Errorf("fetch schedule: %w", err)
	}
	schedule := raw.Schedule()

	printerClient := printer.Client{
		BaseURL: v.GetString("printer.url"),
		Logger:  logger.With("component", "printer"),
	}
	g := guard.New(monitor.GuardConfiguration(v, profile), nil, &printerClient, notifier.SLogNotifier{Logger: logger}, nil, logger.With("component", "guard"))
	g.SetSchedule(schedule)
	g.Process(ctx)

	status := g.Status()
	_, _ = fmt.Fprintf(w, formatString, "WINDOWS", strings.Join(schedule.Labels(), ", "))
	_, _ = fmt.Fprintf(w, formatString, "PAUSED", strconv.FormatBool(status.Paused))
	if status.Paused {
		_, _ = fmt.Fprintf(w, formatString, "WINDOW", status.Window)
	}
	return nil
}
