package testpause

import (
	"context"
	"fmt"
	"github.com/ovasylenko/printer-sentry/internal/cmd/monitor"
	"github.com/ovasylenko/printer-sentry/internal/printer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log/slog"
	"time"
)

var Cmd = cobra.Command{
	Use:   "test-pause",
	Short: "Verify pause, park and resume against the live printer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), viper.GetViper(), slog.Default())
	},
}

// waitTime between the pause and the resume, long enough to watch the
// heaters cool down and come back.
const waitTime = time.Minute

func run(ctx context.Context, v *viper.Viper, logger *slog.Logger) error {
	profile, err := monitor.ResumeProfile(v)
	if err != nil {
		return err
	}

	client := printer.Client{
		BaseURL: v.GetString("printer.url"),
		Logger:  logger.With("component", "printer"),
	}

	if err := client.Pause(ctx); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	if err := client.Park(ctx, v.GetFloat64("printer.park-temp")); err != nil {
		return fmt.Errorf("park: %w", err)
	}

	logger.Info("print paused and parked, waiting", "duration", waitTime)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(waitTime):
	}

	if err := client.Resume(ctx, profile.Extruder, profile.Bed, v.GetDuration("printer.settle-delay")); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	logger.Info("pause/resume test completed")
	return nil
}
