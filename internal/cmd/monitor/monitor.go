package monitor

import (
	"errors"
	"fmt"
	"github.com/clambin/go-common/taskmanager"
	"github.com/clambin/go-common/taskmanager/httpserver"
	promserver "github.com/clambin/go-common/taskmanager/prometheus"
	"github.com/ovasylenko/printer-sentry/internal/collector"
	"github.com/ovasylenko/printer-sentry/internal/guard"
	"github.com/ovasylenko/printer-sentry/internal/health"
	"github.com/ovasylenko/printer-sentry/internal/notifier"
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"github.com/ovasylenko/printer-sentry/internal/printer"
	"github.com/ovasylenko/printer-sentry/internal/profiles"
	"github.com/ovasylenko/printer-sentry/internal/provider"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

var Cmd = cobra.Command{
	Use:   "monitor",
	Short: "Run the outage guard daemon",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tm, err := New(viper.GetViper(), prometheus.DefaultRegisterer, slog.Default())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		slog.Info("printer-sentry starting", "version", cmd.Root().Version)
		defer slog.Info("printer-sentry stopped")
		return tm.Run(ctx)
	},
}

// New assembles the daemon's tasks: schedule provider, guard, metrics
// collector, Prometheus server and health endpoint.
func New(v *viper.Viper, registry prometheus.Registerer, logger *slog.Logger) (*taskmanager.Manager, error) {
	profile, err := ResumeProfile(v)
	if err != nil {
		return nil, err
	}
	return taskmanager.New(makeTasks(v, profile, registry, logger)...), nil
}

func makeTasks(v *viper.Viper, profile profiles.Profile, registry prometheus.Registerer, l *slog.Logger) []taskmanager.Task {
	var tasks []taskmanager.Task

	// Schedule Provider
	feedClient := outages.Client{
		URL:        FeedURL(v),
		HTTPClient: &http.Client{Timeout: 10 * time.Second, Transport: instrumentedRoundTripper("outages", registry)},
	}
	p := provider.New(&feedClient, v.GetString("guard.group"), l.With("component", "provider"))
	tasks = append(tasks, p)

	// Guard
	printerClient := printer.Client{
		BaseURL:    v.GetString("printer.url"),
		HTTPClient: &http.Client{Transport: instrumentedRoundTripper("moonraker", registry)},
		Logger:     l.With("component", "printer"),
	}
	metrics := guard.NewMetrics()
	if registry != nil {
		registry.MustRegister(metrics)
	}
	g := guard.New(GuardConfiguration(v, profile), p, &printerClient, notifiers(v, l), metrics, l.With("component", "guard"))
	tasks = append(tasks, g)

	// Collector
	coll := collector.Collector{Poller: p, Guard: g, Logger: l.With("component", "collector")}
	if registry != nil {
		registry.MustRegister(&coll)
	}
	tasks = append(tasks, &coll)

	// Prometheus Server
	tasks = append(tasks, promserver.New(promserver.WithAddr(v.GetString("exporter.addr"))))

	// Health Endpoint
	h := health.New(p, g, l.With("component", "health"))
	tasks = append(tasks, h)
	mux := http.NewServeMux()
	mux.Handle("/health", h)
	tasks = append(tasks, httpserver.New(v.GetString("health.addr"), mux))

	return tasks
}

func notifiers(v *viper.Viper, l *slog.Logger) notifier.Notifiers {
	n := notifier.Notifiers{notifier.SLogNotifier{Logger: l.With("component", "notifier")}}
	if token := v.GetString("slack.token"); token != "" {
		n = append(n, &notifier.SlackNotifier{
			SlackSender: slack.New(token),
			Logger:      l.With("component", "notifier"),
			Channel:     v.GetString("slack.channel"),
		})
	}
	return n
}

// ResumeProfile determines the resume heater setpoints: the configured
// material's profile (from profiles.yaml next to the config file, if
// present), overridden by any explicitly configured temperatures.
func ResumeProfile(v *viper.Viper) (profiles.Profile, error) {
	p, err := maybeLoadProfiles(filepath.Join(filepath.Dir(v.ConfigFileUsed()), "profiles.yaml"))
	if err != nil {
		return profiles.Profile{}, err
	}

	material := v.GetString("printer.material")
	profile, ok := p.Lookup(material)
	if !ok {
		return profiles.Profile{}, fmt.Errorf("unknown material %q", material)
	}
	if t := v.GetFloat64("printer.extruder-temp"); t > 0 {
		profile.Extruder = t
	}
	if t := v.GetFloat64("printer.bed-temp"); t > 0 {
		profile.Bed = t
	}
	return profile, nil
}

func maybeLoadProfiles(path string) (profiles.Profiles, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		return profiles.Defaults(), err
	}
	defer func() { _ = f.Close() }()

	return profiles.Load(f)
}
