// Package cmd implements the printer-sentry command line interface.
package cmd

import (
	"errors"
	"github.com/clambin/go-common/charmer"
	"github.com/ovasylenko/printer-sentry/internal/cmd/monitor"
	"github.com/ovasylenko/printer-sentry/internal/cmd/once"
	"github.com/ovasylenko/printer-sentry/internal/cmd/testpause"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log/slog"
	"os"
	"time"
)

var (
	configFilename string
	RootCmd        = cobra.Command{
		Use:   "printer-sentry",
		Short: "Protects a running 3D print from planned power outages",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if viper.GetBool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&configFilename, "config", "", "Configuration file")
	RootCmd.PersistentFlags().Bool("debug", false, "Log debug messages")
	_ = viper.BindPFlag("debug", RootCmd.PersistentFlags().Lookup("debug"))

	RootCmd.AddCommand(&monitor.Cmd, &once.Cmd, &testpause.Cmd)
}

var args = charmer.Arguments{
	"debug":                 charmer.Argument{Default: false, Help: "Log debug messages"},
	"guard.interval":        charmer.Argument{Default: time.Minute, Help: "Evaluation interval"},
	"guard.wait-before":     charmer.Argument{Default: 5 * time.Minute, Help: "Pause this long before an outage window starts"},
	"guard.wait-after":      charmer.Argument{Default: 10 * time.Minute, Help: "Resume this long after the pause"},
	"guard.group":           charmer.Argument{Default: "1.1", Help: "Outage group of the printer's location"},
	"outages.url":           charmer.Argument{Default: "", Help: "Override the planned-outages feed URL"},
	"outages.region":        charmer.Argument{Default: 25, Help: "Region ID in the planned-outages feed"},
	"outages.dso":           charmer.Argument{Default: 902, Help: "Distribution operator ID in the planned-outages feed"},
	"printer.url":           charmer.Argument{Default: "http://127.0.0.1:7125", Help: "Moonraker URL"},
	"printer.material":      charmer.Argument{Default: "pla", Help: "Material profile for the resume setpoints"},
	"printer.extruder-temp": charmer.Argument{Default: 0.0, Help: "Extruder setpoint on resume (°C, overrides the profile)"},
	"printer.bed-temp":      charmer.Argument{Default: 0.0, Help: "Bed setpoint on resume (°C, overrides the profile)"},
	"printer.park-temp":     charmer.Argument{Default: 40.0, Help: "Heater setpoint while parked (°C)"},
	"printer.settle-delay":  charmer.Argument{Default: 2 * time.Second, Help: "Wait between heating up and resuming"},
	"exporter.addr":         charmer.Argument{Default: ":9090", Help: "Address of the Prometheus exporter"},
	"health.addr":           charmer.Argument{Default: ":8080", Help: "Address of the /health endpoint"},
	"slack.token":           charmer.Argument{Default: "", Help: "Slack token (empty: log-only notifications)"},
	"slack.channel":         charmer.Argument{Default: "", Help: "Slack channel for notifications"},
}

func initConfig() {
	if configFilename != "" {
		viper.SetConfigFile(configFilename)
	} else {
		viper.AddConfigPath("/etc/printer-sentry/")
		viper.AddConfigPath("$HOME/.printer-sentry")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	if err := charmer.SetDefaults(viper.GetViper(), args); err != nil {
		panic("failed to set viper defaults: " + err.Error())
	}

	viper.SetEnvPrefix("SENTRY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to read config file", "err", err)
			os.Exit(1)
		}
	}
}
