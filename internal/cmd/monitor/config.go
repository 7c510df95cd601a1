package monitor

import (
	"fmt"
	"github.com/ovasylenko/printer-sentry/internal/guard"
	"github.com/ovasylenko/printer-sentry/internal/profiles"
	"github.com/spf13/viper"
)

// FeedURL returns the planned-outages endpoint: either the configured
// override, or the default feed for the configured region & operator.
func FeedURL(v *viper.Viper) string {
	if u := v.GetString("outages.url"); u != "" {
		return u
	}
	return fmt.Sprintf("https://app.yasno.ua/api/blackout-service/public/shutdowns/regions/%d/dsos/%d/planned-outages",
		v.GetInt("outages.region"),
		v.GetInt("outages.dso"),
	)
}

// GuardConfiguration builds the guard's configuration from viper settings
// and the selected material profile.
func GuardConfiguration(v *viper.Viper, profile profiles.Profile) guard.Configuration {
	return guard.Configuration{
		Interval:     v.GetDuration("guard.interval"),
		WaitBefore:   v.GetDuration("guard.wait-before"),
		WaitAfter:    v.GetDuration("guard.wait-after"),
		ExtruderTemp: profile.Extruder,
		BedTemp:      profile.Bed,
		ParkTemp:     v.GetFloat64("printer.park-temp"),
		SettleDelay:  v.GetDuration("printer.settle-delay"),
	}
}
