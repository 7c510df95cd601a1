package guard

import (
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"time"
)

// Signal is the outcome of evaluating the outage schedule at a point in time.
type Signal struct {
	// Act is true when the print must be paused now.
	Act bool
	// Window labels the outage window the signal refers to.
	Window string
	// Minutes until the pause point (when the pause point is still ahead),
	// or until the end of the window (when inside it).
	Minutes float64
}

// Evaluator determines whether the printer needs to be paused for the next
// outage window.
type Evaluator struct {
	// WaitBefore is how long before a window's start the print is paused.
	WaitBefore time.Duration
	// Threshold is the margin within which a pending pause point counts as
	// "now". It covers the gap between two polls: anything shorter than one
	// poll interval would let a pause point slip through. Defaults to one
	// minute.
	Threshold time.Duration

	// GetCurrentTime allows the current time to be set during testing.
	GetCurrentTime func() time.Time
}

// NextDangerWindow scans the current period's windows, in feed order, and
// reports whether a pause is due. Windows are assumed chronological and
// non-overlapping (a feed guarantee), so scanning stops at the first window
// that is not yet in the past.
func (e Evaluator) NextDangerWindow(schedule outages.Schedule) Signal {
	now := time.Now
	if e.GetCurrentTime != nil {
		now = e.GetCurrentTime
	}
	current := now()
	currentHour := float64(current.Hour()) + float64(current.Minute())/60 + float64(current.Second())/3600

	threshold := e.Threshold
	if threshold <= 0 {
		threshold = time.Minute
	}

	for _, window := range schedule.Windows(outages.CurrentPeriod(current)) {
		pausePoint := window.Start - e.WaitBefore.Minutes()/60

		if currentHour < pausePoint {
			// first window still ahead. nothing sooner exists.
			minutesUntilPause := (pausePoint - currentHour) * 60
			if minutesUntilPause <= threshold.Minutes() {
				return Signal{Act: true, Window: window.Label(), Minutes: minutesUntilPause}
			}
			return Signal{}
		}
		if currentHour < window.End {
			// past the pause point, before the window's end
			return Signal{Act: true, Window: window.Label(), Minutes: (window.End - currentHour) * 60}
		}
		// window already over. check the next one.
	}
	return Signal{}
}
