// Package outages models the planned power outage schedule published by the
// distribution operator, and provides a client to fetch it.
package outages

import (
	"fmt"
	"time"
)

// Interval is a single planned outage window, expressed in fractional hours
// of the day (e.g. 16.5 is 16:30). Start is always before End: the feed
// publishes slots as minute offsets within one day, so a window never crosses
// midnight (an overnight outage arrives as two slots, one per day).
type Interval struct {
	Start float64
	End   float64
}

// Label renders the interval as "HH:MM-HH:MM".
func (i Interval) Label() string {
	return formatHour(i.Start) + "-" + formatHour(i.End)
}

func formatHour(hour float64) string {
	h := int(hour)
	m := int((hour - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Period selects one of the two days covered by the feed.
type Period string

const (
	PeriodToday    Period = "today"
	PeriodTomorrow Period = "tomorrow"
)

// CurrentPeriod returns the period whose windows apply at t. During the last
// hour of the day it already returns PeriodTomorrow, so a window right after
// midnight is picked up before the daily schedule refresh has run.
func CurrentPeriod(t time.Time) Period {
	if t.Hour() == 23 {
		return PeriodTomorrow
	}
	return PeriodToday
}

// Schedule holds the confirmed outage windows for today and tomorrow, in the
// chronological order supplied by the feed. It is replaced wholesale on every
// successful fetch.
type Schedule map[Period][]Interval

// Windows returns the intervals for the given period.
func (s Schedule) Windows(p Period) []Interval {
	return s[p]
}

// Labels returns the labels of all windows in the schedule, today first.
func (s Schedule) Labels() []string {
	var labels []string
	for _, p := range []Period{PeriodToday, PeriodTomorrow} {
		for _, w := range s[p] {
			labels = append(labels, string(p)+" "+w.Label())
		}
	}
	return labels
}
