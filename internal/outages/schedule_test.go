package outages

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestInterval_Label(t *testing.T) {
	tests := []struct {
		name     string
		interval Interval
		want     string
	}{
		{name: "whole hours", interval: Interval{Start: 16, End: 19}, want: "16:00-19:00"},
		{name: "half hours", interval: Interval{Start: 9.5, End: 12.5}, want: "09:30-12:30"},
		{name: "early morning", interval: Interval{Start: 0, End: 3.5}, want: "00:00-03:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.interval.Label())
		})
	}
}

func TestCurrentPeriod(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want Period
	}{
		{name: "midday", hour: 12, want: PeriodToday},
		{name: "start of day", hour: 0, want: PeriodToday},
		{name: "ten pm", hour: 22, want: PeriodToday},
		{name: "last hour of the day", hour: 23, want: PeriodTomorrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2024, time.November, 15, tt.hour, 30, 0, 0, time.Local)
			assert.Equal(t, tt.want, CurrentPeriod(now))
		})
	}
}

func TestGroupSchedule_Schedule(t *testing.T) {
	raw := GroupSchedule{
		Today: DaySchedule{Slots: []Slot{
			{Type: "Definite", Start: 960, End: 1140},
			{Type: "Possible", Start: 1200, End: 1260},
		}},
		Tomorrow: DaySchedule{Slots: []Slot{
			{Type: "Definite", Start: 30, End: 210},
		}},
	}

	s := raw.Schedule()
	assert.Equal(t, []Interval{{Start: 16, End: 19}}, s.Windows(PeriodToday))
	assert.Equal(t, []Interval{{Start: 0.5, End: 3.5}}, s.Windows(PeriodTomorrow))
	assert.Equal(t, []string{"today 16:00-19:00", "tomorrow 00:30-03:30"}, s.Labels())
}

func TestSchedule_Windows_Empty(t *testing.T) {
	var s Schedule
	assert.Empty(t, s.Windows(PeriodToday))
	assert.Empty(t, s.Labels())
}
