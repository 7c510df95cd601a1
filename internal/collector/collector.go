// Package collector exports the outage schedule and pause state as
// Prometheus metrics.
package collector

import (
	"context"
	"github.com/ovasylenko/printer-sentry/internal/guard"
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"github.com/prometheus/client_golang/prometheus"
	"log/slog"
	"sync"
	"time"
)

var (
	scheduleWindows = prometheus.NewDesc(
		prometheus.BuildFQName("sentry", "schedule", "windows"),
		"Number of confirmed outage windows in the schedule",
		[]string{"period"},
		nil,
	)
	scheduleAge = prometheus.NewDesc(
		prometheus.BuildFQName("sentry", "schedule", "age_seconds"),
		"Seconds since the schedule was last fetched successfully",
		nil,
		nil,
	)
	printerPaused = prometheus.NewDesc(
		prometheus.BuildFQName("sentry", "printer", "paused"),
		"1 when the print is paused for an outage window",
		nil,
		nil,
	)
	printerPausedSeconds = prometheus.NewDesc(
		prometheus.BuildFQName("sentry", "printer", "paused_seconds"),
		"Seconds since the print was paused. 0 when not paused",
		nil,
		nil,
	)
)

type SchedulePoller interface {
	Subscribe() chan outages.Schedule
	Unsubscribe(chan outages.Schedule)
	Schedule() (outages.Schedule, time.Time)
}

type GuardStatus interface {
	Status() guard.Status
}

type Collector struct {
	Poller SchedulePoller
	Guard  GuardStatus
	Logger *slog.Logger

	lock       sync.RWMutex
	schedule   outages.Schedule
	lastUpdate time.Time
}

var _ prometheus.Collector = &Collector{}

func (c *Collector) Run(ctx context.Context) error {
	c.Logger.Debug("started")
	defer c.Logger.Debug("stopped")

	ch := c.Poller.Subscribe()
	defer c.Poller.Unsubscribe(ch)

	// pick up a schedule fetched before we subscribed
	if schedule, updated := c.Poller.Schedule(); !updated.IsZero() {
		c.lock.Lock()
		c.schedule = schedule
		c.lastUpdate = updated
		c.lock.Unlock()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case schedule := <-ch:
			c.lock.Lock()
			c.schedule = schedule
			c.lastUpdate = time.Now()
			c.lock.Unlock()
		}
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- scheduleWindows
	ch <- scheduleAge
	ch <- printerPaused
	ch <- printerPausedSeconds
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.lock.RLock()
	schedule, lastUpdate := c.schedule, c.lastUpdate
	c.lock.RUnlock()

	for _, p := range []outages.Period{outages.PeriodToday, outages.PeriodTomorrow} {
		ch <- prometheus.MustNewConstMetric(scheduleWindows, prometheus.GaugeValue, float64(len(schedule.Windows(p))), string(p))
	}
	if !lastUpdate.IsZero() {
		ch <- prometheus.MustNewConstMetric(scheduleAge, prometheus.GaugeValue, time.Since(lastUpdate).Seconds())
	}

	status := c.Guard.Status()
	var paused, pausedSeconds float64
	if status.Paused {
		paused = 1
		pausedSeconds = time.Since(status.PausedAt).Seconds()
	}
	ch <- prometheus.MustNewConstMetric(printerPaused, prometheus.GaugeValue, paused)
	ch <- prometheus.MustNewConstMetric(printerPausedSeconds, prometheus.GaugeValue, pausedSeconds)
}
