// Package provider maintains the current outage schedule: it fetches the
// feed at startup and at every local midnight, and publishes each new
// schedule to its subscribers.
package provider

import (
	"context"
	"github.com/clambin/go-common/set"
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"github.com/ovasylenko/printer-sentry/pkg/pubsub"
	"github.com/ovasylenko/printer-sentry/pkg/scheduler"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ScheduleGetter fetches the raw outage schedule for a group.
type ScheduleGetter interface {
	GetGroupSchedule(ctx context.Context, group string) (outages.GroupSchedule, error)
}

// Provider owns the schedule. A failed fetch keeps the previous schedule:
// acting on stale windows beats acting on no windows at all.
type Provider struct {
	Client ScheduleGetter
	*pubsub.Publisher[outages.Schedule]
	// GetCurrentTime allows the current time to be set during testing.
	GetCurrentTime func() time.Time
	group    string
	logger   *slog.Logger
	refresh  chan struct{}
	midnight chan struct{}

	lock     sync.RWMutex
	schedule outages.Schedule
	updated  time.Time
}

func New(client ScheduleGetter, group string, logger *slog.Logger) *Provider {
	return &Provider{
		Client:    client,
		Publisher: pubsub.New[outages.Schedule](logger.With(slog.String("component", "registry"))),
		group:     group,
		logger:    logger,
		refresh:   make(chan struct{}),
		midnight:  make(chan struct{}),
	}
}

// Run fetches the schedule, then refreshes it at every local midnight (when
// the feed rolls today/tomorrow over) and whenever Refresh is called.
func (p *Provider) Run(ctx context.Context) error {
	p.logger.Debug("started", slog.String("group", p.group))
	defer p.logger.Debug("stopped")

	p.fetch(ctx)
	job := p.scheduleRollover(ctx)

	for {
		select {
		case <-ctx.Done():
			job.Cancel()
			return nil
		case <-p.refresh:
			p.fetch(ctx)
		case <-p.midnight:
			p.fetch(ctx)
			job = p.scheduleRollover(ctx)
		}
	}
}

// Refresh triggers an immediate fetch.
func (p *Provider) Refresh() {
	p.refresh <- struct{}{}
}

// Schedule returns the current schedule and the time it was last updated.
func (p *Provider) Schedule() (outages.Schedule, time.Time) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.schedule, p.updated
}

func (p *Provider) scheduleRollover(ctx context.Context) *scheduler.Job {
	now := time.Now()
	if p.GetCurrentTime != nil {
		now = p.GetCurrentTime()
	}
	wait := nextMidnight(now).Sub(now)
	p.logger.Debug("next schedule refresh", slog.Duration("in", wait))
	return scheduler.Schedule(ctx, scheduler.RunFunc(func(_ context.Context) error {
		return nil
	}), wait, p.midnight)
}

func (p *Provider) fetch(ctx context.Context) {
	raw, err := p.Client.GetGroupSchedule(ctx, p.group)
	if err != nil {
		p.logger.Error("failed to fetch outage schedule, keeping previous one", "err", err)
		return
	}
	schedule := raw.Schedule()

	p.lock.Lock()
	changed := !set.New(schedule.Labels()...).Equals(set.New(p.schedule.Labels()...))
	p.schedule = schedule
	p.updated = time.Now()
	p.lock.Unlock()

	if changed {
		p.logger.Info("outage schedule updated", slog.String("windows", strings.Join(schedule.Labels(), ", ")))
	}
	p.Publish(schedule)
}

func nextMidnight(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
}
