package health_test

import (
	"context"
	"github.com/ovasylenko/printer-sentry/internal/guard"
	"github.com/ovasylenko/printer-sentry/internal/health"
	"github.com/ovasylenko/printer-sentry/internal/outages"
	"github.com/ovasylenko/printer-sentry/pkg/pubsub"
	"github.com/stretchr/testify/assert"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type fakePoller struct {
	*pubsub.Publisher[outages.Schedule]
	refreshed atomic.Bool
	schedule  outages.Schedule
	updated   time.Time
}

func (f *fakePoller) Refresh() {
	f.refreshed.Store(true)
}

func (f *fakePoller) Schedule() (outages.Schedule, time.Time) {
	return f.schedule, f.updated
}

type fakeGuard struct {
	status guard.Status
}

func (f fakeGuard) Status() guard.Status {
	return f.status
}

func TestHealth_ServeHTTP(t *testing.T) {
	p := fakePoller{Publisher: pubsub.New[outages.Schedule](slog.Default())}
	g := fakeGuard{status: guard.Status{Paused: true, Window: "16:00-19:00"}}
	h := health.New(&p, g, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = h.Run(ctx) }()

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, &http.Request{})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.True(t, p.refreshed.Load())

	assert.Eventually(t, func() bool { return p.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	p.Publish(outages.Schedule{
		outages.PeriodToday: []outages.Interval{{Start: 16, End: 19}},
	})

	assert.Eventually(t, func() bool {
		resp = httptest.NewRecorder()
		h.ServeHTTP(resp, &http.Request{})
		return resp.Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
  "schedule": {"today": ["16:00-19:00"], "tomorrow": []},
  "guard": {"paused": true, "pausedAt": "0001-01-01T00:00:00Z", "window": "16:00-19:00"}
}`, resp.Body.String())
}

func TestHealth_ServeHTTP_ScheduleBeforeSubscribe(t *testing.T) {
	// a schedule fetched before the health loop started must satisfy the
	// readiness check
	p := fakePoller{
		Publisher: pubsub.New[outages.Schedule](slog.Default()),
		schedule:  outages.Schedule{outages.PeriodToday: []outages.Interval{{Start: 16, End: 19}}},
		updated:   time.Now(),
	}
	h := health.New(&p, fakeGuard{}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = h.Run(ctx) }()

	assert.Eventually(t, func() bool {
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, &http.Request{})
		return resp.Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)
	assert.False(t, p.refreshed.Load())
}
