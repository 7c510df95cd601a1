package guard

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestNextStep(t *testing.T) {
	now := time.Date(2024, time.November, 15, 16, 5, 0, 0, time.Local)
	pausedAt := now.Add(-10 * time.Minute)
	const waitAfter = 10 * time.Minute

	tests := []struct {
		name    string
		session Session
		signal  Signal
		now     time.Time
		want    step
	}{
		{
			name: "idle, no signal",
			want: stepNone,
		},
		{
			name:   "idle, pause due",
			signal: Signal{Act: true, Window: "16:00-19:00"},
			want:   stepPause,
		},
		{
			name:    "paused, wait not expired",
			session: Session{PausedAt: pausedAt, Window: "16:00-19:00"},
			now:     pausedAt.Add(waitAfter - time.Second),
			want:    stepNone,
		},
		{
			name:    "paused, wait expired exactly",
			session: Session{PausedAt: pausedAt, Window: "16:00-19:00"},
			now:     pausedAt.Add(waitAfter),
			want:    stepResume,
		},
		{
			name:    "paused, wait long expired",
			session: Session{PausedAt: pausedAt, Window: "16:00-19:00"},
			now:     pausedAt.Add(time.Hour),
			want:    stepResume,
		},
		{
			name:    "paused, act signal ignored",
			session: Session{PausedAt: pausedAt, Window: "16:00-19:00"},
			signal:  Signal{Act: true, Window: "16:00-19:00"},
			now:     pausedAt.Add(time.Minute),
			want:    stepNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			when := tt.now
			if when.IsZero() {
				when = now
			}
			assert.Equal(t, tt.want, nextStep(tt.session, tt.signal, when, waitAfter))
		})
	}
}

func TestSession_Paused(t *testing.T) {
	assert.False(t, Session{}.Paused())
	assert.True(t, Session{PausedAt: time.Now()}.Paused())
}
