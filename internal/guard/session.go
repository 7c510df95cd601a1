package guard

import "time"

// Session is the singleton pause state. The zero value means the print is
// running.
type Session struct {
	PausedAt time.Time
	Window   string
}

func (s Session) Paused() bool {
	return !s.PausedAt.IsZero()
}

type step int

const (
	stepNone step = iota
	stepPause
	stepResume
)

// nextStep is the pause/resume decision: a pure function of the session, the
// evaluator's signal and the clock, so transitions can be tested without a
// printer.
//
// While paused, the exit condition is purely time-based (waitAfter since the
// pause), independent of the window's actual end; new Act signals are ignored
// until the session is cleared.
func nextStep(session Session, signal Signal, now time.Time, waitAfter time.Duration) step {
	if session.Paused() {
		if now.Sub(session.PausedAt) >= waitAfter {
			return stepResume
		}
		return stepNone
	}
	if signal.Act {
		return stepPause
	}
	return stepNone
}
