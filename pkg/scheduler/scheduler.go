// Package scheduler runs a task once, after a given delay. The caller can
// cancel the job, poll its result, or receive a notification when it's done.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Task is the unit of work executed by a Job.
type Task interface {
	Run(ctx context.Context) error
}

// RunFunc adapts a function to the Task interface.
type RunFunc func(ctx context.Context) error

func (f RunFunc) Run(ctx context.Context) error { return f(ctx) }

// Schedule runs task after waitTime. If done is not nil, a value is sent on it
// once the task has run (successfully or not). Canceling the parent context
// cancels the job.
func Schedule(ctx context.Context, task Task, waitTime time.Duration, done chan<- struct{}) *Job {
	jobCtx, cancel := context.WithCancel(ctx)
	j := Job{
		task:   task,
		due:    time.Now().Add(waitTime),
		cancel: cancel,
		done:   done,
	}
	go j.run(jobCtx, waitTime)
	return &j
}

// Job is a scheduled task.
type Job struct {
	task   Task
	due    time.Time
	cancel context.CancelFunc
	done   chan<- struct{}
	state  state
	err    error
	lock   sync.RWMutex
}

func (j *Job) run(ctx context.Context, waitTime time.Duration) {
	j.setState(stateScheduled, nil)
	select {
	case <-ctx.Done():
		j.setState(stateCanceled, nil)
	case <-time.After(waitTime):
		err := j.task.Run(ctx)
		s := stateCompleted
		if err != nil {
			s = stateFailed
		}
		j.setState(s, err)
		if j.done != nil {
			// the receiver may already have exited on shutdown
			select {
			case j.done <- struct{}{}:
			case <-ctx.Done():
			}
		}
	}
}

// Due returns the time at which the job is (or was) scheduled to run.
func (j *Job) Due() time.Time {
	return j.due
}

// Cancel stops a job that hasn't run yet.
func (j *Job) Cancel() {
	j.cancel()
}

// Result reports whether the job has finished and, if it ran, the error its
// task returned.
func (j *Job) Result() (bool, error) {
	j.lock.RLock()
	defer j.lock.RUnlock()
	return j.state.done(), j.err
}

func (j *Job) setState(state state, err error) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.state = state
	j.err = err
}

type state int

const (
	stateUnknown state = iota
	stateScheduled
	stateCanceled
	stateCompleted
	stateFailed
)

func (s state) done() bool {
	return s == stateCompleted || s == stateFailed || s == stateCanceled
}
