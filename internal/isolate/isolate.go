// internal/isolate/isolate.go
//
// Isolated execution units for episodes.
//
// The orchestrator depends only on the Launcher/Unit contract: submit a
// task, await it under a deadline, force-terminate it. The default
// implementation backs each unit with a goroutine: panics are contained,
// the deadline is delivered through the task's context, and a watchdog
// abandons the worker when the budget expires so one stuck agent can
// never stall another episode or the orchestrator. An OS-process
// launcher with CPU/memory ceilings can satisfy the same contract.
package isolate

import (
	"context"
	"time"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/runner"
)

// Task is one episode's work. It receives a context whose deadline is
// the episode compute budget.
type Task func(ctx context.Context) runner.Result

// Unit is a single submitted task.
type Unit interface {
	// Await blocks until the task finishes or its deadline expires.
	// ok is false when the unit was reclaimed before finishing; the
	// caller synthesizes the penalty result in that case.
	Await() (res runner.Result, ok bool)

	// Terminate forcibly reclaims the unit. Idempotent. A terminated
	// unit's eventual result, if any, is discarded.
	Terminate()
}

// Launcher schedules tasks into isolated units.
type Launcher interface {
	Submit(ctx context.Context, budget time.Duration, task Task) Unit
}

// GoLauncher runs each task in its own goroutine.
type GoLauncher struct{}

// NewGoLauncher returns the goroutine-backed launcher.
func NewGoLauncher() GoLauncher { return GoLauncher{} }

// Submit starts the task immediately under a budget-bounded context.
func (GoLauncher) Submit(ctx context.Context, budget time.Duration, task Task) Unit {
	runCtx, cancel := context.WithTimeout(ctx, budget)
	u := &goUnit{
		done:   make(chan runner.Result, 1),
		cancel: cancel,
	}
	go func() {
		defer func() {
			// Backstop: Play contains agent panics itself, but a panic
			// anywhere else in the task must not escape the unit.
			if r := recover(); r != nil {
				u.done <- runner.Result{Outcome: runner.OutcomeFaulted}
			}
		}()
		u.done <- task(runCtx)
	}()
	u.ctx = runCtx
	return u
}

// goUnit is one goroutine-backed execution unit.
type goUnit struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan runner.Result
}

// Await waits for the result or the deadline, whichever comes first.
// On expiry the worker goroutine is abandoned; the buffered channel lets
// it finish eventually without leaking a blocked send.
func (u *goUnit) Await() (runner.Result, bool) {
	select {
	case res := <-u.done:
		u.cancel()
		return res, true
	case <-u.ctx.Done():
		// Grace window: a cooperative task that noticed the deadline
		// may still deliver its own timed-out result.
		select {
		case res := <-u.done:
			return res, true
		case <-time.After(50 * time.Millisecond):
			return runner.Result{}, false
		}
	}
}

// Terminate cancels the unit's context and releases it.
func (u *goUnit) Terminate() { u.cancel() }
