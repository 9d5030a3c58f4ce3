// Package task defines the immutable description of one periodic task plus
// its mutable active flag. Tasks are created during module construction and
// persist for the lifetime of the scheduler; only the active flag changes
// as the owning module moves in and out of the operational state.
//
// A one-shot dispatch unit and the worker that runs it are split apart the
// same way here, generalized into a recurring descriptor carried by the
// scheduler's ordered task list.
package task

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Func is the callable body of a task. It receives the current tick index.
type Func func(tick int64)

// Handle is the immutable description of one periodic task. The active flag
// and the last-overrun timestamp are the only state that changes after
// construction, and both are atomics rather than plain fields.
type Handle struct {
	ID    uuid.UUID
	Name  string
	Owner string

	Period int64 // ticks
	Offset int64 // ticks, 0 <= Offset < Period

	// RunAfterModules lists owner module names this task must not
	// overtake within a tick.
	RunAfterModules []string
	// RunAfterTasks lists peer task names (within the same owner module)
	// this task must not overtake within a tick.
	RunAfterTasks []string

	Budget time.Duration
	Fn     Func

	active      atomic.Bool
	lastOverrun atomic.Int64 // unix nanoseconds; 0 means never
}

// New constructs a Handle. Period must be >= 1 and Offset < Period; callers
// (the scheduler's registration path) are responsible for validating this
// before admitting the task — New itself does not reject bad values so
// that configuration errors can be reported uniformly as scheduler
// registration errors instead of panics deep in a constructor.
func New(name, owner string, period, offset int64, runAfterModules, runAfterTasks []string, budget time.Duration, fn Func) *Handle {
	return &Handle{
		ID:              uuid.New(),
		Name:            name,
		Owner:           owner,
		Period:          period,
		Offset:          offset,
		RunAfterModules: runAfterModules,
		RunAfterTasks:   runAfterTasks,
		Budget:          budget,
		Fn:              fn,
	}
}

// Active reports whether the task is currently eligible for scheduling.
func (h *Handle) Active() bool {
	return h.active.Load()
}

// SetActive flips the active flag. It is set by the owning module's
// executor when the module starts/is resumed and cleared on stop/pause.
func (h *Handle) SetActive(v bool) {
	h.active.Store(v)
}

// Eligible reports whether the task should run on the given tick, ignoring
// ordering constraints (handled by the scheduler's list order).
func (h *Handle) Eligible(tick int64) bool {
	if !h.Active() {
		return false
	}
	return tick%h.Period == h.Offset
}

// MarkOverrun records at as the time of the task's most recent budget
// overrun, for introspection.
func (h *Handle) MarkOverrun(at time.Time) {
	h.lastOverrun.Store(at.UnixNano())
}

// LastOverrun returns the time of the most recent recorded budget overrun,
// or the zero time if none has occurred.
func (h *Handle) LastOverrun() time.Time {
	ns := h.lastOverrun.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
