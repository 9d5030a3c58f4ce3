package scheduler

import "time"

// Observer receives diagnostic events from the scheduler's tick thread. It
// is implemented by internal/diagnostics for durable logging; the
// scheduler itself never imports a storage package.
type Observer interface {
	// ObserveTick is called once per tick after execution, with the
	// names of tasks that ran and the wall-clock time the whole tick
	// took.
	ObserveTick(tick int64, executed []string, elapsed time.Duration)
	// ObserveBudgetOverrun is called whenever a task's run time exceeds
	// its non-zero budget.
	ObserveBudgetOverrun(tick int64, taskName, owner string, budget, actual time.Duration)
	// ObserveTaskPanic is called whenever a task's callable panics.
	ObserveTaskPanic(tick int64, taskName, owner string, recovered any)
}

// NopObserver discards every event. It is the default Observer so callers
// that do not care about diagnostics are not forced to provide one.
type NopObserver struct{}

func (NopObserver) ObserveTick(int64, []string, time.Duration)                 {}
func (NopObserver) ObserveBudgetOverrun(int64, string, string, time.Duration, time.Duration) {}
func (NopObserver) ObserveTaskPanic(int64, string, string, any)                {}

// ErrorReporter receives runtime task exceptions on behalf of the task's
// owning module. pkg/executor implements this and relays into the module
// control interface's OnError/reportError path.
type ErrorReporter interface {
	ReportTaskError(taskName string, recovered any)
}
