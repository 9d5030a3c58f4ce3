package executor

import (
	"sync"
	"time"

	"github.com/kubev2v/vehicle-runtime/pkg/scheduler"
	"github.com/kubev2v/vehicle-runtime/pkg/task"
)

// Executor is the per-module handle over the shared Scheduler. It tracks
// whether the module's tasks are currently admitted (the module reached
// Operational and scheduler admission was enabled by the controller) so
// that a task registered before admission stays dormant until Enable is
// called, while one registered after admission activates immediately.
type Executor struct {
	moduleName   string
	dependencies []string
	sched        *scheduler.Scheduler

	mu         sync.Mutex
	admitted   bool
	tasks      []*task.Handle
	onTaskFail func(taskName string, recovered any)
}

// New creates an Executor for a module. dependencies are the module's
// declared dependency names and become the run-after-modules constraint on
// every task the module registers.
func New(moduleName string, dependencies []string, sched *scheduler.Scheduler) *Executor {
	e := &Executor{
		moduleName:   moduleName,
		dependencies: dependencies,
		sched:        sched,
	}
	sched.RegisterErrorReporter(moduleName, e)
	return e
}

// RunPeriodic registers a periodic task owned by this module. runAfterPeers
// names sibling tasks (registered by the same module) this task must not
// overtake within a tick.
func (e *Executor) RunPeriodic(name string, period int64, fn task.Func, runAfterPeers []string, offset int64, budget time.Duration) error {
	h := task.New(name, e.moduleName, period, offset, e.dependencies, runAfterPeers, budget, fn)
	if err := e.sched.AddTask(h); err != nil {
		return err
	}

	e.mu.Lock()
	e.tasks = append(e.tasks, h)
	admitted := e.admitted
	e.mu.Unlock()

	if admitted {
		h.SetActive(true)
	}
	return nil
}

// Enable admits every task registered so far (and every task registered in
// the future) for scheduling. Called by the controller when the module
// transitions into Operational.
func (e *Executor) Enable() {
	e.mu.Lock()
	e.admitted = true
	tasks := append([]*task.Handle(nil), e.tasks...)
	e.mu.Unlock()

	for _, h := range tasks {
		h.SetActive(true)
	}
}

// Disable clears the active flag of every task and stops admitting new
// ones until Enable is called again. Used both for a full module pause and
// for shutdown.
func (e *Executor) Disable() {
	e.mu.Lock()
	e.admitted = false
	tasks := append([]*task.Handle(nil), e.tasks...)
	e.mu.Unlock()

	for _, h := range tasks {
		h.SetActive(false)
	}
}

// Admitted reports whether the module's tasks are currently admitted.
func (e *Executor) Admitted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.admitted
}

// OnTaskFail installs the callback invoked when one of this module's tasks
// panics. The controller wires this to the module's own OnError method; the
// controller does not itself file an error report to the Hooks, so a task
// exception reaches Hooks.OnError only if the module's OnError escalates it
// through Control.ReportError.
func (e *Executor) OnTaskFail(fn func(taskName string, recovered any)) {
	e.mu.Lock()
	e.onTaskFail = fn
	e.mu.Unlock()
}

// ReportTaskError implements scheduler.ErrorReporter.
func (e *Executor) ReportTaskError(taskName string, recovered any) {
	e.mu.Lock()
	fn := e.onTaskFail
	e.mu.Unlock()
	if fn != nil {
		fn(taskName, recovered)
	}
}

// Tasks returns a snapshot of the tasks this executor has registered, for
// introspection.
func (e *Executor) Tasks() []*task.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*task.Handle, len(e.tasks))
	copy(out, e.tasks)
	return out
}
