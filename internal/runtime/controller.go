package runtime

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/vehicle-runtime/pkg/executor"
	"github.com/kubev2v/vehicle-runtime/pkg/module"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
	"github.com/kubev2v/vehicle-runtime/pkg/scheduler"
)

// defaultStallCheckInterval and defaultStallThreshold bound how long a
// module may remain in starting before the controller raises a critical
// "lifecycle stall" error.
const (
	defaultStallCheckInterval = 100 * time.Millisecond
	defaultStallThreshold     = 50 // 5s at the default interval
)

// Controller is the executable controller (spec components C9/C10): it
// owns the scheduler, the module registry, and the signal-driven shutdown
// flag, and drives every registered module through Initialize/Start/Operate
// exactly once per process lifetime.
type Controller struct {
	sched *scheduler.Scheduler
	hooks Hooks

	stallCheckInterval time.Duration
	stallThreshold     int
	signals            []os.Signal

	mu                 sync.Mutex
	records            []*record
	executors          map[string]*executor.Executor
	activationTargets  []module.ActivationTarget
	criticalFailure    bool

	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// New creates a Controller. tickPeriod and observer are passed straight
// through to scheduler.New; hooks may be the zero value for all-default
// behavior.
func New(tickPeriod time.Duration, observer scheduler.Observer, hooks Hooks) *Controller {
	return &Controller{
		sched:              scheduler.New(tickPeriod, observer),
		hooks:              hooks,
		stallCheckInterval: defaultStallCheckInterval,
		stallThreshold:     defaultStallThreshold,
		signals:            []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT},
		executors:          make(map[string]*executor.Executor),
		shutdownCh:         make(chan struct{}),
	}
}

// WithStallDetection overrides the default stall-check cadence and
// threshold used during the Start phase.
func (c *Controller) WithStallDetection(interval time.Duration, threshold int) *Controller {
	c.stallCheckInterval = interval
	c.stallThreshold = threshold
	return c
}

// Scheduler returns the controller's scheduler, for components (the
// diagnostics store, the introspection API) that need read access to task
// state outside the lifecycle itself.
func (c *Controller) Scheduler() *scheduler.Scheduler {
	return c.sched
}

// RegisterModule adds m to the registry. Must be called before Run;
// duplicate names are rejected.
func (c *Controller) RegisterModule(m module.Module) error {
	return c.registerModule(m)
}

// ModuleInfo is a read-only snapshot of one registered module's lifecycle
// state, for the introspection API.
type ModuleInfo struct {
	Name            string
	State           module.State
	Dependencies    []string
	StartingAttempt int
}

// Modules returns a snapshot of every registered module's lifecycle state.
func (c *Controller) Modules() []ModuleInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ModuleInfo, len(c.records))
	for i, r := range c.records {
		out[i] = ModuleInfo{
			Name:            r.name,
			State:           r.state,
			Dependencies:    r.dependencies,
			StartingAttempt: r.stallChecks,
		}
	}
	return out
}

// RegisterActivationTarget adds t to the set of data-element providers the
// controller activates and deactivates as modules transition
// through operational and shutdown. Channel modules register themselves
// (or are registered by the code that constructs them) before Run.
func (c *Controller) RegisterActivationTarget(t module.ActivationTarget) {
	c.mu.Lock()
	c.activationTargets = append(c.activationTargets, t)
	c.mu.Unlock()
}

// Shutdown initiates shutdown from outside the controller — an HTTP
// handler, a test, a signal handler — the same way a critical error or an
// OS signal does internally.
func (c *Controller) Shutdown() {
	c.initiateShutdown()
}

func (c *Controller) initiateShutdown() {
	c.shutdownOnce.Do(func() { close(c.shutdownCh) })
}

// Run boots the controller through Initialize, Start, and Operate, and
// returns once shutdown has completed. It returns exit code 0 on clean
// shutdown, non-zero if a critical error was ever reported.
func (c *Controller) Run() int {
	c.hooks.call("preInitialize")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, c.signals...)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			c.initiateShutdown()
		case <-c.shutdownCh:
		}
	}()

	order, err := c.topologicalOrder()
	if err != nil {
		c.failCritical(result.NotOK("%s", err.Error()), "")
		return 1
	}

	for _, r := range order {
		c.executors[r.name] = executor.New(r.name, r.dependencies, c.sched)

		ctrl := moduleControl{c: c, name: r.name}
		res := r.mod.Init(ctrl)
		if !res.HasValue() {
			c.failCritical(res.Error(), r.name)
			break
		}
		r.state = module.NotOperational
		c.wireTaskFailures(r)
	}
	c.hooks.call("postInitialize")

	if c.criticalFailure {
		c.runShutdown(order)
		return 1
	}

	c.sched.Start()
	c.hooks.call("preStart")
	c.runStartPhase(order)
	c.hooks.call("postStart")

	<-c.shutdownCh

	c.runShutdown(order)
	if c.criticalFailure {
		return 1
	}
	return 0
}

func (c *Controller) wireTaskFailures(r *record) {
	c.executors[r.name].OnTaskFail(func(taskName string, recovered any) {
		zap.S().Named("runtime").Warnw("task panic recovered", "module", r.name, "task", taskName, "recovered", recovered)
		r.mod.OnError(result.Unknown(panicError{taskName: taskName, recovered: recovered}))
	})
}

type panicError struct {
	taskName  string
	recovered any
}

func (p panicError) Error() string {
	return "task " + p.taskName + " panicked"
}

func (c *Controller) failCritical(err result.Error, moduleName string) {
	c.mu.Lock()
	c.criticalFailure = true
	c.mu.Unlock()
	c.hooks.reportError(err, moduleName, true)
	c.initiateShutdown()
}

// runStartPhase invokes Start on every module whose dependencies are
// already operational, then polls at stallCheckInterval: modules newly
// eligible (because a dependency just reported operational) are started,
// and every module still stuck in starting has its stall counter
// advanced. It returns once every module has left starting (reached
// operational) or shutdown has been initiated.
func (c *Controller) runStartPhase(order []*record) {
	byName := make(map[string]*record, len(order))
	for _, r := range order {
		byName[r.name] = r
	}

	attemptStarts := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, r := range order {
			if r.state == module.NotOperational && dependenciesOperational(byName, r) {
				r.state = module.Starting
				r.stallChecks = 0
				go r.mod.Start()
			}
		}
	}

	allSettled := func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, r := range order {
			if r.state != module.Operational {
				return false
			}
		}
		return true
	}

	attemptStarts()
	if allSettled() {
		return
	}

	ticker := time.NewTicker(c.stallCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.shutdownCh:
			return
		case <-ticker.C:
			attemptStarts()

			var stalled *record
			c.mu.Lock()
			for _, r := range order {
				if r.state != module.Starting {
					continue
				}
				r.stallChecks++
				if r.stallChecks >= c.stallThreshold {
					stalled = r
				}
			}
			c.mu.Unlock()

			if stalled != nil {
				c.failCritical(result.NewError(result.KindUnknown, "module %q stalled in starting", stalled.name), stalled.name)
				return
			}
			if allSettled() {
				return
			}
		}
	}
}

func (c *Controller) reportOperationalOfModule(name string) {
	c.mu.Lock()
	var r *record
	for _, candidate := range c.records {
		if candidate.name == name {
			r = candidate
			break
		}
	}
	if r == nil || r.state != module.Starting {
		c.mu.Unlock()
		return
	}
	r.state = module.Operational
	r.stallChecks = 0
	e := c.executors[name]
	targets := append([]module.ActivationTarget(nil), c.activationTargets...)
	c.mu.Unlock()

	if e != nil {
		e.Enable()
	}
	for _, t := range targets {
		t.StartEventHandlerForModule(name)
	}
}

func (c *Controller) skipStartingOfModule(name string) {
	c.mu.Lock()
	var r *record
	for _, candidate := range c.records {
		if candidate.name == name {
			r = candidate
			break
		}
	}
	if r == nil || r.state != module.Starting {
		c.mu.Unlock()
		return
	}
	r.state = module.Operational
	r.stallChecks = 0
	targets := append([]module.ActivationTarget(nil), c.activationTargets...)
	c.mu.Unlock()

	for _, t := range targets {
		t.StartEventHandlerForModule(name)
	}
}

func (c *Controller) reportErrorOfModule(err result.Error, name string, critical bool) {
	c.hooks.reportError(err, name, critical)
	if critical {
		c.mu.Lock()
		c.criticalFailure = true
		c.mu.Unlock()
		c.initiateShutdown()
	}
}

// runShutdown stops and deinitializes every module that reached at least
// NotOperational, in reverse topological order, then stops the scheduler.
func (c *Controller) runShutdown(order []*record) {
	c.hooks.call("preShutdown")

	for i := len(order) - 1; i >= 0; i-- {
		r := order[i]
		if r.state == module.NotInitialized {
			continue
		}
		if e := c.executors[r.name]; e != nil {
			e.Disable()
		}
		for _, t := range c.activationTargets {
			t.StopEventHandlerForModule(r.name)
		}
		if r.state == module.Starting || r.state == module.Operational {
			r.mod.Stop()
		}
		r.mod.DeInit()
		r.state = module.Shutdown
	}

	c.sched.Stop()
	c.hooks.call("postShutdown")
}
