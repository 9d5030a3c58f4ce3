package module

import (
	"github.com/kubev2v/vehicle-runtime/pkg/executor"
	"github.com/kubev2v/vehicle-runtime/pkg/future"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

// State is a position in the module lifecycle state machine. Transitions
// are one-way; shutdown is terminal.
type State int

const (
	NotInitialized State = iota
	NotOperational
	Starting
	Operational
	Shutdown
)

func (s State) String() string {
	switch s {
	case NotInitialized:
		return "notInitialized"
	case NotOperational:
		return "notOperational"
	case Starting:
		return "starting"
	case Operational:
		return "operational"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Control is the capability a module uses to report its own progress back
// to the controller. The controller constructs one Control per module and
// hands it to Init; the module is expected to retain it for the rest of its
// lifetime.
type Control interface {
	// ReportOperational transitions the module from starting to
	// operational: its tasks are admitted to the scheduler and its data
	// handlers become eligible for activation in dependent peers.
	ReportOperational()
	// ReportError forwards err to the user-controller's OnError hook. A
	// critical error additionally initiates runtime shutdown.
	ReportError(err result.Error, critical bool)
	// SkipStartingOfModule transitions straight from starting to
	// operational without admitting any tasks, for a module with no
	// periodic work of its own (e.g. a pure consumer that only reacts to
	// data-element notifications).
	SkipStartingOfModule()
	// Executor returns this module's task executor, already scoped to its
	// name and dependencies. A module registers its periodic tasks against
	// it during Init; the controller enables the executor's tasks when the
	// module reaches operational and disables them at shutdown.
	Executor() *executor.Executor
}

// Module is the interface every application module implements. Modules are
// constructed by the caller before registration; the controller drives them
// through Init, Start, Stop, DeInit exactly once per process lifetime.
type Module interface {
	// Name is the module's unique, non-empty registry name.
	Name() string
	// Dependencies lists the names of modules that must reach Operational
	// before this module's Start is invoked.
	Dependencies() []string
	// Init prepares the module and receives its Control handle. A
	// returned error is fatal and escalates as a critical error report.
	Init(ctrl Control) result.Result[future.Void]
	// Start begins the module's work. It must return promptly; readiness
	// is signalled asynchronously through Control.ReportOperational or
	// Control.SkipStartingOfModule, not through Start's return.
	Start()
	// Stop halts the module's work as part of shutdown, before DeInit.
	Stop()
	// DeInit releases resources acquired in Init, after Stop.
	DeInit()
	// OnError is called when one of this module's own tasks panics
	// (a non-critical, scheduler-caught fault), so the module can decide
	// whether to escalate via Control.ReportError.
	OnError(err result.Error)
}

// ActivationTarget is implemented by data-element providers
// (pkg/channel.DataElement, pkg/channel.StoreBackedDataElement) so the
// controller can activate or deactivate every handler registered by a given
// owner module without needing to know the concrete element types any
// module has registered against.
type ActivationTarget interface {
	StartEventHandlerForModule(owner string)
	StopEventHandlerForModule(owner string)
}
