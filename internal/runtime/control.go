package runtime

import (
	"github.com/kubev2v/vehicle-runtime/pkg/executor"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

// moduleControl is the module.Control handed to exactly one module at Init
// time. It closes over the module's name so the controller's reporting
// methods never need the module to identify itself.
type moduleControl struct {
	c    *Controller
	name string
}

func (mc moduleControl) ReportOperational() {
	mc.c.reportOperationalOfModule(mc.name)
}

func (mc moduleControl) ReportError(err result.Error, critical bool) {
	mc.c.reportErrorOfModule(err, mc.name, critical)
}

func (mc moduleControl) SkipStartingOfModule() {
	mc.c.skipStartingOfModule(mc.name)
}

func (mc moduleControl) Executor() *executor.Executor {
	mc.c.mu.Lock()
	defer mc.c.mu.Unlock()
	return mc.c.executors[mc.name]
}
