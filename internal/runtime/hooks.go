package runtime

import "github.com/kubev2v/vehicle-runtime/pkg/result"

// Hooks are optional, host-supplied callbacks bracketing each controller
// phase (spec component C10). The zero value is a working default: every
// hook is a no-op, including OnError (see DefaultOnError); a critical error
// still ends the run, because the controller itself initiates shutdown and
// Run returns a non-zero exit code.
type Hooks struct {
	PreInitialize  func()
	PostInitialize func()
	PreStart       func()
	PostStart      func()
	PreShutdown    func()
	PostShutdown   func()

	// OnError is invoked for every reported module error, critical or
	// not. A nil OnError falls back to DefaultOnError.
	OnError func(err result.Error, moduleName string, critical bool)
}

// DefaultOnError is used when Hooks.OnError is nil. Non-critical errors are
// swallowed (the module already had its chance to react in its own OnError
// method); critical errors are left to the controller, which always
// initiates shutdown for them regardless of this hook.
func DefaultOnError(err result.Error, moduleName string, critical bool) {}

func (h Hooks) call(name string) {
	var fn func()
	switch name {
	case "preInitialize":
		fn = h.PreInitialize
	case "postInitialize":
		fn = h.PostInitialize
	case "preStart":
		fn = h.PreStart
	case "postStart":
		fn = h.PostStart
	case "preShutdown":
		fn = h.PreShutdown
	case "postShutdown":
		fn = h.PostShutdown
	}
	if fn != nil {
		fn()
	}
}

func (h Hooks) reportError(err result.Error, moduleName string, critical bool) {
	if h.OnError != nil {
		h.OnError(err, moduleName, critical)
		return
	}
	DefaultOnError(err, moduleName, critical)
}
