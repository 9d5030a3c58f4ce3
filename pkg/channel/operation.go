package channel

import (
	"sync"

	"github.com/kubev2v/vehicle-runtime/pkg/dataplane"
	"github.com/kubev2v/vehicle-runtime/pkg/future"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

// Operation is the concrete in-process implementation of one operation's
// provider and consumer facades (dataplane.OperationProvider[In, Out] and
// dataplane.OperationConsumer[In, Out]). Invoke runs the registered handler
// synchronously on the caller's goroutine and returns an already-resolved
// Future; there is no queueing or cross-thread handoff, so handlers must
// stay non-blocking.
type Operation[In, Out any] struct {
	mu      sync.Mutex
	handler func(In) Out
}

// NewOperation creates an operation with no registered handler.
func NewOperation[In, Out any]() *Operation[In, Out] {
	return &Operation[In, Out]{}
}

// RegisterOperationHandler installs fn as the handler. A second call
// replaces the first; passing nil clears it, reverting Invoke to the
// no-handler-registered error path.
func (o *Operation[In, Out]) RegisterOperationHandler(fn func(In) Out) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.handler = fn
}

// Invoke calls the registered handler on the calling goroutine and returns
// a Future already resolved with its result. If no handler is registered,
// the returned Future is already resolved to an error.
func (o *Operation[In, Out]) Invoke(in In) future.Future[Out] {
	o.mu.Lock()
	h := o.handler
	o.mu.Unlock()

	p, f := future.NewPromise[Out]()
	if h == nil {
		p.SetError(result.NotOK("operation: no handler registered"))
		return f
	}
	p.SetValue(h(in))
	return f
}

var (
	_ dataplane.OperationProvider[int, int] = (*Operation[int, int])(nil)
	_ dataplane.OperationConsumer[int, int] = (*Operation[int, int])(nil)
)
