// Package dataplane defines the provider/consumer contract (spec
// components C6/C7): typed data-element allocate/set/get/subscribe and
// typed operation register/invoke. pkg/channel provides the one concrete
// implementation shipped with this runtime (an in-process channel module);
// a transport binding (a simulation-bus binding, a key-value store binding)
// would implement the same two interfaces from outside this module.
package dataplane

import (
	"github.com/kubev2v/vehicle-runtime/pkg/future"
	"github.com/kubev2v/vehicle-runtime/pkg/handle"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

// Provider is the write side of a typed data element.
type Provider[T any] interface {
	// Allocate hands back a fresh, empty mutable buffer for the caller
	// to fill before publishing it with SetAllocated.
	Allocate() result.Result[handle.Mutable[T]]
	// SetAllocated publishes an already-filled buffer, transferring
	// ownership to the provider/consumer fabric.
	SetAllocated(v handle.Mutable[T])
	// Set copy-publishes a value.
	Set(v T)
}

// DataHandlerFunc is a change-notification callback bound to a consumer
// registration. It receives a read-only handle on the newly published
// sample.
type DataHandlerFunc[T any] func(handle.Shared[T])

// Consumer is the read side of a typed data element.
type Consumer[T any] interface {
	// GetAllocated returns a read-only handle on the latest sample, or
	// an error Result ("no sample available") if nothing has been
	// published yet.
	GetAllocated() result.Result[handle.Shared[T]]
	// Get returns a value-copy of the latest sample, or the zero value
	// of T when none has been published.
	Get() T
	// RegisterDataElementHandler registers a change callback bound to
	// an owner module name. The handler's initial active flag follows
	// whether that owner is currently in the active-modules set.
	RegisterDataElementHandler(ownerModuleName string, fn DataHandlerFunc[T])
}

// OperationProvider is the write side of a typed operation: it accepts
// exactly one handler at a time.
type OperationProvider[In, Out any] interface {
	// RegisterOperationHandler installs fn as the operation's handler.
	// A second call replaces the first. Passing nil clears it.
	RegisterOperationHandler(fn func(In) Out)
}

// OperationConsumer is the invocation side of a typed operation.
type OperationConsumer[In, Out any] interface {
	// Invoke returns a Future that resolves when the provider-side
	// handler completes, or is immediately failed if no handler is
	// registered.
	Invoke(in In) future.Future[Out]
}
