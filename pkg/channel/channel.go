package channel

import (
	"sync"

	"github.com/kubev2v/vehicle-runtime/pkg/dataplane"
	"github.com/kubev2v/vehicle-runtime/pkg/handle"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

// subscription binds one consumer's change handler to an owner module name.
// active mirrors the module's membership in the runtime's active-modules
// set, maintained from outside via StartEventHandlerForModule /
// StopEventHandlerForModule.
type subscription[T any] struct {
	owner  string
	fn     dataplane.DataHandlerFunc[T]
	active bool
}

// DataElement is the concrete in-process implementation of one data
// element's provider and consumer facades (dataplane.Provider[T] and
// dataplane.Consumer[T]). The latest published sample is cached behind a
// mutex; publishing takes a snapshot of the subscriber list before invoking
// any handler, so a handler that re-enters RegisterDataElementHandler or
// triggers a further publish on the same element cannot deadlock on the
// cache mutex and cannot observe a subscriber list mutated mid-fan-out.
type DataElement[T any] struct {
	mu           sync.Mutex
	last         handle.Shared[T]
	subs         []*subscription[T]
	activeOwners map[string]bool
}

// NewDataElement creates an unpublished data element.
func NewDataElement[T any]() *DataElement[T] {
	return &DataElement[T]{}
}

// Allocate hands back a fresh mutable buffer for the caller to fill.
func (d *DataElement[T]) Allocate() result.Result[handle.Mutable[T]] {
	return result.FromValue(handle.NewMutable[T]())
}

// SetAllocated publishes an already-filled buffer produced by Allocate.
func (d *DataElement[T]) SetAllocated(v handle.Mutable[T]) {
	d.publish(v.Freeze())
}

// Set copy-publishes a value.
func (d *DataElement[T]) Set(v T) {
	d.publish(handle.NewShared(v))
}

func (d *DataElement[T]) publish(s handle.Shared[T]) {
	d.mu.Lock()
	d.last = s
	snapshot := make([]*subscription[T], len(d.subs))
	copy(snapshot, d.subs)
	d.mu.Unlock()

	for _, sub := range snapshot {
		if sub.active {
			sub.fn(s)
		}
	}
}

// GetAllocated returns a read-only handle on the latest published sample.
func (d *DataElement[T]) GetAllocated() result.Result[handle.Shared[T]] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last.Empty() {
		return result.FromError[handle.Shared[T]](result.NotOK("no sample available"))
	}
	return result.FromValue(d.last)
}

// Get returns a value-copy of the latest sample, or the zero value of T if
// nothing has been published yet.
func (d *DataElement[T]) Get() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last.Empty() {
		var zero T
		return zero
	}
	return d.last.Deref()
}

// RegisterDataElementHandler registers fn as ownerModuleName's change
// callback. The handler starts active if the owner is already in the
// active-modules set (StartEventHandlerForModule has already been called
// for it), dormant otherwise.
func (d *DataElement[T]) RegisterDataElementHandler(ownerModuleName string, fn dataplane.DataHandlerFunc[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	active := d.activeOwners[ownerModuleName]
	d.subs = append(d.subs, &subscription[T]{owner: ownerModuleName, fn: fn, active: active})
}

// StartEventHandlerForModule activates every handler registered by owner,
// including ones registered later. Called by the controller when owner
// reaches Operational.
func (d *DataElement[T]) StartEventHandlerForModule(owner string) {
	d.setActiveForModule(owner, true)
}

// StopEventHandlerForModule deactivates every handler registered by owner.
// Called on module pause or shutdown.
func (d *DataElement[T]) StopEventHandlerForModule(owner string) {
	d.setActiveForModule(owner, false)
}

func (d *DataElement[T]) setActiveForModule(owner string, active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.activeOwners == nil {
		d.activeOwners = make(map[string]bool)
	}
	d.activeOwners[owner] = active
	for _, sub := range d.subs {
		if sub.owner == owner {
			sub.active = active
		}
	}
}

var (
	_ dataplane.Provider[int] = (*DataElement[int])(nil)
	_ dataplane.Consumer[int] = (*DataElement[int])(nil)
)
