// Package channel implements the in-process channel module: a module that
// implements both the provider and consumer facades of one data element,
// and (via Operation) one operation, performing fan-out without copying
// the published value.
//
// A concrete per-interface module embeds one DataElement[T] per data
// element and one Operation[In, Out] per operation it exposes; this
// package supplies the generic building blocks rather than per-interface
// generated types, since Go generics cannot express "N
// independently-typed fields" the way a code generator could.
//
// State is guarded by a single sync.Mutex around the current value, read
// through Get and written through Set/SetAllocated; fan-out notifies a
// snapshot of subscribers taken before any handler runs, so a handler that
// re-enters Set during its own callback never deadlocks or skips a peer.
package channel
