// Package scheduler implements the cooperative, tick-driven periodic task
// runner at the heart of the runtime.
//
// # Tick model
//
// The scheduler owns one tick period. A dedicated goroutine ("tick thread")
// sleeps until the next tick boundary, snapshots the tick index, and walks
// the task list in order, running every task whose active flag is set and
// whose period/offset match the tick.
//
//	┌────────────────────────────────────────────────────────────┐
//	│                     Scheduler (tick thread)                 │
//	├────────────────────────────────────────────────────────────┤
//	│  tick N  →  for each task in list order:                    │
//	│               if active && N mod period == offset:          │
//	│                 run, time it, compare against budget        │
//	└────────────────────────────────────────────────────────────┘
//
// # Ordering
//
// Tasks are kept in an eligibility order that is a legal topological
// extension of the "run-after module" and "run-after peer task"
// constraints declared at registration. AddTask performs a single O(N)
// insertion: the new task is placed immediately after the last task in the
// current list that it must not overtake, and nowhere else — this is the
// earliest legal position, so insertion order is stable.
//
// # Budgets and faults
//
// A budget overrun is observed and logged through the injected Observer; it
// never cancels or kills the task. A panic escaping a task body is
// recovered at the scheduler boundary and forwarded to the owning module's
// registered ErrorReporter as a non-critical error — the scheduler itself
// never stops because of a task fault.
//
// This package is storage-agnostic: it reports everything through the
// Observer interface rather than importing internal/diagnostics directly.
package scheduler
