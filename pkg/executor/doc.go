// Package executor implements the per-module facade over the scheduler.
// Every module holds exactly one Executor; it is how the module registers
// periodic tasks without needing to know about the scheduler's insertion
// algorithm or tick thread. A service holding a *scheduler.Scheduler
// reference and dispatching work through it is generalized here to
// recurring task registration plus pause/resume of a whole module's tasks.
package executor
