// Package module defines the abstract lifecycle every application module
// implements and the Control capability the runtime injects into it at
// Init time, through which the module reports progress back
// (ReportOperational, ReportError, SkipStartingOfModule) instead of the
// runtime polling it.
//
// Each module is a small, single-purpose interface implemented by one
// concrete type, wired together at construction rather than through a
// framework registry.
package module
