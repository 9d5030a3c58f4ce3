// Package runtime implements the executable controller: module
// registration, dependency-ordered lifecycle orchestration, signal-driven
// shutdown, starting-stall detection, and the error-reporting pipeline that
// funnels module-local failures into the user-supplied Hooks.
//
// The run loop is a ticker selecting on a close channel, the same shape as
// a backoff-guarded service loop generalized from one service's private
// loop into the whole-process controller; logging throughout uses the
// zap.S().Named(...) idiom.
package runtime
