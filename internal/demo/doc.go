// Package demo provides two small modules — speed (a provider) and
// dashboard (a consumer depending on speed) — that exercise the whole
// runtime core end to end: module lifecycle, scheduler ordering, channel
// fan-out and subscriber gating, and operation invocation.
//
// dashboard depends on speed the way a status-reporting module depends on
// the module that produces the status it reports, expressed here as a
// typed data-element publish/subscribe pair plus one operation.
package demo
