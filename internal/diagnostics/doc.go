// Package diagnostics is the DuckDB-backed history store for scheduler
// events and published samples. It implements scheduler.Observer directly so it can be
// handed straight to scheduler.New, and channel.SampleRecorder so a
// channel.StoreBackedDataElement can persist every published sample.
//
// A *sql.DB is wrapped by a small Store facade (store.go), with SQL text
// kept in queries.go and Masterminds/squirrel used for the query shapes
// that benefit from a builder (sq.Select/Where), covering tick,
// budget-overrun, task-panic, and sample history tables.
package diagnostics
