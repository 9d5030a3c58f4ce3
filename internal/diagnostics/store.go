package diagnostics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"

	"github.com/kubev2v/vehicle-runtime/pkg/scheduler"
)

// Store is the DuckDB-backed history facade. One Store is shared by the
// scheduler.Observer wiring, any number of Recorder[T] sample adapters, and
// internal/diagnostics/report's export path.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the DuckDB file at dsn and ensures the
// history tables exist.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: opening %s: %w", dsn, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	for _, stmt := range []string{createTicksTable, createOverrunsTable, createPanicsTable, createSamplesTable} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("diagnostics: migrating: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ObserveTick implements scheduler.Observer.
func (s *Store) ObserveTick(tick int64, executed []string, elapsed time.Duration) {
	data, _ := json.Marshal(executed)
	if _, err := s.db.Exec(insertTick, tick, string(data), elapsed.Nanoseconds()); err != nil {
		s.logWriteError("tick_log", err)
	}
}

// ObserveBudgetOverrun implements scheduler.Observer.
func (s *Store) ObserveBudgetOverrun(tick int64, taskName, owner string, budget, actual time.Duration) {
	if _, err := s.db.Exec(insertOverrun, tick, taskName, owner, budget.Nanoseconds(), actual.Nanoseconds()); err != nil {
		s.logWriteError("budget_overrun_log", err)
	}
}

// ObserveTaskPanic implements scheduler.Observer.
func (s *Store) ObserveTaskPanic(tick int64, taskName, owner string, recovered any) {
	if _, err := s.db.Exec(insertPanic, tick, taskName, owner, fmt.Sprint(recovered)); err != nil {
		s.logWriteError("task_panic_log", err)
	}
}

func (s *Store) recordSampleJSON(elementName, valueJSON string) {
	if _, err := s.db.Exec(insertSample, elementName, valueJSON); err != nil {
		s.logWriteError("sample_log", err)
	}
}

func (s *Store) logWriteError(table string, err error) {
	// Diagnostics writes are best-effort: a failed write never blocks the
	// tick thread or the publishing goroutine that triggered it.
	zap.S().Named("diagnostics").Warnw("write failed", "table", table, "error", err)
}

var _ scheduler.Observer = (*Store)(nil)
