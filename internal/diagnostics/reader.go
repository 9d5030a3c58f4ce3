package diagnostics

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// TickRecord is one row of tick_log.
type TickRecord struct {
	Tick       int64
	Executed   string
	ElapsedNs  int64
	RecordedAt time.Time
}

// OverrunRecord is one row of budget_overrun_log.
type OverrunRecord struct {
	Tick       int64
	TaskName   string
	Owner      string
	BudgetNs   int64
	ActualNs   int64
	RecordedAt time.Time
}

// TicksSince returns every recorded tick at or after since, oldest first,
// with the query built via Masterminds/squirrel.
func (s *Store) TicksSince(ctx context.Context, since time.Time) ([]TickRecord, error) {
	query, args, err := sq.Select("tick", "executed", "elapsed_ns", "recorded_at").
		From("tick_log").
		Where(sq.GtOrEq{"recorded_at": since}).
		OrderBy("tick ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var r TickRecord
		if err := rows.Scan(&r.Tick, &r.Executed, &r.ElapsedNs, &r.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Overruns returns every recorded budget overrun, oldest first.
func (s *Store) Overruns(ctx context.Context) ([]OverrunRecord, error) {
	query, args, err := sq.Select("tick", "task_name", "owner", "budget_ns", "actual_ns", "recorded_at").
		From("budget_overrun_log").
		OrderBy("tick ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverrunRecord
	for rows.Next() {
		var r OverrunRecord
		if err := rows.Scan(&r.Tick, &r.TaskName, &r.Owner, &r.BudgetNs, &r.ActualNs, &r.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
