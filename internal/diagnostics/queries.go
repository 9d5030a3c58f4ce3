package diagnostics

const (
	createTicksTable = `
		CREATE TABLE IF NOT EXISTS tick_log (
			tick          BIGINT NOT NULL,
			executed      VARCHAR NOT NULL,
			elapsed_ns    BIGINT NOT NULL,
			recorded_at   TIMESTAMP NOT NULL DEFAULT now()
		)`

	createOverrunsTable = `
		CREATE TABLE IF NOT EXISTS budget_overrun_log (
			tick         BIGINT NOT NULL,
			task_name    VARCHAR NOT NULL,
			owner        VARCHAR NOT NULL,
			budget_ns    BIGINT NOT NULL,
			actual_ns    BIGINT NOT NULL,
			recorded_at  TIMESTAMP NOT NULL DEFAULT now()
		)`

	createPanicsTable = `
		CREATE TABLE IF NOT EXISTS task_panic_log (
			tick         BIGINT NOT NULL,
			task_name    VARCHAR NOT NULL,
			owner        VARCHAR NOT NULL,
			recovered    VARCHAR NOT NULL,
			recorded_at  TIMESTAMP NOT NULL DEFAULT now()
		)`

	createSamplesTable = `
		CREATE TABLE IF NOT EXISTS sample_log (
			element_name VARCHAR NOT NULL,
			value_json   VARCHAR NOT NULL,
			recorded_at  TIMESTAMP NOT NULL DEFAULT now()
		)`

	insertTick         = `INSERT INTO tick_log (tick, executed, elapsed_ns) VALUES (?, ?, ?)`
	insertOverrun      = `INSERT INTO budget_overrun_log (tick, task_name, owner, budget_ns, actual_ns) VALUES (?, ?, ?, ?, ?)`
	insertPanic        = `INSERT INTO task_panic_log (tick, task_name, owner, recovered) VALUES (?, ?, ?, ?)`
	insertSample       = `INSERT INTO sample_log (element_name, value_json) VALUES (?, ?)`
)
