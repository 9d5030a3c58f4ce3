package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/vehicle-runtime/internal/diagnostics"
)

// Export writes a workbook with one sheet of tick history and one sheet of
// budget-overrun history, read from store, to path.
func Export(ctx context.Context, store *diagnostics.Store, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	const ticksSheet = "Ticks"
	f.SetSheetName("Sheet1", ticksSheet)
	if err := writeTicks(ctx, f, store, ticksSheet); err != nil {
		return err
	}

	const overrunsSheet = "BudgetOverruns"
	if _, err := f.NewSheet(overrunsSheet); err != nil {
		return fmt.Errorf("report: creating %s sheet: %w", overrunsSheet, err)
	}
	if err := writeOverruns(ctx, f, store, overrunsSheet); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: saving %s: %w", path, err)
	}
	return nil
}

func writeTicks(ctx context.Context, f *excelize.File, store *diagnostics.Store, sheet string) error {
	rows, err := store.TicksSince(ctx, time.Unix(0, 0))
	if err != nil {
		return fmt.Errorf("report: reading ticks: %w", err)
	}

	header := []string{"Tick", "Executed", "Elapsed (ns)", "Recorded At"}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, cellAt(1, row), r.Tick)
		f.SetCellValue(sheet, cellAt(2, row), r.Executed)
		f.SetCellValue(sheet, cellAt(3, row), r.ElapsedNs)
		f.SetCellValue(sheet, cellAt(4, row), r.RecordedAt.Format(time.RFC3339))
	}
	return nil
}

func writeOverruns(ctx context.Context, f *excelize.File, store *diagnostics.Store, sheet string) error {
	rows, err := store.Overruns(ctx)
	if err != nil {
		return fmt.Errorf("report: reading overruns: %w", err)
	}

	header := []string{"Tick", "Task", "Owner", "Budget (ns)", "Actual (ns)", "Recorded At"}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, cellAt(1, row), r.Tick)
		f.SetCellValue(sheet, cellAt(2, row), r.TaskName)
		f.SetCellValue(sheet, cellAt(3, row), r.Owner)
		f.SetCellValue(sheet, cellAt(4, row), r.BudgetNs)
		f.SetCellValue(sheet, cellAt(5, row), r.ActualNs)
		f.SetCellValue(sheet, cellAt(6, row), r.RecordedAt.Format(time.RFC3339))
	}
	return nil
}

func cellAt(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
