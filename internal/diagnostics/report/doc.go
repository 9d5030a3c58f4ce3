// Package report renders the diagnostics store's tick and budget-overrun
// logs to a .xlsx workbook via xuri/excelize/v2, exposed through the CLI
// as `vehicled report export`. Construction follows excelize's own
// idiomatic usage (NewFile, SetSheetName, SetCellValue, SaveAs).
package report
