package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

const (
	ledgerSheet  = "Ledger"
	summarySheet = "Summary"
)

// XLSXWriter writes a workbook with a Ledger sheet and a Summary sheet.
type XLSXWriter struct{}

// WriteToFile writes the workbook to the given path.
func (w *XLSXWriter) WriteToFile(path string, result *models.Result) error {
	f, err := w.build(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, result *models.Result) error {
	f, err := w.build(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(result *models.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ledgerSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name ledger sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}

	ledger := [][]interface{}{{"Date", "Description", "Category", "Debit", "Credit"}}
	for _, e := range result.Transactions {
		ledger = append(ledger, []interface{}{e.Date, e.Description, string(e.Category), e.Debit, e.Credit})
	}
	if err := writeRows(f, ledgerSheet, ledger); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRows(f, summarySheet, summaryRows(&result.Summary)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func summaryRows(s *models.Summary) [][]interface{} {
	rows := [][]interface{}{
		{"Total Debit", s.TotalDebit},
		{"Total Credit", s.TotalCredit},
		{"Transactions", s.Count},
		{},
		{"Top Merchants"},
	}
	for _, m := range s.TopMerchants {
		rows = append(rows, []interface{}{m.Merchant, m.Amount})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Categories"})
	for _, cat := range models.Categories {
		if v, ok := s.CategoryBreakdown[cat]; ok {
			rows = append(rows, []interface{}{string(cat), v})
		}
	}
	rows = append(rows, []interface{}{}, []interface{}{s.TimeLabel})
	for _, p := range s.TimeSpends {
		rows = append(rows, []interface{}{p.Period, p.Amount})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
