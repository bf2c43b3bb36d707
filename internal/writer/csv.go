package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// CSVWriter writes the transaction ledger to CSV format.
type CSVWriter struct {
	// IncludeSummary prefixes the ledger with "# ..." summary rows.
	IncludeSummary bool
}

// ledgerRow is the CSV shape of one ledger entry.
type ledgerRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Category    string `csv:"Category"`
	Debit       amount `csv:"Debit"`
	Credit      amount `csv:"Credit"`
}

// amount renders with two decimals and leaves zero cells blank.
type amount float64

func (a amount) MarshalCSV() (string, error) {
	return formatAmount(float64(a)), nil
}

func ledgerRows(entries []models.LedgerEntry) []ledgerRow {
	rows := make([]ledgerRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ledgerRow{
			Date:        e.Date,
			Description: e.Description,
			Category:    string(e.Category),
			Debit:       amount(e.Debit),
			Credit:      amount(e.Credit),
		})
	}
	return rows
}

// WriteToFile writes the ledger to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the ledger in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.Result) error {
	if w.IncludeSummary {
		if err := writeSummaryRows(out, &result.Summary); err != nil {
			return err
		}
	}

	rows := ledgerRows(result.Transactions)
	if len(rows) == 0 {
		// gocsv writes nothing for an empty slice; keep the header.
		_, err := io.WriteString(out, "Date,Description,Category,Debit,Credit\n")
		return err
	}
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// writeSummaryRows writes the summary as comment rows above the ledger.
func writeSummaryRows(out io.Writer, s *models.Summary) error {
	writer := csv.NewWriter(out)
	writer.Write([]string{"# Total Debit", formatAmount(s.TotalDebit)})
	writer.Write([]string{"# Total Credit", formatAmount(s.TotalCredit)})
	writer.Write([]string{"# Transactions", strconv.Itoa(s.Count)})
	for _, m := range s.TopMerchants {
		writer.Write([]string{"# Top Merchant", m.Merchant, formatAmount(m.Amount)})
	}
	for _, cat := range models.Categories {
		if v, ok := s.CategoryBreakdown[cat]; ok {
			writer.Write([]string{"# Category", string(cat), formatAmount(v)})
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV summary: %w", err)
	}
	return nil
}

func formatAmount(amount float64) string {
	if amount == 0 {
		return ""
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
