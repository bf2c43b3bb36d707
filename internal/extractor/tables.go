package extractor

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

var headerAmountWords = []string{"amount", "debit", "credit", "withdrawal", "deposit"}

// headerIndex returns the first row naming a date column and an amount
// column, or -1.
func headerIndex(rows [][]string) int {
	for i, row := range rows {
		joined := strings.ToLower(strings.Join(row, " "))
		if !strings.Contains(joined, "date") {
			continue
		}
		for _, w := range headerAmountWords {
			if strings.Contains(joined, w) {
				return i
			}
		}
	}
	return -1
}

// Tables converts page grids into raw tables, one per page with at least
// two rows. A page with a recognizable header row becomes a named table
// starting at that row; the text above it (bank name, address, account
// summary) is dropped. Other pages are kept as positional tables.
func Tables(pages []Page) ([]*models.RawTable, error) {
	var tables []*models.RawTable
	for _, p := range pages {
		if len(p.Rows) < 2 {
			continue
		}
		var t *models.RawTable
		if h := headerIndex(p.Rows); h >= 0 && h+1 < len(p.Rows) {
			t = models.NewNamedTable(p.Rows[h], p.Rows[h+1:])
		} else {
			t = models.NewPositionalTable(p.Rows)
		}
		t.Source = fmt.Sprintf("pdf:page %d", p.Number)
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return nil, models.NewStatementError("No valid transaction tables found in PDF.")
	}
	return tables, nil
}
