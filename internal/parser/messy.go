package parser

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/normalize"
)

// MessyStrategy scans a table row by row without trusting its header. It
// handles PDF grids where the header is missing, shifted, or merged into the
// data, and rows where the date, description and amount share one cell.
type MessyStrategy struct {
	Normalizers
}

func (s *MessyStrategy) Name() string {
	return models.MethodMessy
}

// peelMinLength is the shortest first cell worth trying to split into a
// leading date and trailing text.
const peelMinLength = 15

// layout holds the column positions the scanner reads from.
type layout struct {
	header                   int // row index of the discovered header, or -1
	date, desc, kind, amount int
}

// discoverLayout looks for a header row carrying a date label and a details
// label, and reads column roles from its cells. Roles it cannot find fall
// back to fixed positions: date first, description third, type and amount
// in the last two columns.
func discoverLayout(grid [][]string, width int) layout {
	last := width - 1
	if last < 0 {
		last = 0
	}
	l := layout{header: -1, date: -1, desc: -1, kind: -1, amount: -1}

	for i, row := range grid {
		if !isHeaderRow(row) {
			continue
		}
		l.header = i
		for j, cell := range row {
			c := strings.ToLower(strings.TrimSpace(cell))
			if l.date < 0 && strings.Contains(c, "date") {
				l.date = j
				continue
			}
			if l.desc < 0 && containsAny(c, detailKeywords) {
				l.desc = j
				continue
			}
			if l.kind < 0 && strings.Contains(c, "type") {
				l.kind = j
				continue
			}
			if l.amount < 0 && strings.Contains(c, "amount") {
				l.amount = j
			}
		}
		break
	}

	if l.date < 0 {
		l.date = 0
	}
	if l.desc < 0 {
		if l.header >= 0 {
			l.desc = min(l.date+1, last)
		} else {
			l.desc = min(2, last)
		}
	}
	if l.kind < 0 {
		l.kind = max(0, last-1)
	}
	if l.amount < 0 {
		l.amount = last
	}
	return l
}

// Extract returns one transaction per row that yields a date, a description
// and a positive amount. Every other row is discarded silently.
func (s *MessyStrategy) Extract(table *models.RawTable) ([]models.Transaction, error) {
	grid := table.Grid()
	l := discoverLayout(grid, table.Width())

	var transactions []models.Transaction
	for i, row := range grid {
		if i == l.header {
			continue
		}
		if txn, ok := s.scan(row, l); ok {
			transactions = append(transactions, txn)
		}
	}
	return transactions, nil
}

func (s *MessyStrategy) scan(row []string, l layout) (models.Transaction, bool) {
	cell := func(j int) string {
		if j < 0 || j >= len(row) {
			return ""
		}
		return strings.TrimSpace(normalize.Fold(row[j]))
	}

	date, ok := s.Dates.Parse(cell(l.date))
	if !ok && l.date+1 < len(row) && normalize.HasYearOrMonth(cell(l.date+1)) {
		// "Jan 5" | "2024" split across two cells.
		date, ok = s.Dates.Parse(cell(l.date) + " " + cell(l.date+1))
	}

	var peeled string
	if !ok && utf8.RuneCountInString(cell(0)) > peelMinLength {
		if d, rest, found := s.Dates.PeelLeadingDate(cell(0)); found {
			date, ok, peeled = d, true, rest
			cells := append([]string{rest}, row[1:]...)
			if rs := scanRow(cells); rs.amount > 0 {
				if desc := descriptionOf(rest); desc != "" {
					return s.emit(date, desc, rs, models.MethodMessyPeeled), true
				}
			}
		}
	}
	if !ok {
		return models.Transaction{}, false
	}

	desc := s.describe(row, l)
	if desc == "" && peeled != "" {
		desc = descriptionOf(peeled)
	}
	if desc == "" {
		desc = descriptionOf(normalize.StripLeadingDate(cell(0)))
	}
	if desc == "" || headerResidue[strings.ToLower(desc)] {
		return models.Transaction{}, false
	}

	found := scanRow(row)
	if found.amount <= 0 {
		found.amount = math.Abs(normalize.Amount(cell(l.kind) + " " + cell(l.amount)))
	}
	if found.amount <= 0 {
		return models.Transaction{}, false
	}
	return s.emit(date, desc, found, models.MethodMessy), true
}

// describe joins cells from the description column onward, stopping at a
// type marker, a currency amount, or the type/amount columns.
func (s *MessyStrategy) describe(row []string, l layout) string {
	var parts []string
	for j := l.desc; j < len(row); j++ {
		c := strings.TrimSpace(normalize.Fold(row[j]))
		if isTypeCell(c) || normalize.HasCurrencyGlyph(c) {
			break
		}
		if j > l.desc && (j == l.kind || j == l.amount) {
			break
		}
		if normalize.IsNullMarker(c) {
			continue
		}
		if j == l.date {
			if c = normalize.StripLeadingDate(c); c == "" {
				continue
			}
		}
		parts = append(parts, c)
	}
	return collapse(strings.Join(parts, " "))
}

// descriptionOf cuts free text at the first currency symbol.
func descriptionOf(text string) string {
	if i := strings.IndexAny(text, normalize.CurrencyGlyphs); i >= 0 {
		text = text[:i]
	}
	return collapse(text)
}

// rowScan is what an ordered scan of a row found.
type rowScan struct {
	kind   string  // upper-cased type keyword, "" if none
	amount float64 // absolute currency-tagged amount, 0 if none
}

// scanRow walks the cells left to right and each cell's matches left to
// right. The last type keyword and the last currency-tagged amount win.
func scanRow(cells []string) rowScan {
	var rs rowScan
	for _, c := range cells {
		c = normalize.Fold(c)
		for _, m := range typeKeyword.FindAllString(c, -1) {
			rs.kind = strings.ToUpper(m)
		}
		for _, m := range taggedAmount.FindAllStringSubmatch(c, -1) {
			rs.amount = math.Abs(normalize.Amount(m[1]))
		}
	}
	return rs
}

// emit places the amount on the side named by the type keyword. Without a
// recognised keyword the row is treated as a debit and marked inferred.
func (s *MessyStrategy) emit(date time.Time, desc string, rs rowScan, method string) models.Transaction {
	t := models.Transaction{
		Date:        date,
		Description: desc,
		Category:    s.categorize(desc),
		Method:      method,
	}
	switch {
	case creditTypes[rs.kind]:
		t.Credit = rs.amount
	case debitTypes[rs.kind]:
		t.Debit = rs.amount
	default:
		t.Debit = rs.amount
		t.Inferred = true
	}
	return t
}
