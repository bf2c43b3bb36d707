package parser

import (
	"math"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/normalize"
)

// TabularStrategy extracts transactions from a table whose header names
// identify the date, description and amount columns.
type TabularStrategy struct {
	Normalizers
}

func (s *TabularStrategy) Name() string {
	return models.MethodTabular
}

type amountMode int

const (
	modeDebitCredit amountMode = iota // separate debit and credit columns
	modeAmountType                    // one amount column plus a type column
	modeAmount                        // one signed amount column
)

// columnRoles maps logical roles to header names. Empty means absent.
type columnRoles struct {
	date, description string
	debit, credit     string
	amount, kind      string
	mode              amountMode
}

// resolveRoles assigns header columns to roles. An explicit debit+credit
// pair wins over a single amount column, and amount+type wins over a bare
// amount column.
func resolveRoles(names []string) (columnRoles, error) {
	var r columnRoles
	for _, name := range names {
		if name == "" {
			continue
		}
		switch {
		case strings.Contains(name, "date"):
			if r.date == "" {
				r.date = name
			}
		case isTypeColumn(name):
			if r.kind == "" {
				r.kind = name
			}
		case containsAny(name, debitColumnKeywords) || (drToken.MatchString(name) && !crToken.MatchString(name)):
			if r.debit == "" {
				r.debit = name
			}
		case containsAny(name, creditColumnKeywords) || (crToken.MatchString(name) && !drToken.MatchString(name)):
			if r.credit == "" {
				r.credit = name
			}
		case strings.Contains(name, "amount") || strings.Contains(name, "amt"):
			if r.amount == "" {
				r.amount = name
			}
		case containsAny(name, descriptionKeywords):
			if r.description == "" {
				r.description = name
			}
		}
	}

	if r.date == "" || r.description == "" {
		return r, models.NewStatementError("Could not find standard Date and Description columns in the file.")
	}

	switch {
	case r.debit != "" && r.credit != "":
		r.mode = modeDebitCredit
	case r.amount != "" && r.kind != "":
		r.mode = modeAmountType
	case r.amount != "":
		r.mode = modeAmount
	case r.debit != "" || r.credit != "":
		r.mode = modeDebitCredit
	default:
		return r, models.NewStatementError("Could not find standard Amount or Debit/Credit columns in the file.")
	}
	return r, nil
}

func isTypeColumn(name string) bool {
	if strings.Contains(name, "type") {
		return true
	}
	if drToken.MatchString(name) && crToken.MatchString(name) {
		return true
	}
	return strings.Contains(name, "debit") && strings.Contains(name, "credit")
}

// Extract walks the rows in order. Rows with an invalid date, an empty
// description or no positive amount are skipped.
func (s *TabularStrategy) Extract(table *models.RawTable) ([]models.Transaction, error) {
	if !table.Named() {
		return nil, models.NewStatementError("Could not find standard Date and Description columns in the file.")
	}
	roles, err := resolveRoles(table.ColumnNames())
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	for _, row := range table.NamedRows() {
		date, ok := s.Dates.Parse(row.Get(roles.date))
		if !ok {
			continue
		}

		desc := collapse(normalize.Fold(row.Get(roles.description)))
		if normalize.IsNullMarker(desc) {
			continue
		}

		debit, credit := roles.amounts(row)
		if debit <= 0 && credit <= 0 {
			continue
		}

		transactions = append(transactions, models.Transaction{
			Date:        date,
			Description: desc,
			Category:    s.categorize(desc),
			Debit:       debit,
			Credit:      credit,
			Method:      models.MethodTabular,
		})
	}
	return transactions, nil
}

func (r columnRoles) amounts(row models.NamedRow) (debit, credit float64) {
	switch r.mode {
	case modeDebitCredit:
		if r.debit != "" {
			debit = math.Abs(normalize.Amount(row.Get(r.debit)))
		}
		if r.credit != "" {
			credit = math.Abs(normalize.Amount(row.Get(r.credit)))
		}
	case modeAmountType:
		amt := math.Abs(normalize.Amount(row.Get(r.amount)))
		if creditTypeValue.MatchString(row.Get(r.kind)) {
			credit = amt
		} else {
			debit = amt
		}
	case modeAmount:
		amt := normalize.Amount(row.Get(r.amount))
		if amt < 0 {
			credit = -amt
		} else {
			debit = amt
		}
	}
	return debit, credit
}
