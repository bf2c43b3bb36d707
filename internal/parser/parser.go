package parser

import (
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/categorize"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/normalize"
)

// Strategy converts one raw table into transactions.
type Strategy interface {
	// Extract returns the transactions found in table, in row order.
	Extract(table *models.RawTable) ([]models.Transaction, error)
	// Name identifies the strategy in diagnostics.
	Name() string
}

// Normalizers are the cell-level collaborators shared by both strategies.
// The zero value uses the default year floor and keyword sets.
type Normalizers struct {
	Dates       normalize.DateParser
	Categorizer *categorize.Categorizer
}

func (n Normalizers) categorize(desc string) models.Category {
	if n.Categorizer == nil {
		return categorize.Categorize(desc)
	}
	return n.Categorizer.Categorize(desc)
}

// Select picks the tabular strategy when the column names show date,
// description and amount evidence together, and the messy scanner otherwise.
// There is no partial mode: two signals out of three fall to the scanner.
func Select(table *models.RawTable, n Normalizers) Strategy {
	if HasTabularEvidence(table.ColumnNames()) {
		return &TabularStrategy{Normalizers: n}
	}
	return &MessyStrategy{Normalizers: n}
}

// HasTabularEvidence reports whether the joined column names contain a date
// token, a description token and an amount token.
func HasTabularEvidence(names []string) bool {
	joined := strings.ToLower(strings.Join(names, " "))
	return strings.Contains(joined, "date") &&
		containsAny(joined, descriptionKeywords) &&
		hasAmountEvidence(joined)
}

func hasAmountEvidence(s string) bool {
	return containsAny(s, amountKeywords) || drCrToken.MatchString(s)
}
