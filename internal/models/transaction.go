package models

import (
	"strings"
	"time"
)

// Category is the closed set of spend categories derived from a description.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryTransfer      Category = "Transfer"
	CategoryOther         Category = "Other"
)

// Categories lists every category in categorizer priority order, Other last.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryTransfer,
	CategoryOther,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c, true
		}
	}
	return "", false
}

// Extraction methods recorded on each transaction.
const (
	MethodTabular     = "tabular"
	MethodMessy       = "messy"
	MethodMessyPeeled = "messy-peeled"
)

// Transaction is one normalized statement line. It is built once by a
// strategy and never modified afterwards.
type Transaction struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
	Method      string    `json:"method,omitempty"`   // which extraction path matched
	Inferred    bool      `json:"inferred,omitempty"` // type keyword missing, defaulted to debit
}

// Valid reports whether the transaction may reach the aggregator.
func (t Transaction) Valid() bool {
	if strings.TrimSpace(t.Description) == "" || t.Date.IsZero() {
		return false
	}
	if t.Debit < 0 || t.Credit < 0 {
		return false
	}
	return t.Debit > 0 || t.Credit > 0
}

// LedgerEntry is the presentation form of a transaction.
type LedgerEntry struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Debit       float64  `json:"debit"`
	Credit      float64  `json:"credit"`
	Inferred    bool     `json:"inferred,omitempty"`
}

// DateLayout is the ISO date format used for ledger output.
const DateLayout = "2006-01-02"

// Ledger converts transactions into ledger entries, preserving order.
func Ledger(txns []Transaction) []LedgerEntry {
	out := make([]LedgerEntry, 0, len(txns))
	for _, t := range txns {
		out = append(out, LedgerEntry{
			Date:        t.Date.Format(DateLayout),
			Description: t.Description,
			Category:    t.Category,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Inferred:    t.Inferred,
		})
	}
	return out
}

// Diagnostic captures what the pipeline did with one input table.
type Diagnostic struct {
	Table    int    `json:"table"`
	Source   string `json:"source,omitempty"` // e.g. "csv", "xlsx:Sheet1", "pdf:page 2"
	Named    bool   `json:"named"`
	Strategy string `json:"strategy"`
	Rows     int    `json:"rows"`
	Kept     int    `json:"kept"`
	Skipped  int    `json:"skipped"`
}
