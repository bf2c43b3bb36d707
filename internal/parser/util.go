package parser

import (
	"regexp"
	"strings"
)

// Column-name keyword families. Each header column is assigned to at most
// one role, tested in the order date, type, debit, credit, amount,
// description.
var (
	descriptionKeywords = []string{
		"desc", "particulars", "narration", "merchant", "details", "remarks", "payee",
	}
	amountKeywords = []string{"debit", "credit", "withdrawal", "deposit", "amount"}

	debitColumnKeywords  = []string{"debit", "withdrawal", "paid out", "money out"}
	creditColumnKeywords = []string{"credit", "deposit", "paid in", "money in"}
)

// drCrToken matches the "dr"/"cr" abbreviations as whole words, so that
// "description" is not read as amount evidence.
var drCrToken = regexp.MustCompile(`\b(?:dr|cr)\b`)

var (
	drToken = regexp.MustCompile(`\bdr\b`)
	crToken = regexp.MustCompile(`\bcr\b`)
)

// creditTypeValue matches type-column values that put the amount on the
// credit side.
var creditTypeValue = regexp.MustCompile(`(?i)\b(?:credit|cr|c|deposit|received|refund)\b`)

// Row-level keywords used by the positional scanner.
var (
	// typeKeyword matches a transaction type anywhere in a cell.
	typeKeyword = regexp.MustCompile(`(?i)\b(?:debit|credit|received|paid|sent|refund|withdrawal|deposit|dr|cr)\b`)
	// taggedAmount matches an amount carrying a currency marker.
	taggedAmount = regexp.MustCompile(`(?i)(?:[₹$£€¥]|\brs\.?|\binr\b)\s*([-+]?\d[\d,]*(?:\.\d+)?)`)

	debitTypes  = map[string]bool{"DEBIT": true, "PAID": true, "WITHDRAWAL": true, "SENT": true, "DR": true}
	creditTypes = map[string]bool{"CREDIT": true, "RECEIVED": true, "DEPOSIT": true, "REFUND": true, "CR": true}

	// typeCells are whole-cell type markers that end a description.
	typeCells = map[string]bool{
		"DEBIT": true, "CREDIT": true, "RECEIVED": true, "PAID": true,
		"SENT": true, "REFUND": true, "DR": true, "CR": true,
	}

	// detailKeywords identify the description column in a header row.
	detailKeywords = []string{"transaction", "detail", "description", "narration", "particular"}

	// headerResidue are descriptions left over from header rows.
	headerResidue = map[string]bool{
		"transaction details": true,
		"date transaction":    true,
		"details":             true,
	}
)

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// isTypeCell reports whether the whole cell is a transaction type marker.
func isTypeCell(cell string) bool {
	return typeCells[strings.ToUpper(strings.Trim(strings.TrimSpace(cell), "."))]
}

// isHeaderRow reports whether a row reads like the header of a
// transaction table: a date label plus a details label.
func isHeaderRow(row []string) bool {
	joined := strings.ToLower(strings.Join(row, " "))
	return strings.Contains(joined, "date") && containsAny(joined, detailKeywords)
}

// collapse joins whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
