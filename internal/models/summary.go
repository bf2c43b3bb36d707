package models

// Granularity of the time-bucketed spend series.
type Granularity string

const (
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Label returns the display label for the series.
func (g Granularity) Label() string {
	switch g {
	case Weekly:
		return "Weekly Spends"
	case Yearly:
		return "Yearly Spends"
	default:
		return "Monthly Spends"
	}
}

// MerchantSpend is one entry of the top merchants list.
type MerchantSpend struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
}

// PeriodSpend is the summed debit of one time bucket.
type PeriodSpend struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// Summary is the read-only aggregate over a finalized transaction list.
// All amounts are rounded to two decimals.
type Summary struct {
	TotalDebit        float64              `json:"totalDebit"`
	TotalCredit       float64              `json:"totalCredit"`
	TopMerchants      []MerchantSpend      `json:"topMerchants"` // descending amount
	CategoryBreakdown map[Category]float64 `json:"categoryBreakdown"`
	TimeSpends        []PeriodSpend        `json:"timeSpends"` // ascending period
	TimeLabel         string               `json:"timeLabel"`
	Granularity       Granularity          `json:"granularity"`
	Count             int                  `json:"count"`
}

// Result is the full output of one pipeline run.
type Result struct {
	Summary      Summary       `json:"summary"`
	Transactions []LedgerEntry `json:"transactions"`
	Diagnostics  []Diagnostic  `json:"diagnostics,omitempty"`
}
