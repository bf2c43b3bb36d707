// Package summary aggregates a finalized transaction list into totals, top
// merchants, a category breakdown and a time-bucketed spend series.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

const (
	DefaultTopMerchants   = 5
	DefaultWeeklySpanDays = 60
)

// Options tune the aggregation. Zero fields take the defaults; a zero
// YearlySpanDays disables yearly buckets.
type Options struct {
	TopMerchants   int
	WeeklySpanDays int
	YearlySpanDays int
}

func (o Options) withDefaults() Options {
	if o.TopMerchants <= 0 {
		o.TopMerchants = DefaultTopMerchants
	}
	if o.WeeklySpanDays <= 0 {
		o.WeeklySpanDays = DefaultWeeklySpanDays
	}
	return o
}

// Summarize computes the summary. An empty list is a structural error: a run
// with nothing to summarize fails instead of returning zeros.
//
// Sums are kept at full float precision and rounded to two decimals only
// when written into the result.
func Summarize(txns []models.Transaction, opts Options) (*models.Summary, error) {
	if len(txns) == 0 {
		return nil, models.NewStatementError("No valid transactions found in the file. Check that it contains Date, Description and Amount data.")
	}
	opts = opts.withDefaults()

	var totalDebit, totalCredit float64
	merchants := newOrderedSums()
	categories := make(map[models.Category]float64)
	first, last := txns[0].Date, txns[0].Date

	for _, t := range txns {
		totalDebit += t.Debit
		totalCredit += t.Credit
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
		if t.Debit > 0 {
			merchants.add(t.Description, t.Debit)
			categories[t.Category] += t.Debit
		}
	}

	s := &models.Summary{
		TotalDebit:        round(totalDebit),
		TotalCredit:       round(totalCredit),
		TopMerchants:      topMerchants(merchants, opts.TopMerchants),
		CategoryBreakdown: make(map[models.Category]float64, len(categories)),
		Count:             len(txns),
	}
	for cat, v := range categories {
		s.CategoryBreakdown[cat] = round(v)
	}

	s.Granularity = granularity(spanDays(first, last), opts)
	s.TimeLabel = s.Granularity.Label()
	s.TimeSpends = timeSpends(txns, s.Granularity)
	return s, nil
}

func spanDays(first, last time.Time) int {
	return int(last.Sub(first).Hours() / 24)
}

func granularity(span int, opts Options) models.Granularity {
	switch {
	case span <= opts.WeeklySpanDays:
		return models.Weekly
	case opts.YearlySpanDays > 0 && span > opts.YearlySpanDays:
		return models.Yearly
	default:
		return models.Monthly
	}
}

// PeriodKey formats the bucket a date falls into: ISO week "2024-W01",
// month "2024-01" or year "2024". Keys of one granularity sort
// chronologically as strings.
func PeriodKey(t time.Time, g models.Granularity) string {
	switch g {
	case models.Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case models.Yearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

func timeSpends(txns []models.Transaction, g models.Granularity) []models.PeriodSpend {
	sums := make(map[string]float64)
	for _, t := range txns {
		if t.Debit > 0 {
			sums[PeriodKey(t.Date, g)] += t.Debit
		}
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.PeriodSpend, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.PeriodSpend{Period: k, Amount: round(sums[k])})
	}
	return out
}

// topMerchants returns the n largest sums, descending. The sort is stable,
// so equal sums keep the order their description was first seen in.
func topMerchants(sums *orderedSums, n int) []models.MerchantSpend {
	out := make([]models.MerchantSpend, 0, len(sums.keys))
	for _, k := range sums.keys {
		out = append(out, models.MerchantSpend{Merchant: k, Amount: sums.values[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	if len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Amount = round(out[i].Amount)
	}
	return out
}

// orderedSums accumulates per-key totals and remembers first-seen order.
type orderedSums struct {
	keys   []string
	values map[string]float64
}

func newOrderedSums() *orderedSums {
	return &orderedSums{values: make(map[string]float64)}
}

func (o *orderedSums) add(key string, v float64) {
	if _, seen := o.values[key]; !seen {
		o.keys = append(o.keys, key)
	}
	o.values[key] += v
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
