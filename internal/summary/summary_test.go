package summary

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func txn(date string, desc string, cat models.Category, debit, credit float64) models.Transaction {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{Date: d, Description: desc, Category: cat, Debit: debit, Credit: credit}
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil, Options{})
	var se *models.StatementError
	require.True(t, errors.As(err, &se))
}

func TestSummarizeWeekly(t *testing.T) {
	txns := []models.Transaction{
		txn("2024-01-01", "Swiggy", models.CategoryFood, 250.10, 0),
		txn("2024-01-03", "Uber", models.CategoryTransport, 150.20, 0),
		txn("2024-01-05", "Salary", models.CategoryOther, 0, 50000),
		txn("2024-01-11", "Swiggy", models.CategoryFood, 100.30, 0),
	}

	s, err := Summarize(txns, Options{})
	require.NoError(t, err)

	assert.Equal(t, models.Weekly, s.Granularity)
	assert.Equal(t, "Weekly Spends", s.TimeLabel)
	assert.Equal(t, 500.6, s.TotalDebit)
	assert.Equal(t, 50000.0, s.TotalCredit)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, []models.PeriodSpend{
		{Period: "2024-W01", Amount: 400.3},
		{Period: "2024-W02", Amount: 100.3},
	}, s.TimeSpends)
	assert.Equal(t, map[models.Category]float64{
		models.CategoryFood:      350.4,
		models.CategoryTransport: 150.2,
	}, s.CategoryBreakdown)
	assert.Equal(t, []models.MerchantSpend{
		{Merchant: "Swiggy", Amount: 350.4},
		{Merchant: "Uber", Amount: 150.2},
	}, s.TopMerchants)
}

func TestSummarizeMonthly(t *testing.T) {
	txns := []models.Transaction{
		txn("2024-07-19", "Netflix", models.CategoryEntertainment, 499, 0),
		txn("2024-01-01", "Swiggy", models.CategoryFood, 250, 0),
		txn("2024-01-20", "Swiggy", models.CategoryFood, 50, 0),
	}

	s, err := Summarize(txns, Options{})
	require.NoError(t, err)

	assert.Equal(t, models.Monthly, s.Granularity)
	assert.Equal(t, "Monthly Spends", s.TimeLabel)
	assert.Equal(t, []models.PeriodSpend{
		{Period: "2024-01", Amount: 300},
		{Period: "2024-07", Amount: 499},
	}, s.TimeSpends)
}

func TestSummarizeYearly(t *testing.T) {
	txns := []models.Transaction{
		txn("2022-03-01", "Rent", models.CategoryOther, 100, 0),
		txn("2024-03-01", "Rent", models.CategoryOther, 200, 0),
	}

	s, err := Summarize(txns, Options{YearlySpanDays: 400})
	require.NoError(t, err)
	assert.Equal(t, models.Yearly, s.Granularity)
	assert.Equal(t, []models.PeriodSpend{{Period: "2022", Amount: 100}, {Period: "2024", Amount: 200}}, s.TimeSpends)

	s, err = Summarize(txns, Options{})
	require.NoError(t, err)
	assert.Equal(t, models.Monthly, s.Granularity, "yearly buckets are off by default")
}

func TestSummarizeRounding(t *testing.T) {
	txns := []models.Transaction{
		txn("2024-01-01", "A", models.CategoryOther, 0.1, 0),
		txn("2024-01-01", "A", models.CategoryOther, 0.2, 0),
		txn("2024-01-02", "B", models.CategoryOther, 10.01, 0),
	}

	s, err := Summarize(txns, Options{})
	require.NoError(t, err)
	assert.Equal(t, 10.31, s.TotalDebit)
	assert.Equal(t, 0.3, s.TopMerchants[1].Amount)
}

func TestTopMerchantsLimitAndTies(t *testing.T) {
	var txns []models.Transaction
	for _, name := range []string{"F", "E", "D", "C", "B", "A"} {
		txns = append(txns, txn("2024-01-01", name, models.CategoryOther, 10, 0))
	}
	txns = append(txns, txn("2024-01-02", "Big", models.CategoryOther, 99, 0))

	s, err := Summarize(txns, Options{})
	require.NoError(t, err)

	var names []string
	for _, m := range s.TopMerchants {
		names = append(names, m.Merchant)
	}
	assert.Equal(t, []string{"Big", "F", "E", "D", "C"}, names)

	s, err = Summarize(txns, Options{TopMerchants: 2})
	require.NoError(t, err)
	assert.Len(t, s.TopMerchants, 2)
}

func TestSummarizeCreditOnly(t *testing.T) {
	s, err := Summarize([]models.Transaction{txn("2024-01-01", "Salary", models.CategoryOther, 0, 1000)}, Options{})
	require.NoError(t, err)
	assert.Empty(t, s.TopMerchants)
	assert.Empty(t, s.CategoryBreakdown)
	assert.Empty(t, s.TimeSpends)
	assert.Equal(t, 1000.0, s.TotalCredit)
}

func TestSummarizeIdempotent(t *testing.T) {
	txns := []models.Transaction{
		txn("2024-01-01", "Swiggy", models.CategoryFood, 250, 0),
		txn("2024-02-15", "Uber", models.CategoryTransport, 150, 0),
		txn("2024-02-16", "Zomato", models.CategoryFood, 150, 0),
	}
	a, err := Summarize(txns, Options{})
	require.NoError(t, err)
	b, err := Summarize(txns, Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPeriodKey(t *testing.T) {
	d := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-W01", PeriodKey(d, models.Weekly))
	assert.Equal(t, "2024-12", PeriodKey(d, models.Monthly))
	assert.Equal(t, "2024", PeriodKey(d, models.Yearly))
}
