// Package analyzer is the pipeline entry point: raw tables in, summary and
// ledger out.
package analyzer

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/categorize"
	"github.com/insightdelivered/statement-analyzer/internal/ingest"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/normalize"
	"github.com/insightdelivered/statement-analyzer/internal/parser"
	"github.com/insightdelivered/statement-analyzer/internal/summary"
)

// Options configure a pipeline. Zero fields take the package defaults.
type Options struct {
	MinYear        int
	TopMerchants   int
	WeeklySpanDays int
	YearlySpanDays int
	// Categories adds keywords per category name.
	Categories map[string][]string
}

// Analyzer holds only immutable configuration, so one instance may serve
// concurrent runs.
type Analyzer struct {
	normalizers parser.Normalizers
	summary     summary.Options
	log         zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		normalizers: parser.Normalizers{
			Dates:       normalize.NewDateParser(opts.MinYear),
			Categorizer: categorize.New(opts.Categories),
		},
		summary: summary.Options{
			TopMerchants:   opts.TopMerchants,
			WeeklySpanDays: opts.WeeklySpanDays,
			YearlySpanDays: opts.YearlySpanDays,
		},
		log: log,
	}
}

// AnalyzeFile reads a statement file and runs the pipeline on its tables.
func (a *Analyzer) AnalyzeFile(filename string, r io.Reader) (*models.Result, error) {
	tables, err := ingest.Read(filename, r)
	if err != nil {
		a.log.Warn().Err(err).Str("file", filename).Msg("Failed to read statement")
		return nil, err
	}
	a.log.Debug().Str("file", filename).Int("tables", len(tables)).Msg("Statement read")
	return a.Run(tables)
}

// Run dispatches every table to a strategy, concatenates the transactions in
// table order and summarizes them once. A structural error in any table
// aborts the run; no partial result is returned.
func (a *Analyzer) Run(tables []*models.RawTable) (*models.Result, error) {
	var txns []models.Transaction
	diagnostics := make([]models.Diagnostic, 0, len(tables))

	for i, table := range tables {
		strategy := parser.Select(table, a.normalizers)
		extracted, err := strategy.Extract(table)
		if err != nil {
			a.log.Warn().Err(err).Int("table", i).Str("strategy", strategy.Name()).Msg("Table rejected")
			return nil, err
		}

		kept := 0
		for _, t := range extracted {
			if t.Valid() {
				txns = append(txns, t)
				kept++
			}
		}
		rows := len(table.Rows)
		if strategy.Name() == models.MethodMessy {
			rows = len(table.Grid())
		}
		d := models.Diagnostic{
			Table:    i,
			Source:   table.Source,
			Named:    table.Named(),
			Strategy: strategy.Name(),
			Rows:     rows,
			Kept:     kept,
			Skipped:  rows - kept,
		}
		diagnostics = append(diagnostics, d)
		a.log.Debug().
			Int("table", i).
			Str("source", d.Source).
			Str("strategy", d.Strategy).
			Int("rows", d.Rows).
			Int("kept", d.Kept).
			Int("skipped", d.Skipped).
			Msg("Table processed")
	}

	s, err := summary.Summarize(txns, a.summary)
	if err != nil {
		a.log.Warn().Err(err).Int("tables", len(tables)).Msg("No transactions extracted")
		return nil, err
	}

	a.log.Info().
		Int("transactions", s.Count).
		Float64("total_debit", s.TotalDebit).
		Float64("total_credit", s.TotalCredit).
		Str("granularity", string(s.Granularity)).
		Msg("Statement analyzed")

	return &models.Result{
		Summary:      *s,
		Transactions: models.Ledger(txns),
		Diagnostics:  diagnostics,
	}, nil
}
