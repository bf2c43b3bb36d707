package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-analyzer/internal/analyzer"
	"github.com/insightdelivered/statement-analyzer/internal/api"
	"github.com/insightdelivered/statement-analyzer/internal/config"
	"github.com/insightdelivered/statement-analyzer/internal/logger"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/writer"
)

func main() {
	// CLI flags
	outputFlag := flag.String("output", "", "Ledger output path, .csv or .xlsx (defaults to <input>-ledger.csv)")
	summaryFlag := flag.Bool("summary", true, "Include summary rows in the output file")
	jsonFlag := flag.Bool("json", false, "Print the full result as JSON instead of the text summary")
	configFlag := flag.String("config", "", "YAML config file")
	serveFlag := flag.Bool("serve", false, "Start the HTTP service instead of processing files")
	verboseFlag := flag.Bool("verbose", false, "Log per-table diagnostics")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Analyzer
by Insight Delivered (QEA AutoLens)

Reads bank statements (CSV, XLSX or PDF), normalizes every transaction
into a ledger, categorizes it and summarizes spending.

Usage:
  statement-analyzer [flags] <statement> [statement2 ...]
  statement-analyzer --serve [--config=config.yaml]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Print the spending summary and write statement-ledger.csv
  statement-analyzer statement.pdf

  # Write an Excel report with Ledger and Summary sheets
  statement-analyzer --output=report.xlsx statement.csv

  # Machine-readable result
  statement-analyzer --json statement.xlsx > result.json

  # Run the web service on :8000
  statement-analyzer --serve

Environment:
  STATEMENT_ADDR, STATEMENT_BODY_LIMIT_MB, STATEMENT_STATIC_DIR,
  STATEMENT_MIN_YEAR, STATEMENT_TOP_MERCHANTS, STATEMENT_WEEKLY_SPAN_DAYS,
  STATEMENT_YEARLY_SPAN_DAYS, STATEMENT_LOG_LEVEL, STATEMENT_LOG_FORMAT,
  STATEMENT_CONFIG (a whole YAML document)
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-analyzer v%s\n", api.Version)
		os.Exit(0)
	}

	if *helpFlag || (!*serveFlag && flag.NArg() == 0) {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}

	a := cfg.Analysis
	opts := analyzer.Options{
		MinYear:        a.MinYear,
		TopMerchants:   a.TopMerchants,
		WeeklySpanDays: a.WeeklySpanDays,
		YearlySpanDays: a.YearlySpanDays,
		Categories:     a.Categories,
	}

	if *serveFlag {
		log := logger.New(cfg.Log.Level, cfg.Log.Format)
		if err := serve(cfg, analyzer.New(opts, log), log); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
		return
	}

	// The CLI prints its own progress; logs only surface problems.
	level := "warn"
	if *verboseFlag {
		level = "debug"
	}
	an := analyzer.New(opts, logger.New(level, cfg.Log.Format))

	inputFiles := flag.Args()
	if *outputFlag != "" && len(inputFiles) > 1 {
		fatalf("--output can only be used with a single input file\n")
	}

	for _, inputPath := range inputFiles {
		if err := processFile(an, inputPath, *outputFlag, *summaryFlag, *jsonFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(an *analyzer.Analyzer, inputPath, outputPath string, includeSummary, asJSON bool) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	defer f.Close()

	if !asJSON {
		fmt.Printf("Processing: %s\n", inputPath)
	}

	result, err := an.AnalyzeFile(filepath.Base(inputPath), f)
	if err != nil {
		return err
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "-ledger.csv"
	}
	w, err := writer.ForPath(outPath, includeSummary)
	if err != nil {
		return err
	}
	if err := w.WriteToFile(outPath, result); err != nil {
		return fmt.Errorf("output write failed: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(result)
	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func printSummary(result *models.Result) {
	s := result.Summary
	heading := color.New(color.FgCyan, color.Bold)
	debit := color.New(color.FgRed)
	credit := color.New(color.FgGreen)

	for _, d := range result.Diagnostics {
		fmt.Printf("  Table %d (%s): %s strategy, %d of %d row(s) kept\n", d.Table+1, d.Source, d.Strategy, d.Kept, d.Rows)
	}
	fmt.Printf("  Found %d transaction(s)\n", s.Count)

	inferred := 0
	for _, t := range result.Transactions {
		if t.Inferred {
			inferred++
		}
	}
	if inferred > 0 {
		color.Yellow("  Warning: %d row(s) had no Debit/Credit marker and were counted as debits.\n", inferred)
	}

	fmt.Println()
	heading.Println("  Totals")
	fmt.Print("    Debit:  ")
	debit.Printf("%12.2f\n", s.TotalDebit)
	fmt.Print("    Credit: ")
	credit.Printf("%12.2f\n", s.TotalCredit)

	if len(s.TopMerchants) > 0 {
		fmt.Println()
		heading.Println("  Top Merchants")
		for i, m := range s.TopMerchants {
			fmt.Printf("    %d. %-40s %12.2f\n", i+1, m.Merchant, m.Amount)
		}
	}

	if len(s.CategoryBreakdown) > 0 {
		fmt.Println()
		heading.Println("  Categories")
		for _, c := range models.Categories {
			if amt, ok := s.CategoryBreakdown[c]; ok {
				fmt.Printf("    %-15s %12.2f\n", c, amt)
			}
		}
	}

	if len(s.TimeSpends) > 0 {
		fmt.Println()
		heading.Printf("  %s\n", s.TimeLabel)
		for _, p := range s.TimeSpends {
			fmt.Printf("    %-10s %12.2f\n", p.Period, p.Amount)
		}
	}
	fmt.Println()
}

// serve runs the HTTP service until SIGINT or SIGTERM.
func serve(cfg *config.Config, an *analyzer.Analyzer, log zerolog.Logger) error {
	h := api.NewHandler(an, cfg.Server.StaticDir, log)
	app := api.NewApp(h, cfg.BodyLimitBytes())

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("version", api.Version).Msg("Starting server")
		errCh <- app.Listen(cfg.Server.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server")
	}
	return app.ShutdownWithTimeout(10 * time.Second)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
