// Package writer renders analysis results as CSV ledgers or XLSX reports.
package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Writer renders a result to a stream or a file.
type Writer interface {
	Write(out io.Writer, result *models.Result) error
	WriteToFile(path string, result *models.Result) error
}

// ForPath picks the writer matching the output file extension.
func ForPath(path string, includeSummary bool) (Writer, error) {
	return ForFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."), includeSummary)
}

// ForFormat picks the writer for "csv" or "xlsx".
func ForFormat(format string, includeSummary bool) (Writer, error) {
	switch format {
	case "csv":
		return &CSVWriter{IncludeSummary: includeSummary}, nil
	case "xlsx":
		return &XLSXWriter{}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q (use .csv or .xlsx)", format)
}
