// Package ingest reads uploaded statement files into raw tables.
package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-analyzer/internal/extractor"
	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Format is a supported input file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is the cause attached to the StatementError returned
// for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DetectFormat picks the format from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", &models.StatementError{
		Msg: "Unsupported file format. Please upload PDF, CSV or XLSX.",
		Err: ErrUnsupportedFormat,
	}
}

// Read converts a statement file into raw tables. Upstream parse failures
// are returned as StatementError with a user-facing message.
func Read(filename string, r io.Reader) ([]*models.RawTable, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return ReadPDF(r)
	}
}

// ReadCSV reads a comma-separated file whose first row is the header.
func ReadCSV(r io.Reader) ([]*models.RawTable, error) {
	reader := gocsv.LazyCSVReader(r)
	if cr, ok := reader.(*csv.Reader); ok {
		cr.FieldsPerRecord = -1
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, csvError(errors.Wrap(err, "csv tokenizer"))
	}
	records = dropBlankRows(records)
	if len(records) == 0 {
		return nil, csvError(errors.New("file has no header row"))
	}
	records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")

	t := models.NewNamedTable(records[0], records[1:])
	t.Source = string(FormatCSV)
	return []*models.RawTable{t}, nil
}

func csvError(err error) error {
	return models.WrapStatementError(err, "Failed to read CSV. Ensure it is a valid comma-separated file.")
}

// ReadXLSX reads the first worksheet that has a header row and at least one
// data row. The first non-blank row of that sheet is the header.
func ReadXLSX(r io.Reader) ([]*models.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, xlsxError(errors.Wrap(err, "open workbook"))
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, xlsxError(errors.Wrapf(err, "read sheet %s", sheet))
		}
		rows = dropBlankRows(rows)
		if len(rows) < 2 {
			continue
		}
		t := models.NewNamedTable(rows[0], rows[1:])
		t.Source = string(FormatXLSX) + ":" + sheet
		return []*models.RawTable{t}, nil
	}
	return nil, xlsxError(errors.New("no worksheet with data rows"))
}

func xlsxError(err error) error {
	return models.WrapStatementError(err, "Failed to read XLSX. Ensure the first sheet holds the transaction table.")
}

// ReadPDF extracts one raw table per PDF page.
func ReadPDF(r io.Reader) ([]*models.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pdfError(errors.Wrap(err, "read upload"))
	}
	pages, err := extractor.ExtractPages(data)
	if err != nil {
		return nil, pdfError(errors.Wrap(err, "extract pages"))
	}
	return extractor.Tables(pages)
}

func pdfError(err error) error {
	return models.WrapStatementError(err, "Failed to extract tables from PDF.")
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
