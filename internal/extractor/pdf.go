// Package extractor turns PDF statements into cell grids, one per page.
package extractor

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Page is one PDF page as rows of cells, top to bottom.
type Page struct {
	Number int
	Rows   [][]string
}

// Text returns the page text with cells joined by spaces.
func (p Page) Text() string {
	lines := make([]string, 0, len(p.Rows))
	for _, row := range p.Rows {
		lines = append(lines, strings.Join(row, " "))
	}
	return strings.Join(lines, "\n")
}

// Horizontal distances, in PDF units, between the end of one text run and
// the start of the next.
const (
	cellGap = 10.0 // wider gaps start a new cell
	wordGap = 1.5  // wider gaps insert a space inside a cell
)

// ExtractPages reads a PDF and returns the cell grid of every page that has
// text. The structured library is tried first; if its output is unreadable
// the external pdftotext command (poppler-utils) is used when installed, and
// Tesseract OCR after that.
func ExtractPages(data []byte) ([]Page, error) {
	pages, libErr := extractWithLibrary(data)
	if libErr == nil && isReadable(pages) {
		return pages, nil
	}

	popplerPages, popplerErr := extractWithPdftotext(data)
	if popplerErr == nil && isReadable(popplerPages) {
		return popplerPages, nil
	}

	// Scanned statements have no text layer at all.
	if ocrPages, ocrErr := extractWithOCR(data); ocrErr == nil && isReadable(ocrPages) {
		return ocrPages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %v. The PDF may use custom fonts or be image-based/scanned", libErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted from PDF. The file may be image-based/scanned, or uses custom font encodings that cannot be decoded")
}

// extractWithLibrary uses the ledongthuc/pdf library. The library panics on
// some malformed files; the panic is returned as an error.
func extractWithLibrary(data []byte) (pages []Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	// Method 1: positioned text runs, best column separation.
	pages = extractByContent(r, numPages)
	if isReadable(pages) {
		return pages, nil
	}

	// Method 2: the library's own row grouping.
	return extractByRow(r, numPages), nil
}

// Method 1: Page.Content(). Group text runs by Y coordinate into rows,
// sort each row by X, and split cells on wide horizontal gaps.
func extractByContent(r *pdf.Reader, numPages int) []Page {
	var pages []Page
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		// Round Y to the nearest integer to group runs into rows.
		rowMap := make(map[int][]pdf.Text)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], t)
		}

		// PDF Y goes bottom-to-top.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var rows [][]string
		for _, y := range yKeys {
			if cells := cellsFromRuns(rowMap[y]); len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		if len(rows) > 0 {
			pages = append(pages, Page{Number: i, Rows: rows})
		}
	}
	return pages
}

// Method 2: GetTextByRow, where the library groups words itself.
func extractByRow(r *pdf.Reader, numPages int) []Page {
	var pages []Page
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		textRows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var rows [][]string
		for _, row := range textRows {
			if cells := cellsFromRuns(row.Content); len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
		if len(rows) > 0 {
			pages = append(pages, Page{Number: i, Rows: rows})
		}
	}
	return pages
}

// cellsFromRuns sorts one row's text runs left to right and joins them
// into cells.
func cellsFromRuns(runs []pdf.Text) []string {
	sort.SliceStable(runs, func(a, b int) bool {
		return runs[a].X < runs[b].X
	})

	var cells []string
	var cur strings.Builder
	var prevEnd float64
	for j, t := range runs {
		if j > 0 {
			gap := t.X - prevEnd
			switch {
			case gap > cellGap:
				cells = appendCell(cells, cur.String())
				cur.Reset()
			case gap > wordGap:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return appendCell(cells, cur.String())
}

func appendCell(cells []string, cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return cells
	}
	return append(cells, cell)
}

// layoutColumns splits a pdftotext -layout line on runs of two or more
// spaces, which is how that tool separates columns.
var layoutColumns = regexp.MustCompile(`\s{2,}`)

// extractWithPdftotext uses the external pdftotext command from
// poppler-utils as a fallback for PDFs that the Go library cannot handle.
func extractWithPdftotext(data []byte) ([]Page, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %v", err)
	}

	filePath, cleanup, err := writeTempPDF(data)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	// One call per page keeps page boundaries.
	var pages []Page
	for i := 1; i <= pageCount(filePath); i++ {
		pageStr := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, filePath, "-").Output()
		if err != nil {
			continue
		}
		if rows := layoutRows(string(out)); len(rows) > 0 {
			pages = append(pages, Page{Number: i, Rows: rows})
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftotext produced no output")
	}
	return pages, nil
}

// writeTempPDF stores data in a temp file for the external tools. The
// returned func removes it.
func writeTempPDF(data []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %v", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %v", err)
	}
	tmp.Close()
	return tmp.Name(), cleanup, nil
}

// pageCount asks pdfinfo for the number of pages, defaulting to 1.
func pageCount(filePath string) int {
	out, err := exec.Command("pdfinfo", filePath).Output()
	if err != nil {
		return 1
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
			if err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

func layoutRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		var cells []string
		for _, c := range layoutColumns.Split(strings.TrimSpace(line), -1) {
			cells = appendCell(cells, c)
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// textQuality returns the ratio of basic readable characters (ASCII letters,
// digits, common punctuation, whitespace, currency symbols) to total
// characters. unicode.IsLetter is too broad: it accepts the accented
// garbage produced by identity-encoded fonts.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"%&@#!?+=*", r) ||
			strings.ContainsRune("₹$£€¥", r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually all bank statements. Text containing none
// of them is likely garbage.
var commonWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "narration",
	"paid", "opening", "closing", "transfer", "withdrawal", "deposit",
	"page", "period",
}

// isReadable requires more than 50 characters of text, over 60% of them
// readable, and at least one common statement word.
func isReadable(pages []Page) bool {
	var texts []string
	for _, p := range pages {
		texts = append(texts, p.Text())
	}
	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if len(text) <= 50 || textQuality(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
