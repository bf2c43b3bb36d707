package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ocrDPI is the render resolution handed to pdftoppm.
const ocrDPI = "300"

// IsOCRAvailable reports whether pdftoppm and tesseract are on PATH.
func IsOCRAvailable() bool {
	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	return err1 == nil && err2 == nil
}

// extractWithOCR renders each page to PNG and runs Tesseract on it. Page
// segmentation mode 6 with preserved inter-word spaces keeps the column
// gaps, so the text splits into cells like pdftotext -layout output.
func extractWithOCR(data []byte) ([]Page, error) {
	if !IsOCRAvailable() {
		return nil, fmt.Errorf("OCR tools not available (install poppler-utils and tesseract-ocr)")
	}

	filePath, cleanup, err := writeTempPDF(data)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	images, err := renderPages(filePath, tmpDir)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, img := range images {
		out, err := exec.Command("tesseract", img, "stdout",
			"-l", "eng", "--psm", "6", "-c", "preserve_interword_spaces=1").Output()
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, string(out))
	}

	pages := ocrPages(texts)
	if len(pages) == 0 {
		return nil, fmt.Errorf("tesseract OCR produced no text from %d page images", len(images))
	}
	return pages, nil
}

// renderPages converts the PDF to one PNG per page and returns the image
// paths in page order.
func renderPages(filePath, dir string) ([]string, error) {
	prefix := filepath.Join(dir, "page")
	if out, err := exec.Command("pdftoppm", "-r", ocrDPI, "-png", filePath, prefix).CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %v", err)
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	// pdftoppm zero-pads page numbers to a common width, but sort by the
	// number anyway.
	sort.Slice(images, func(a, b int) bool {
		return imageIndex(images[a]) < imageIndex(images[b])
	})
	if len(images) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}
	return images, nil
}

// imageIndex parses the page number from "page-07.png".
func imageIndex(path string) int {
	name := strings.TrimSuffix(filepath.Base(path), ".png")
	if i := strings.LastIndexByte(name, '-'); i >= 0 {
		if n, err := strconv.Atoi(name[i+1:]); err == nil {
			return n
		}
	}
	return 0
}

// ocrPages turns per-page OCR text into cell grids. Blank pages are
// dropped but keep their page number slot.
func ocrPages(texts []string) []Page {
	var pages []Page
	for i, text := range texts {
		if rows := layoutRows(text); len(rows) > 0 {
			pages = append(pages, Page{Number: i + 1, Rows: rows})
		}
	}
	return pages
}
