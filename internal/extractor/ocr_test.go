package extractor

import (
	"os/exec"
	"testing"
)

func TestIsOCRAvailable(t *testing.T) {
	// The result depends on the system's installed tools.
	result := IsOCRAvailable()
	t.Logf("IsOCRAvailable() = %v", result)

	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	expected := err1 == nil && err2 == nil
	if result != expected {
		t.Errorf("IsOCRAvailable() = %v, but direct check says %v", result, expected)
	}
}

func TestExtractWithOCR_MissingTools(t *testing.T) {
	if IsOCRAvailable() {
		t.Skip("OCR tools are installed; cannot test missing-tool error path")
	}

	if _, err := extractWithOCR([]byte("%PDF-1.4")); err == nil {
		t.Error("expected error when OCR tools are not installed")
	}
}

func TestImageIndex(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/tmp/x/page-1.png", 1},
		{"/tmp/x/page-07.png", 7},
		{"/tmp/x/page-12.png", 12},
		{"/tmp/x/cover.png", 0},
	}
	for _, tt := range tests {
		if got := imageIndex(tt.path); got != tt.want {
			t.Errorf("imageIndex(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestOCRPages(t *testing.T) {
	texts := []string{
		"Date        Narration              Amount\n05/01/2024  SWIGGY ORDER 1234     250.00\n",
		"   \n",
		"06/01/2024  UBER TRIP   180.50\n",
	}
	pages := ocrPages(texts)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 3 {
		t.Errorf("page numbers = %d, %d; want 1, 3", pages[0].Number, pages[1].Number)
	}
	want := []string{"05/01/2024", "SWIGGY ORDER 1234", "250.00"}
	got := pages[0].Rows[1]
	if len(got) != len(want) {
		t.Fatalf("row cells = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}
