package extractor

import (
	"errors"
	"testing"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func TestTables(t *testing.T) {
	pages := []Page{
		{Number: 1, Rows: [][]string{
			{"HDFC Bank Ltd"},
			{"Date", "Narration", "Withdrawal Amt.", "Deposit Amt."},
			{"05/01/24", "Swiggy", "250.00", ""},
		}},
		{Number: 2, Rows: [][]string{
			{"Jan 5, 2024 Paid to Uber ₹150 DEBIT"},
			{"Jan 6, 2024 Received from Asha ₹500 CREDIT"},
		}},
		{Number: 3, Rows: [][]string{{"Page 3 of 3"}}},
	}

	tables, err := Tables(pages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}

	named := tables[0]
	if !named.Named() || named.Source != "pdf:page 1" {
		t.Errorf("page 1: named=%v source=%q", named.Named(), named.Source)
	}
	if named.Header[0] != "date" || len(named.Rows) != 1 || named.Rows[0][1] != "Swiggy" {
		t.Errorf("page 1 table = %+v", named)
	}

	positional := tables[1]
	if positional.Named() || len(positional.Rows) != 2 || positional.Source != "pdf:page 2" {
		t.Errorf("page 2 table = %+v", positional)
	}
}

func TestTablesNone(t *testing.T) {
	_, err := Tables([]Page{{Number: 1, Rows: [][]string{{"Page 1"}}}})
	var se *models.StatementError
	if !errors.As(err, &se) || se.Msg != "No valid transaction tables found in PDF." {
		t.Errorf("got %v", err)
	}
}
