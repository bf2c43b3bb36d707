package models

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestTransactionValid(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		txn  Transaction
		want bool
	}{
		{"debit", Transaction{Date: date, Description: "Swiggy", Debit: 250}, true},
		{"credit", Transaction{Date: date, Description: "Salary", Credit: 100}, true},
		{"no amount", Transaction{Date: date, Description: "Swiggy"}, false},
		{"negative", Transaction{Date: date, Description: "Swiggy", Debit: -1, Credit: 5}, false},
		{"blank description", Transaction{Date: date, Description: "  ", Debit: 1}, false},
		{"zero date", Transaction{Description: "Swiggy", Debit: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.txn.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLedger(t *testing.T) {
	txns := []Transaction{
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Description: "Swiggy", Category: CategoryFood, Debit: 250, Inferred: true},
	}
	got := Ledger(txns)
	if len(got) != 1 {
		t.Fatalf("got %d entries", len(got))
	}
	want := LedgerEntry{Date: "2024-01-05", Description: "Swiggy", Category: CategoryFood, Debit: 250, Inferred: true}
	if got[0] != want {
		t.Errorf("Ledger()[0] = %+v, want %+v", got[0], want)
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory(" food "); !ok || c != CategoryFood {
		t.Errorf("ParseCategory(food) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("groceries"); ok {
		t.Error("expected unknown category")
	}
}

func TestRawTable(t *testing.T) {
	named := NewNamedTable([]string{" Date ", "Narration", "Debit"}, [][]string{
		{"2024-01-05", "Swiggy"},
		{"2024-01-06", "Uber", "150", "extra"},
	})
	if !named.Named() || named.Width() != 4 {
		t.Fatalf("named table: named=%v width=%d", named.Named(), named.Width())
	}
	names := named.ColumnNames()
	if names[0] != "date" || names[1] != "narration" || names[3] != "" {
		t.Errorf("ColumnNames() = %q", names)
	}
	rows := named.NamedRows()
	if rows[0].Get("debit") != "" || rows[1].Get("debit") != "150" || rows[1].Get("missing") != "" {
		t.Errorf("NamedRows() lookup mismatch")
	}
	if grid := named.Grid(); len(grid) != 3 || grid[0][0] != "date" {
		t.Errorf("Grid() = %q", grid)
	}

	positional := NewPositionalTable([][]string{{"a"}, {"b", "c"}})
	if positional.Named() || positional.NamedRows() != nil {
		t.Error("positional table reports a header")
	}
	if got := positional.ColumnNames(); len(got) != 2 || got[1] != "col_1" {
		t.Errorf("ColumnNames() = %q", got)
	}
	if len(positional.Grid()) != 2 || len(positional.Grid()[0]) != 2 {
		t.Errorf("Grid() not padded: %q", positional.Grid())
	}
}

func TestNamedRowDuplicateColumns(t *testing.T) {
	table := NewNamedTable([]string{"amount", "amount"}, [][]string{{"1", "2"}})
	if got := table.NamedRows()[0].Get("amount"); got != "1" {
		t.Errorf("duplicate column lookup = %q, want first", got)
	}
}

func TestStatementError(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := WrapStatementError(cause, "Failed to read CSV.")
	if err.Error() != "Failed to read CSV.: unexpected EOF" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause")
	}

	var se *StatementError
	if !errors.As(fmt.Errorf("run: %w", NewStatementError("No transactions found.")), &se) {
		t.Fatal("expected StatementError")
	}
	if se.Msg != "No transactions found." {
		t.Errorf("Msg = %q", se.Msg)
	}
}

func TestGranularityLabel(t *testing.T) {
	if Weekly.Label() != "Weekly Spends" || Monthly.Label() != "Monthly Spends" || Yearly.Label() != "Yearly Spends" {
		t.Errorf("labels = %q, %q, %q", Weekly.Label(), Monthly.Label(), Yearly.Label())
	}
}
