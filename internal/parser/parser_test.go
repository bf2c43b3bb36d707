package parser

import (
	"testing"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		table *models.RawTable
		want  string
	}{
		{
			name:  "debit credit header",
			table: models.NewNamedTable([]string{"date", "narration", "debit", "credit"}, nil),
			want:  models.MethodTabular,
		},
		{
			name:  "amount and dr/cr header",
			table: models.NewNamedTable([]string{"Txn Date", "Particulars", "Amount", "Dr/Cr"}, nil),
			want:  models.MethodTabular,
		},
		{
			name:  "dr token alone is amount evidence",
			table: models.NewNamedTable([]string{"Date", "Remarks", "Dr"}, nil),
			want:  models.MethodTabular,
		},
		{
			name:  "positional table",
			table: models.NewPositionalTable([][]string{{"a", "b", "c"}}),
			want:  models.MethodMessy,
		},
		{
			name:  "no description evidence",
			table: models.NewNamedTable([]string{"date", "amount"}, nil),
			want:  models.MethodMessy,
		},
		{
			name:  "no amount evidence",
			table: models.NewNamedTable([]string{"date", "description", "balance"}, nil),
			want:  models.MethodMessy,
		},
		{
			name:  "no date evidence",
			table: models.NewNamedTable([]string{"narration", "debit", "credit"}, nil),
			want:  models.MethodMessy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.table, Normalizers{})
			if got.Name() != tt.want {
				t.Errorf("Select() = %q, want %q", got.Name(), tt.want)
			}
		})
	}
}

func TestHasTabularEvidence(t *testing.T) {
	tests := []struct {
		names []string
		want  bool
	}{
		{[]string{"date", "narration", "debit", "credit"}, true},
		{[]string{"col_0", "col_1", "col_2"}, false},
		{[]string{"value date", "description", "withdrawal amt."}, true},
		// "description" contains "cr" but not as a token.
		{[]string{"date", "description"}, false},
	}

	for _, tt := range tests {
		if got := HasTabularEvidence(tt.names); got != tt.want {
			t.Errorf("HasTabularEvidence(%q) = %v, want %v", tt.names, got, tt.want)
		}
	}
}
