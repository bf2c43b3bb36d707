package parser

import "testing"

func TestIsTypeCell(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"DEBIT", true},
		{"credit", true},
		{" Dr. ", true},
		{"CR", true},
		{"Paid", true},
		{"Paid to Uber", false},
		{"₹150", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isTypeCell(tt.input); got != tt.want {
				t.Errorf("isTypeCell(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{"split header", []string{"Date", "Transaction Details", "Type", "Amount"}, true},
		{"merged header", []string{"Date Transaction Details Type Amount"}, true},
		{"narration header", []string{"Txn Date", "Narration", "Withdrawal"}, true},
		{"data row", []string{"05/01/2024", "Swiggy", "DEBIT", "₹250"}, false},
		{"date only", []string{"Statement Date", "01/02/2024"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHeaderRow(tt.row); got != tt.want {
				t.Errorf("isHeaderRow(%q) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestCreditTypeValue(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"CR", true},
		{"Cr.", true},
		{"credit", true},
		{"Refund", true},
		{"C", true},
		{"DR", false},
		{"debit", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := creditTypeValue.MatchString(tt.input); got != tt.want {
				t.Errorf("creditTypeValue(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapse(t *testing.T) {
	if got := collapse("  UPI/Swiggy \n  Order\t123 "); got != "UPI/Swiggy Order 123" {
		t.Errorf("collapse = %q", got)
	}
}
