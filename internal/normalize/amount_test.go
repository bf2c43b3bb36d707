package normalize

import (
	"math"
	"testing"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"25.99", 25.99},
		{"1,234.56", 1234.56},
		{"₹1,234.50", 1234.5},
		{"£25.99", 25.99},
		{"$ 40", 40},
		{"-25.99", -25.99},
		{"-250 Dr", -250},
		{"Rs. 500.00", 500},
		{".75", 0.75},
		{"0.00", 0},
		{"", 0},
		{"nan", 0},
		{"N/A", 0},
		{" 25.99 ", 25.99},
		{"１２３", 123}, // full-width digits fold to ASCII
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Amount(tt.input)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Amount(%q) = %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestAmountOf(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"int", 42, 42},
		{"string", "₹1,000", 1000},
		{"stringer", stringer("99.9"), 99.9},
		{"unsupported", struct{}{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AmountOf(tt.input); got != tt.expected {
				t.Errorf("AmountOf(%v) = %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}
