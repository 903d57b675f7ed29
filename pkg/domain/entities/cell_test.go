package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCell_String(t *testing.T) {
	testCases := []struct {
		name     string
		cell     Cell
		expected string
	}{
		{"empty", EmptyCell(), ""},
		{"string", StringCell("  CB-1 "), "  CB-1 "},
		{"empty string is empty cell", StringCell(""), ""},
		{"integer", NumberCell(decimal.NewFromInt(12345)), "12345"},
		{"fraction", NumberCell(decimal.RequireFromString("2.5")), "2.5"},
		{"number keeps source text", Cell{Kind: CellNumber, Number: decimal.NewFromInt(123), Text: "00123"}, "00123"},
		{"number without text", Cell{Kind: CellNumber, Number: decimal.NewFromInt(7)}, "7"},
		{"date", DateCell(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)), "2024-01-05 00:00:00"},
		{"bool", BoolCell(true), "TRUE"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cell.String(); got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
		})
	}

	if !StringCell("").IsEmpty() {
		t.Error("Expected StringCell(\"\") to be empty")
	}
}

func TestCell_Decimal(t *testing.T) {
	if d, ok := NumberCell(decimal.NewFromInt(5)).Decimal(); !ok || !d.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected 5, got %s (ok=%v)", d, ok)
	}

	// Numeric-looking text is not a number for strict coercion
	if _, ok := StringCell("5").Decimal(); ok {
		t.Error("Expected text cell to be rejected by Decimal")
	}
	if _, ok := EmptyCell().Decimal(); ok {
		t.Error("Expected empty cell to be rejected by Decimal")
	}
}

func TestCell_LenientDecimal(t *testing.T) {
	testCases := []struct {
		name     string
		cell     Cell
		expected string
		ok       bool
	}{
		{"number", NumberCell(decimal.NewFromInt(3)), "3", true},
		{"numeric text", StringCell(" 2.25 "), "2.25", true},
		{"text", StringCell("abc"), "0", false},
		{"empty", EmptyCell(), "0", false},
		{"date", DateCell(time.Now()), "0", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := tc.cell.LenientDecimal()
			if ok != tc.ok {
				t.Fatalf("Expected ok=%v, got %v", tc.ok, ok)
			}
			if d.String() != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, d.String())
			}
		})
	}
}

func TestCell_Date(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if got, ok := DateCell(due).Date(); !ok || !got.Equal(due) {
		t.Errorf("Expected %v, got %v (ok=%v)", due, got, ok)
	}
	if _, ok := StringCell("2024-01-10").Date(); ok {
		t.Error("Expected text cell to be rejected by Date")
	}
	if _, ok := NumberCell(decimal.NewFromInt(45000)).Date(); ok {
		t.Error("Expected number cell to be rejected by Date")
	}
}

func TestRow_At(t *testing.T) {
	row := Row{StringCell("a"), EmptyCell()}

	if row.At(0).String() != "a" {
		t.Errorf("Expected 'a', got '%s'", row.At(0).String())
	}
	if !row.At(5).IsEmpty() {
		t.Error("Expected missing cell to be empty")
	}
	if !row.At(-1).IsEmpty() {
		t.Error("Expected negative index to be empty")
	}
}

func TestRow_IsBlank(t *testing.T) {
	if !(Row{}).IsBlank() {
		t.Error("Expected zero-length row to be blank")
	}
	if !(Row{EmptyCell(), StringCell("")}).IsBlank() {
		t.Error("Expected row of empty cells to be blank")
	}
	if (Row{EmptyCell(), StringCell("x")}).IsBlank() {
		t.Error("Expected row with a value not to be blank")
	}
}
