package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind describes what a spreadsheet cell actually holds
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellDate
	CellBool
)

// String method for CellKind enum
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "Empty"
	case CellString:
		return "String"
	case CellNumber:
		return "Number"
	case CellDate:
		return "Date"
	case CellBool:
		return "Bool"
	default:
		return "Unknown"
	}
}

// Cell is one positional value of a table row
type Cell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
	Time   time.Time
	Bool   bool
}

// EmptyCell returns a cell with no value
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// StringCell wraps a text value; an empty string yields an empty cell
func StringCell(s string) Cell {
	if s == "" {
		return EmptyCell()
	}
	return Cell{Kind: CellString, Text: s}
}

// NumberCell wraps a numeric value
func NumberCell(d decimal.Decimal) Cell {
	return Cell{Kind: CellNumber, Number: d, Text: d.String()}
}

// DateCell wraps a date value
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t, Text: t.Format(dateTimeLayout)}
}

// BoolCell wraps a boolean value
func BoolCell(b bool) Cell {
	text := "FALSE"
	if b {
		text = "TRUE"
	}
	return Cell{Kind: CellBool, Bool: b, Text: text}
}

const dateTimeLayout = "2006-01-02 15:04:05"

// IsEmpty reports whether the cell holds no value
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell as text, empty cells render as "". Number cells
// keep the text they were read from, so codes like 00123 survive.
func (c Cell) String() string {
	switch c.Kind {
	case CellEmpty:
		return ""
	case CellNumber:
		if c.Text != "" {
			return c.Text
		}
		return c.Number.String()
	case CellDate:
		return c.Time.Format(dateTimeLayout)
	default:
		return c.Text
	}
}

// Decimal returns the numeric value of a Number cell
func (c Cell) Decimal() (decimal.Decimal, bool) {
	if c.Kind != CellNumber {
		return decimal.Zero, false
	}
	return c.Number, true
}

// LenientDecimal also accepts text that parses as a number
func (c Cell) LenientDecimal() (decimal.Decimal, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellString:
		d, err := decimal.NewFromString(strings.TrimSpace(c.Text))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// Date returns the value of a Date cell
func (c Cell) Date() (time.Time, bool) {
	if c.Kind != CellDate {
		return time.Time{}, false
	}
	return c.Time, true
}

// Row is a positional tuple of cells as read from or written to a sheet
type Row []Cell

// At returns the cell at index i, missing cells are empty
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return EmptyCell()
	}
	return r[i]
}

// IsBlank reports whether every cell of the row is empty
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
