package xlsx

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/orderbom/pkg/domain/entities"
)

// isoDateLayouts are tried for cells stored with t="d"
var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// readCell types a raw cell value. Numbers whose number format is a date
// format are returned as dates, like spreadsheet applications show them.
func (w *Workbook) readCell(sheet string, col, row int, value string) (entities.Cell, error) {
	if value == "" {
		return entities.EmptyCell(), nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return entities.Cell{}, err
	}
	cellType, err := w.file.GetCellType(sheet, axis)
	if err != nil {
		return entities.Cell{}, err
	}

	switch cellType {
	case excelize.CellTypeBool:
		return entities.BoolCell(value == "1" || strings.EqualFold(value, "true")), nil
	case excelize.CellTypeDate:
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return entities.DateCell(t), nil
			}
		}
		return entities.StringCell(value), nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return entities.StringCell(value), nil
		}
		if w.isDateFormat(sheet, axis) {
			serial, _ := strconv.ParseFloat(value, 64)
			if t, err := excelize.ExcelDateToTime(serial, w.date1904); err == nil {
				return entities.DateCell(t), nil
			}
		}
		return entities.NumberCell(d), nil
	default:
		return entities.StringCell(value), nil
	}
}

// isDateFormat reports whether the cell's number format renders a date
func (w *Workbook) isDateFormat(sheet, axis string) bool {
	styleID, err := w.file.GetCellStyle(sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := w.file.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}

	if (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 45 && style.NumFmt <= 47) {
		return true
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains day or year
// tokens once literals and bracketed sections are removed
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\':
			i++
		default:
			b.WriteByte(ch)
		}
	}

	cleaned := strings.ToLower(b.String())
	return strings.ContainsAny(cleaned, "dy")
}

// cellValue converts a cell to the value excelize should store
func cellValue(c entities.Cell) interface{} {
	switch c.Kind {
	case entities.CellString:
		return c.Text
	case entities.CellNumber:
		return c.Number.InexactFloat64()
	case entities.CellDate:
		return c.Time
	case entities.CellBool:
		return c.Bool
	default:
		return nil
	}
}
