package csvdir

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderbom/pkg/domain/entities"
)

// dateLayouts are the text forms recognised as dates
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
}

// parseCell types a CSV field. CSV carries no cell types, so numeric text
// becomes a number and text in a known date layout becomes a date. Numbers
// keep their source text.
func parseCell(field string) entities.Cell {
	value := strings.TrimSpace(field)
	if value == "" {
		return entities.EmptyCell()
	}

	if d, err := decimal.NewFromString(value); err == nil {
		cell := entities.NumberCell(d)
		cell.Text = value
		return cell
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return entities.DateCell(t)
		}
	}
	return entities.StringCell(field)
}

func formatCell(c entities.Cell) string {
	switch c.Kind {
	case entities.CellEmpty:
		return ""
	case entities.CellDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return c.String()
	}
}
