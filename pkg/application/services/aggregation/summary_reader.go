package aggregation

import (
	"strings"
	"time"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/infrastructure/diagnostics"
)

// Column offsets of a grouped summary sheet
const (
	summaryProductCol = iota
	summaryDescriptionCol
	summaryQuantityCol
	summaryDueDateCol
)

// ReadSummary rebuilds a ledger from a grouped summary sheet written earlier.
// Descriptions are taken as already normalized. Quantities accept numeric
// text, and due dates are date cells or text in dateLayout.
func (a *Aggregator) ReadSummary(sheet string, rows []entities.Row, firstRowNumber int, dateLayout string) *entities.ProductLedger {
	ledger := entities.NewProductLedger()
	fallback := a.ProcessingDate()

	for i, row := range rows {
		if row.IsBlank() {
			continue
		}
		rowNumber := firstRowNumber + i
		code := entities.PartNumber(strings.TrimSpace(row.At(summaryProductCol).String()))

		quantity, ok := row.At(summaryQuantityCol).LenientDecimal()
		if !ok {
			a.sink.Record(diagnostics.NewNonNumericQuantity(sheet, rowNumber, code, row.At(summaryQuantityCol)))
		}

		dueDate, ok := parseSummaryDate(row.At(summaryDueDateCol), dateLayout)
		if !ok {
			dueDate = fallback
			a.sink.Record(diagnostics.NewInvalidDueDate(sheet, rowNumber, code, row.At(summaryDueDateCol)))
		}

		key := entities.AggregationKey{
			ProductCode: code,
			Description: strings.TrimSpace(row.At(summaryDescriptionCol).String()),
		}
		ledger.Add(key, quantity, dueDate)
	}

	return ledger
}

func parseSummaryDate(c entities.Cell, layout string) (time.Time, bool) {
	if t, ok := c.Date(); ok {
		return t, true
	}
	if c.Kind != entities.CellString {
		return time.Time{}, false
	}
	t, err := time.Parse(layout, strings.TrimSpace(c.Text))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
