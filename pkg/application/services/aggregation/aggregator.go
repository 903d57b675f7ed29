package aggregation

import (
	"time"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/services"
	"github.com/vsinha/orderbom/pkg/infrastructure/diagnostics"
)

// Clock returns the processing time of a run
type Clock func() time.Time

// Aggregator groups sales-order lines by product code and normalized
// description into a ProductLedger
type Aggregator struct {
	layout     entities.OrderLayout
	normalizer *services.DescriptionNormalizer
	sink       diagnostics.Sink
	clock      Clock
}

// NewAggregator creates an aggregator. A nil normalizer uses the default
// markers, a nil sink discards diagnostics and a nil clock uses time.Now.
func NewAggregator(layout entities.OrderLayout, normalizer *services.DescriptionNormalizer, sink diagnostics.Sink, clock Clock) *Aggregator {
	if normalizer == nil {
		normalizer = services.NewDescriptionNormalizer()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Aggregator{
		layout:     layout,
		normalizer: normalizer,
		sink:       diagnostics.OrDiscard(sink),
		clock:      clock,
	}
}

// ProcessingDate is the fallback due date: the clock's day at midnight
func (a *Aggregator) ProcessingDate() time.Time {
	now := a.clock()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Aggregate reads the rows of sheet into a ledger. firstRowNumber is the
// sheet row number of rows[0] and is only used in diagnostics. Fully blank
// rows are skipped.
func (a *Aggregator) Aggregate(sheet string, rows []entities.Row, firstRowNumber int) *entities.ProductLedger {
	lines := make([]entities.OrderLine, 0, len(rows))
	for i, row := range rows {
		if row.IsBlank() {
			continue
		}
		lines = append(lines, a.layout.OrderLine(firstRowNumber+i, row))
	}
	return a.AggregateLines(sheet, lines)
}

// AggregateLines groups already extracted order lines
func (a *Aggregator) AggregateLines(sheet string, lines []entities.OrderLine) *entities.ProductLedger {
	ledger := entities.NewProductLedger()
	fallback := a.ProcessingDate()

	for _, line := range lines {
		description, ok := a.normalizer.Normalize(line.Description)
		if !ok {
			a.sink.Record(diagnostics.NewUnnormalizableDescription(sheet, line.RowNumber, line.ProductCode, line.Description))
		}

		quantity, ok := line.Quantity.Decimal()
		if !ok {
			a.sink.Record(diagnostics.NewNonNumericQuantity(sheet, line.RowNumber, line.ProductCode, line.Quantity))
		}

		dueDate, ok := line.DueDate.Date()
		if !ok {
			dueDate = fallback
			a.sink.Record(diagnostics.NewInvalidDueDate(sheet, line.RowNumber, line.ProductCode, line.DueDate))
		}

		key := entities.AggregationKey{
			ProductCode: line.ProductCode,
			Description: description,
		}
		ledger.Add(key, quantity, dueDate)
	}

	return ledger
}
