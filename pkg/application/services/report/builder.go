package report

import (
	"github.com/vsinha/orderbom/pkg/domain/entities"
)

// Header rows of the output sheets
var (
	SummaryHeader  = []string{"Produto", "Descrição", "Quantidade Total", "Data de Atraso"}
	ExpandedHeader = []string{"Produto", "Descrição", "Quantidade Total", "Data de Atraso", "Factor"}
)

// DefaultDateLayout renders due dates as DD-MM-YYYY
const DefaultDateLayout = "02-01-2006"

// Builder flattens ledgers and breakdowns into sheet rows
type Builder struct {
	dateLayout string
}

// NewBuilder creates a builder formatting due dates with dateLayout
func NewBuilder(dateLayout string) *Builder {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &Builder{dateLayout: dateLayout}
}

// SummaryRows returns the grouped summary: the header, then one row per
// ledger entry in insertion order
func (b *Builder) SummaryRows(ledger *entities.ProductLedger) []entities.Row {
	rows := make([]entities.Row, 0, ledger.Len()+1)
	rows = append(rows, headerRow(SummaryHeader))

	for _, product := range ledger.Products() {
		rows = append(rows, b.productRow(product))
	}
	return rows
}

// ExpandedRows returns the flat expanded report. Each product row is
// followed by its breakdown lines; a blank row separates products.
func (b *Builder) ExpandedRows(ledger *entities.ProductLedger, breakdowns map[entities.AggregationKey][]entities.ComponentBreakdown) []entities.Row {
	rows := make([]entities.Row, 0, ledger.Len()*2+1)
	rows = append(rows, headerRow(ExpandedHeader))

	for i, product := range ledger.Products() {
		if i > 0 {
			rows = append(rows, entities.Row{})
		}
		rows = append(rows, b.productRow(product))

		for _, component := range breakdowns[product.Key] {
			rows = append(rows, entities.Row{
				entities.StringCell(string(component.PartNumber)),
				entities.StringCell(component.Description),
				entities.NumberCell(component.TotalQuantity),
				entities.EmptyCell(),
				entities.NumberCell(component.Factor),
			})
		}
	}
	return rows
}

func (b *Builder) productRow(product *entities.AggregatedProduct) entities.Row {
	return entities.Row{
		entities.StringCell(string(product.Key.ProductCode)),
		entities.StringCell(product.Key.Description),
		entities.NumberCell(product.Quantity),
		entities.StringCell(product.DueDate.Format(b.dateLayout)),
	}
}

func headerRow(titles []string) entities.Row {
	row := make(entities.Row, len(titles))
	for i, title := range titles {
		row[i] = entities.StringCell(title)
	}
	return row
}
