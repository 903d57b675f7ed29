package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLayout holds the 0-based column offsets of the sales-order extract
type OrderLayout struct {
	ProductCol     int
	DescriptionCol int
	QuantityCol    int
	DueDateCol     int
}

// NewOrderLayout creates a validated OrderLayout
func NewOrderLayout(productCol, descriptionCol, quantityCol, dueDateCol int) (*OrderLayout, error) {
	if err := checkColumns(
		namedColumn{"product", productCol},
		namedColumn{"description", descriptionCol},
		namedColumn{"quantity", quantityCol},
		namedColumn{"due date", dueDateCol},
	); err != nil {
		return nil, err
	}

	return &OrderLayout{
		ProductCol:     productCol,
		DescriptionCol: descriptionCol,
		QuantityCol:    quantityCol,
		DueDateCol:     dueDateCol,
	}, nil
}

// OrderLine is one raw row of the sales-order extract. Cells keeps every
// column of the source row, including the ones the pipeline ignores.
type OrderLine struct {
	RowNumber   int
	ProductCode PartNumber
	Description string
	Quantity    Cell
	DueDate     Cell
	Cells       Row
}

// OrderLine extracts the positional fields of row
func (l OrderLayout) OrderLine(rowNumber int, row Row) OrderLine {
	return OrderLine{
		RowNumber:   rowNumber,
		ProductCode: PartNumber(trimmed(row.At(l.ProductCol))),
		Description: trimmed(row.At(l.DescriptionCol)),
		Quantity:    row.At(l.QuantityCol),
		DueDate:     row.At(l.DueDateCol),
		Cells:       row,
	}
}

type namedColumn struct {
	name string
	col  int
}

func checkColumns(cols ...namedColumn) error {
	for _, c := range cols {
		if c.col < 0 {
			return fmt.Errorf("%s column cannot be negative, got %d", c.name, c.col)
		}
	}
	return nil
}

func trimmed(c Cell) string {
	return strings.TrimSpace(c.String())
}

// AggregatedProduct is the ledger entry for one aggregation key
type AggregatedProduct struct {
	Key      AggregationKey
	Quantity decimal.Decimal
	DueDate  time.Time
}

// ProductLedger maps aggregation keys to products, keeping first-seen order
type ProductLedger struct {
	products []*AggregatedProduct
	index    map[AggregationKey]int
}

// NewProductLedger creates an empty ledger
func NewProductLedger() *ProductLedger {
	return &ProductLedger{
		products: make([]*AggregatedProduct, 0),
		index:    make(map[AggregationKey]int),
	}
}

// Add inserts the key on first sight. Later calls add the quantity and keep
// the earliest due date. It reports whether a new entry was created.
func (l *ProductLedger) Add(key AggregationKey, quantity decimal.Decimal, dueDate time.Time) bool {
	if i, exists := l.index[key]; exists {
		product := l.products[i]
		product.Quantity = product.Quantity.Add(quantity)
		if dueDate.Before(product.DueDate) {
			product.DueDate = dueDate
		}
		return false
	}

	l.index[key] = len(l.products)
	l.products = append(l.products, &AggregatedProduct{
		Key:      key,
		Quantity: quantity,
		DueDate:  dueDate,
	})
	return true
}

// Get returns the product stored under key
func (l *ProductLedger) Get(key AggregationKey) (*AggregatedProduct, bool) {
	i, exists := l.index[key]
	if !exists {
		return nil, false
	}
	return l.products[i], true
}

// Products returns all entries in insertion order
func (l *ProductLedger) Products() []*AggregatedProduct {
	return l.products
}

// Len returns the number of distinct keys
func (l *ProductLedger) Len() int {
	return len(l.products)
}

// HasProductCode reports whether any key carries the product code
func (l *ProductLedger) HasProductCode(code PartNumber) bool {
	for _, p := range l.products {
		if p.Key.ProductCode == code {
			return true
		}
	}
	return false
}
