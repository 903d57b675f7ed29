package entities

import (
	"github.com/shopspring/decimal"
)

// BOMLayout holds the 0-based column offsets of the BOM sheet
type BOMLayout struct {
	ParentCol      int
	ComponentCol   int
	DescriptionCol int
	FactorCol      int
}

// NewBOMLayout creates a validated BOMLayout
func NewBOMLayout(parentCol, componentCol, descriptionCol, factorCol int) (*BOMLayout, error) {
	if err := checkColumns(
		namedColumn{"parent", parentCol},
		namedColumn{"component", componentCol},
		namedColumn{"component description", descriptionCol},
		namedColumn{"factor", factorCol},
	); err != nil {
		return nil, err
	}

	return &BOMLayout{
		ParentCol:      parentCol,
		ComponentCol:   componentCol,
		DescriptionCol: descriptionCol,
		FactorCol:      factorCol,
	}, nil
}

// BOMLine represents a single line in a Bill of Materials
type BOMLine struct {
	RowNumber            int
	ParentPN             PartNumber
	ChildPN              PartNumber
	ComponentDescription string
	Factor               decimal.Decimal
}

// BOMLine extracts a line from row. The factor cell is returned as-is so the
// caller decides how to coerce it; ok is false when the parent cell is empty.
func (l BOMLayout) BOMLine(rowNumber int, row Row) (line BOMLine, factor Cell, ok bool) {
	parent := row.At(l.ParentCol)
	if parent.IsEmpty() {
		return BOMLine{}, Cell{}, false
	}

	return BOMLine{
		RowNumber:            rowNumber,
		ParentPN:             PartNumber(trimmed(parent)),
		ChildPN:              PartNumber(trimmed(row.At(l.ComponentCol))),
		ComponentDescription: row.At(l.DescriptionCol).String(),
	}, row.At(l.FactorCol), true
}

// AggregatedComponent is the portfolio-wide requirement for one component
type AggregatedComponent struct {
	PartNumber  PartNumber      `json:"part_number"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ComponentBreakdown is one BOM line applied to one aggregated product
type ComponentBreakdown struct {
	PartNumber    PartNumber      `json:"part_number"`
	Description   string          `json:"description"`
	Factor        decimal.Decimal `json:"factor"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// ComponentTotals accumulates component requirements in first-seen order
type ComponentTotals struct {
	components []*AggregatedComponent
	index      map[PartNumber]int
}

// NewComponentTotals creates an empty accumulator
func NewComponentTotals() *ComponentTotals {
	return &ComponentTotals{
		components: make([]*AggregatedComponent, 0),
		index:      make(map[PartNumber]int),
	}
}

// Add records quantity against the component. The description of the first
// sighting is kept; later descriptions for the same code are ignored.
func (t *ComponentTotals) Add(code PartNumber, description string, quantity decimal.Decimal) {
	if i, exists := t.index[code]; exists {
		t.components[i].Quantity = t.components[i].Quantity.Add(quantity)
		return
	}

	t.index[code] = len(t.components)
	t.components = append(t.components, &AggregatedComponent{
		PartNumber:  code,
		Description: description,
		Quantity:    quantity,
	})
}

// Get returns the accumulated component for code
func (t *ComponentTotals) Get(code PartNumber) (*AggregatedComponent, bool) {
	i, exists := t.index[code]
	if !exists {
		return nil, false
	}
	return t.components[i], true
}

// Components returns all components in first-seen order
func (t *ComponentTotals) Components() []*AggregatedComponent {
	return t.components
}

// Len returns the number of distinct component codes
func (t *ComponentTotals) Len() int {
	return len(t.components)
}
