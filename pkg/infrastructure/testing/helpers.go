package testing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderbom/pkg/domain/entities"
)

// Column offsets of the SAP extract fixtures, matching config.Default()
const (
	OrderDueDateCol     = 2
	OrderProductCol     = 4
	OrderDescriptionCol = 5
	OrderQuantityCol    = 9
	orderColumns        = 10

	BOMParentCol      = 0
	BOMComponentCol   = 3
	BOMDescriptionCol = 4
	BOMFactorCol      = 5
	bomColumns        = 6
)

// Cell converts a Go value into a typed cell. Supported values are nil,
// string, int, float64, decimal.Decimal, time.Time, bool and entities.Cell.
func Cell(v interface{}) entities.Cell {
	switch value := v.(type) {
	case nil:
		return entities.EmptyCell()
	case entities.Cell:
		return value
	case string:
		return entities.StringCell(value)
	case int:
		return entities.NumberCell(decimal.NewFromInt(int64(value)))
	case float64:
		return entities.NumberCell(decimal.NewFromFloat(value))
	case decimal.Decimal:
		return entities.NumberCell(value)
	case time.Time:
		return entities.DateCell(value)
	case bool:
		return entities.BoolCell(value)
	default:
		panic(fmt.Sprintf("unsupported cell value %T", v))
	}
}

// RowOf builds a row from Go values
func RowOf(values ...interface{}) entities.Row {
	row := make(entities.Row, len(values))
	for i, v := range values {
		row[i] = Cell(v)
	}
	return row
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Dec parses a decimal literal, panicking on malformed input
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// OrderRow builds a source row in the default SAP extract layout
func OrderRow(product, description string, quantity, dueDate interface{}) entities.Row {
	row := make(entities.Row, orderColumns)
	for i := range row {
		row[i] = entities.EmptyCell()
	}
	row[0] = entities.StringCell("PED-" + product)
	row[OrderDueDateCol] = Cell(dueDate)
	row[OrderProductCol] = entities.StringCell(product)
	row[OrderDescriptionCol] = entities.StringCell(description)
	row[OrderQuantityCol] = Cell(quantity)
	return row
}

// OrderHeader is the header row of the source sheet fixtures
func OrderHeader() entities.Row {
	return RowOf("Pedido", "Cliente", "Data Entrega", "Item", "Produto", "Descrição", "Centro", "Depósito", "UM", "Quantidade")
}

// BOMRow builds a BOM row in the default layout
func BOMRow(parent, component, description string, factor interface{}) entities.Row {
	row := make(entities.Row, bomColumns)
	for i := range row {
		row[i] = entities.EmptyCell()
	}
	row[BOMParentCol] = entities.StringCell(parent)
	row[1] = entities.StringCell("Alt 1")
	row[2] = entities.NumberCell(decimal.NewFromInt(1))
	row[BOMComponentCol] = entities.StringCell(component)
	row[BOMDescriptionCol] = entities.StringCell(description)
	row[BOMFactorCol] = Cell(factor)
	return row
}

// BOMHeader is the header row of the BOM sheet fixtures
func BOMHeader() entities.Row {
	return RowOf("Material", "Alternativa", "Item", "Componente", "Texto", "Quantidade")
}

// DefaultOrderLayout returns the layout of OrderRow
func DefaultOrderLayout() entities.OrderLayout {
	return entities.OrderLayout{
		ProductCol:     OrderProductCol,
		DescriptionCol: OrderDescriptionCol,
		QuantityCol:    OrderQuantityCol,
		DueDateCol:     OrderDueDateCol,
	}
}

// DefaultBOMLayout returns the layout of BOMRow
func DefaultBOMLayout() entities.BOMLayout {
	return entities.BOMLayout{
		ParentCol:      BOMParentCol,
		ComponentCol:   BOMComponentCol,
		DescriptionCol: BOMDescriptionCol,
		FactorCol:      BOMFactorCol,
	}
}

// BuildSAPWorkbook builds a small portfolio: two cable orders that merge
// into one group, a wire order, a product without BOM and a BOM parent
// nobody ordered.
func BuildSAPWorkbook() *MemoryWorkbook {
	wb := NewMemoryWorkbook()

	wb.SetSheet("Planilha1", []entities.Row{
		OrderHeader(),
		OrderRow("P1", "x CB-A", 5, Date(2024, 1, 10)),
		OrderRow("P1", "y CB-A", 3, Date(2024, 1, 5)),
		OrderRow("P2", "rolo FIO-9", 10, Date(2024, 2, 1)),
		OrderRow("P3", "sem marcador", 4, Date(2024, 3, 1)),
	})

	wb.SetSheet("BOM SAP", []entities.Row{
		BOMHeader(),
		BOMRow("P1", "C1", "Cobre", 2),
		BOMRow("P2", "C1", "Cobre 2", 3),
		BOMRow("P1", "C2", "PVC", 0.5),
		BOMRow("P9", "C3", "Orphan", 1),
	})

	return wb
}
