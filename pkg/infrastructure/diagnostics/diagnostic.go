package diagnostics

import (
	"fmt"

	"github.com/vsinha/orderbom/pkg/domain/entities"
)

// Diagnostic kinds. All of them are recoverable: the run continues with a
// safe default and the diagnostic is only reported.
const (
	UnnormalizableDescription = "description.unnormalizable"
	NonNumericQuantity        = "quantity.non_numeric"
	NonNumericFactor          = "factor.non_numeric"
	InvalidDueDate            = "due_date.invalid"
	ProductWithoutBOM         = "bom.product_without_lines"
	OrphanedBOMParent         = "bom.orphaned_parent"
)

// Diagnostic describes one data-quality problem found in a record
type Diagnostic struct {
	Kind       string              `json:"kind"`
	Sheet      string              `json:"sheet,omitempty"`
	Row        int                 `json:"row,omitempty"`
	PartNumber entities.PartNumber `json:"part_number,omitempty"`
	Value      string              `json:"value,omitempty"`
	Message    string              `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Row > 0 {
		return fmt.Sprintf("%s row %d: %s", d.Sheet, d.Row, d.Message)
	}
	return d.Message
}

// Sink receives diagnostics as they are found
type Sink interface {
	Record(d Diagnostic)
}

// Discard drops every diagnostic
type Discard struct{}

func (Discard) Record(Diagnostic) {}

// OrDiscard returns sink, or Discard when sink is nil
func OrDiscard(sink Sink) Sink {
	if sink == nil {
		return Discard{}
	}
	return sink
}

func NewUnnormalizableDescription(sheet string, row int, product entities.PartNumber, description string) Diagnostic {
	return Diagnostic{
		Kind:       UnnormalizableDescription,
		Sheet:      sheet,
		Row:        row,
		PartNumber: product,
		Value:      description,
		Message:    fmt.Sprintf("could not normalize description for product %s", product),
	}
}

func NewNonNumericQuantity(sheet string, row int, product entities.PartNumber, value entities.Cell) Diagnostic {
	return Diagnostic{
		Kind:       NonNumericQuantity,
		Sheet:      sheet,
		Row:        row,
		PartNumber: product,
		Value:      value.String(),
		Message:    fmt.Sprintf("quantity %q of product %s is not numeric, using 0", value.String(), product),
	}
}

func NewNonNumericFactor(sheet string, row int, parent, component entities.PartNumber, value entities.Cell) Diagnostic {
	return Diagnostic{
		Kind:       NonNumericFactor,
		Sheet:      sheet,
		Row:        row,
		PartNumber: parent,
		Value:      value.String(),
		Message:    fmt.Sprintf("factor %q of component %s in %s is not numeric, using 0", value.String(), component, parent),
	}
}

func NewInvalidDueDate(sheet string, row int, product entities.PartNumber, value entities.Cell) Diagnostic {
	return Diagnostic{
		Kind:       InvalidDueDate,
		Sheet:      sheet,
		Row:        row,
		PartNumber: product,
		Value:      value.String(),
		Message:    fmt.Sprintf("due date %q of product %s is not a date, using processing date", value.String(), product),
	}
}

func NewProductWithoutBOM(product entities.PartNumber) Diagnostic {
	return Diagnostic{
		Kind:       ProductWithoutBOM,
		PartNumber: product,
		Message:    fmt.Sprintf("product %s has no BOM lines", product),
	}
}

func NewOrphanedBOMParent(parent entities.PartNumber) Diagnostic {
	return Diagnostic{
		Kind:       OrphanedBOMParent,
		PartNumber: parent,
		Message:    fmt.Sprintf("BOM parent %s matches no ordered product", parent),
	}
}
