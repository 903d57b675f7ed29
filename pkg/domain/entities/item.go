package entities

import "fmt"

// PartNumber identifies a sold product or one of its BOM components
type PartNumber string

// AggregationKey groups order lines by product code and normalized description
type AggregationKey struct {
	ProductCode PartNumber
	Description string
}

// String renders the key as "code|description" for display
func (k AggregationKey) String() string {
	return fmt.Sprintf("%s|%s", k.ProductCode, k.Description)
}
