package repositories

import "github.com/vsinha/orderbom/pkg/domain/entities"

// BOMRepository provides access to Bill of Materials data
type BOMRepository interface {
	// GetBOMLines returns the lines of a parent product in BOM-table scan order.
	GetBOMLines(parentPN entities.PartNumber) ([]*entities.BOMLine, error)
	GetAllBOMLines() ([]*entities.BOMLine, error)
	LoadBOMLines(lines []*entities.BOMLine) error
	// Parents returns every distinct parent product in first-seen order.
	Parents() []entities.PartNumber
}
