package memory

import (
	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
)

// BOMRepository keeps BOM lines in table order, indexed by parent product
type BOMRepository struct {
	bomLines   []entities.BOMLine
	bomIndexes map[entities.PartNumber][]int
	parents    []entities.PartNumber
}

// NewBOMRepository creates a BOM repository sized for expectedBOMLines
func NewBOMRepository(expectedBOMLines int) *BOMRepository {
	return &BOMRepository{
		bomLines:   make([]entities.BOMLine, 0, expectedBOMLines),
		bomIndexes: make(map[entities.PartNumber][]int),
		parents:    make([]entities.PartNumber, 0),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadBOMLines loads BOM lines into the repository
func (r *BOMRepository) LoadBOMLines(lines []*entities.BOMLine) error {
	for _, line := range lines {
		r.AddBOMLine(*line)
	}
	return nil
}

// AddBOMLine appends a BOM line to the repository
func (r *BOMRepository) AddBOMLine(line entities.BOMLine) {
	index := len(r.bomLines)
	r.bomLines = append(r.bomLines, line)
	if _, exists := r.bomIndexes[line.ParentPN]; !exists {
		r.parents = append(r.parents, line.ParentPN)
	}
	r.bomIndexes[line.ParentPN] = append(r.bomIndexes[line.ParentPN], index)
}

// GetBOMLines returns all BOM lines for a parent, in table order
func (r *BOMRepository) GetBOMLines(partNumber entities.PartNumber) ([]*entities.BOMLine, error) {
	indexes, exists := r.bomIndexes[partNumber]
	if !exists {
		return []*entities.BOMLine{}, nil
	}

	lines := make([]*entities.BOMLine, 0, len(indexes))
	for _, index := range indexes {
		line := r.bomLines[index]
		lines = append(lines, &line)
	}

	return lines, nil
}

// GetAllBOMLines returns all BOM lines in table order
func (r *BOMRepository) GetAllBOMLines() ([]*entities.BOMLine, error) {
	lines := make([]*entities.BOMLine, 0, len(r.bomLines))
	for i := range r.bomLines {
		lines = append(lines, &r.bomLines[i])
	}
	return lines, nil
}

// Parents returns the distinct parents in first-seen order
func (r *BOMRepository) Parents() []entities.PartNumber {
	return r.parents
}
