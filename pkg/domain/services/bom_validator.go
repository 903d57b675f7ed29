package services

import (
	"fmt"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
)

// BOMValidator checks how well a BOM table covers an order portfolio.
// Its findings are informational; nothing it reports stops a run.
type BOMValidator struct{}

// NewBOMValidator creates a new BOM validator
func NewBOMValidator() *BOMValidator {
	return &BOMValidator{}
}

// ValidationResult contains the results of BOM coverage validation
type ValidationResult struct {
	ProductsWithoutBOM []entities.PartNumber
	OrphanedParents    []entities.PartNumber
	DuplicateLines     []entities.BOMLine
	Warnings           []string
}

// ValidateCoverage compares the product codes of the ledger with the parents
// held by bomRepo. Results follow ledger order and BOM scan order.
func (v *BOMValidator) ValidateCoverage(ledger *entities.ProductLedger, bomRepo repositories.BOMRepository) (*ValidationResult, error) {
	result := &ValidationResult{
		ProductsWithoutBOM: make([]entities.PartNumber, 0),
		OrphanedParents:    make([]entities.PartNumber, 0),
		DuplicateLines:     make([]entities.BOMLine, 0),
		Warnings:           make([]string, 0),
	}

	parents := make(map[entities.PartNumber]bool)
	for _, parent := range bomRepo.Parents() {
		parents[parent] = true
		if !ledger.HasProductCode(parent) {
			result.OrphanedParents = append(result.OrphanedParents, parent)
		}
	}

	checked := make(map[entities.PartNumber]bool)
	for _, product := range ledger.Products() {
		code := product.Key.ProductCode
		if checked[code] {
			continue
		}
		checked[code] = true
		if !parents[code] {
			result.ProductsWithoutBOM = append(result.ProductsWithoutBOM, code)
		}
	}

	bomLines, err := bomRepo.GetAllBOMLines()
	if err != nil {
		return nil, fmt.Errorf("failed to get BOM lines: %w", err)
	}
	result.DuplicateLines = v.detectDuplicateLines(bomLines)

	if len(result.ProductsWithoutBOM) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d products have no BOM lines: %v", len(result.ProductsWithoutBOM), result.ProductsWithoutBOM))
	}
	if len(result.DuplicateLines) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d repeated parent/component BOM lines; their quantities are summed", len(result.DuplicateLines)))
	}

	return result, nil
}

// detectDuplicateLines returns every line whose parent/component pair was seen before
func (v *BOMValidator) detectDuplicateLines(bomLines []*entities.BOMLine) []entities.BOMLine {
	type pair struct {
		parent, child entities.PartNumber
	}
	seen := make(map[pair]bool)
	duplicates := make([]entities.BOMLine, 0)

	for _, line := range bomLines {
		key := pair{line.ParentPN, line.ChildPN}
		if seen[key] {
			duplicates = append(duplicates, *line)
		} else {
			seen[key] = true
		}
	}

	return duplicates
}
