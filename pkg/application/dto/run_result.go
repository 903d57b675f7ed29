package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/infrastructure/diagnostics"
)

// RunResult contains the complete output of one pipeline run
type RunResult struct {
	RunID         string                          `json:"run_id"`
	Mode          string                          `json:"mode"`
	ProcessedAt   time.Time                       `json:"processed_at"`
	Products      []ProductResult                 `json:"products"`
	Components    []*entities.AggregatedComponent `json:"components"`
	Diagnostics   []diagnostics.Diagnostic        `json:"diagnostics"`
	Counts        map[string]int                  `json:"diagnostic_counts"`
	Coverage      *CoverageResult                 `json:"coverage,omitempty"`
	SheetsWritten []string                        `json:"sheets_written"`

	// Breakdowns is keyed by aggregation key; JSON output nests the same
	// lines under each product instead.
	Breakdowns map[entities.AggregationKey][]entities.ComponentBreakdown `json:"-"`
}

// ProductResult is one aggregated product with its component breakdown
type ProductResult struct {
	ProductCode entities.PartNumber           `json:"product_code"`
	Description string                        `json:"description"`
	Quantity    decimal.Decimal               `json:"quantity"`
	DueDate     time.Time                     `json:"due_date"`
	Components  []entities.ComponentBreakdown `json:"components"`
}

// CoverageResult summarizes how the BOM table covers the products
type CoverageResult struct {
	ProductsWithoutBOM []entities.PartNumber `json:"products_without_bom"`
	OrphanedParents    []entities.PartNumber `json:"orphaned_parents"`
	DuplicateLines     int                   `json:"duplicate_lines"`
}

// DiagnosticCount returns how many diagnostics of kind the run produced
func (r *RunResult) DiagnosticCount(kind string) int {
	return r.Counts[kind]
}
