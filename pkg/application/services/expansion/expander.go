package expansion

import (
	"context"
	"fmt"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
	"github.com/vsinha/orderbom/pkg/infrastructure/diagnostics"
)

// Expander turns aggregated products into component requirements using the
// factors of a BOM repository
type Expander struct {
	bomRepo repositories.BOMRepository
	sink    diagnostics.Sink
}

// NewExpander creates an expander over bomRepo
func NewExpander(bomRepo repositories.BOMRepository, sink diagnostics.Sink) *Expander {
	return &Expander{
		bomRepo: bomRepo,
		sink:    diagnostics.OrDiscard(sink),
	}
}

// Result holds the portfolio-wide component totals and the per-product
// breakdowns of one expansion
type Result struct {
	Components *entities.ComponentTotals
	Breakdowns map[entities.AggregationKey][]entities.ComponentBreakdown
}

// Breakdown returns the component lines of the product stored under key
func (r *Result) Breakdown(key entities.AggregationKey) []entities.ComponentBreakdown {
	return r.Breakdowns[key]
}

// Expand multiplies every ledger entry by the factors of the BOM lines whose
// parent equals the entry's product code. Matching ignores the description,
// so each group of a product code with several descriptions is expanded with
// the same lines. Totals accumulate in ledger order, then BOM scan order.
func (e *Expander) Expand(ctx context.Context, ledger *entities.ProductLedger) (*Result, error) {
	result := &Result{
		Components: entities.NewComponentTotals(),
		Breakdowns: make(map[entities.AggregationKey][]entities.ComponentBreakdown, ledger.Len()),
	}

	for _, product := range ledger.Products() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lines, err := e.bomRepo.GetBOMLines(product.Key.ProductCode)
		if err != nil {
			return nil, fmt.Errorf("failed to get BOM lines for %s: %w", product.Key.ProductCode, err)
		}

		breakdown := make([]entities.ComponentBreakdown, 0, len(lines))
		for _, line := range lines {
			total := product.Quantity.Mul(line.Factor)

			result.Components.Add(line.ChildPN, line.ComponentDescription, total)
			breakdown = append(breakdown, entities.ComponentBreakdown{
				PartNumber:    line.ChildPN,
				Description:   line.ComponentDescription,
				Factor:        line.Factor,
				TotalQuantity: total,
			})
		}

		if len(lines) == 0 {
			e.sink.Record(diagnostics.NewProductWithoutBOM(product.Key.ProductCode))
		}
		result.Breakdowns[product.Key] = breakdown
	}

	return result, nil
}
