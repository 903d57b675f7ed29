package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/infrastructure/diagnostics"
	testhelpers "github.com/vsinha/orderbom/pkg/infrastructure/testing"
)

func TestReadSummary(t *testing.T) {
	recorder := diagnostics.NewRecorder(nil)
	aggregator := newTestAggregator(recorder)

	rows := []entities.Row{
		testhelpers.RowOf("P1", "CB-A", 8, "05-01-2024"),
		testhelpers.RowOf("P2", "FIO-9", "10", testhelpers.Date(2024, 2, 1)),
		{},
		testhelpers.RowOf("P1", "CB-B", "n/a", "soon"),
	}

	ledger := aggregator.ReadSummary("CarteiraSAP", rows, 2, "02-01-2006")

	if ledger.Len() != 3 {
		t.Fatalf("Expected 3 groups, got %d", ledger.Len())
	}

	testCases := []struct {
		key      entities.AggregationKey
		quantity decimal.Decimal
		dueDate  time.Time
	}{
		{entities.AggregationKey{ProductCode: "P1", Description: "CB-A"}, decimal.NewFromInt(8), testhelpers.Date(2024, 1, 5)},
		{entities.AggregationKey{ProductCode: "P2", Description: "FIO-9"}, decimal.NewFromInt(10), testhelpers.Date(2024, 2, 1)},
		{entities.AggregationKey{ProductCode: "P1", Description: "CB-B"}, decimal.Zero, testhelpers.Date(2024, 6, 15)},
	}

	for i, tc := range testCases {
		product := ledger.Products()[i]
		if product.Key != tc.key {
			t.Errorf("Expected key %s, got %s", tc.key, product.Key)
		}
		if !product.Quantity.Equal(tc.quantity) {
			t.Errorf("%s: expected quantity %s, got %s", tc.key, tc.quantity, product.Quantity)
		}
		if !product.DueDate.Equal(tc.dueDate) {
			t.Errorf("%s: expected due date %s, got %s", tc.key, tc.dueDate, product.DueDate)
		}
	}

	if recorder.Count(diagnostics.NonNumericQuantity) != 1 || recorder.Count(diagnostics.InvalidDueDate) != 1 {
		t.Errorf("Expected one quantity and one date diagnostic, got %v", recorder.Counts())
	}
	if recorder.Count(diagnostics.UnnormalizableDescription) != 0 {
		t.Error("Expected summary descriptions not to be normalized again")
	}
	if row := recorder.Diagnostics()[0].Row; row != 5 {
		t.Errorf("Expected diagnostic on row 5, got %d", row)
	}
}
