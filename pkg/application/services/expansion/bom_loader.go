package expansion

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/infrastructure/diagnostics"
)

// LoadBOM extracts BOM lines from the rows of sheet in scan order. Rows
// without a parent product are skipped. Factors that are neither numbers
// nor numeric text count as 0.
func LoadBOM(sheet string, rows []entities.Row, firstRowNumber int, layout entities.BOMLayout, sink diagnostics.Sink) []*entities.BOMLine {
	sink = diagnostics.OrDiscard(sink)
	lines := make([]*entities.BOMLine, 0, len(rows))

	for i, row := range rows {
		line, factorCell, ok := layout.BOMLine(firstRowNumber+i, row)
		if !ok {
			continue
		}

		factor, ok := factorCell.LenientDecimal()
		if !ok {
			factor = decimal.Zero
			sink.Record(diagnostics.NewNonNumericFactor(sheet, line.RowNumber, line.ParentPN, line.ChildPN, factorCell))
		}
		line.Factor = factor

		lines = append(lines, &line)
	}

	return lines
}
