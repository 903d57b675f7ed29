package xlsx

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
)

// maxColWidth is the widest column excelize accepts
const maxColWidth = 255

// Sheet appends rows to one worksheet and remembers column widths
type Sheet struct {
	file    *excelize.File
	name    string
	nextRow int
	widths  []int
}

func newSheet(file *excelize.File, name string) *Sheet {
	return &Sheet{
		file:    file,
		name:    name,
		nextRow: 1,
		widths:  make([]int, 0),
	}
}

// Verify interface compliance
var (
	_ repositories.Sheet           = (*Sheet)(nil)
	_ repositories.ColumnFormatter = (*Sheet)(nil)
)

// Name returns the sheet name
func (s *Sheet) Name() string {
	return s.name
}

// AppendRow writes row below the last written row. A blank row only
// advances the cursor.
func (s *Sheet) AppendRow(row entities.Row) error {
	defer func() { s.nextRow++ }()
	if row.IsBlank() {
		return nil
	}

	values := make([]interface{}, len(row))
	for i, c := range row {
		values[i] = cellValue(c)
		s.trackWidth(i, c)
	}

	start, err := excelize.CoordinatesToCellName(1, s.nextRow)
	if err != nil {
		return err
	}
	if err := s.file.SetSheetRow(s.name, start, &values); err != nil {
		return fmt.Errorf("write row %d of sheet %s: %w", s.nextRow, s.name, err)
	}
	return nil
}

func (s *Sheet) trackWidth(col int, c entities.Cell) {
	for len(s.widths) <= col {
		s.widths = append(s.widths, 0)
	}
	if n := utf8.RuneCountInString(c.String()); n > s.widths[col] {
		s.widths[col] = n
	}
}

// AutoSizeColumns sets every written column to its longest value plus padding
func (s *Sheet) AutoSizeColumns(padding float64) error {
	for i, w := range s.widths {
		width := float64(w) + padding
		if width > maxColWidth {
			width = maxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.file.SetColWidth(s.name, col, col, width); err != nil {
			return fmt.Errorf("set width of column %s in %s: %w", col, s.name, err)
		}
	}
	return nil
}

// SetColumnWidths sets the first columns columns to width
func (s *Sheet) SetColumnWidths(columns int, width float64) error {
	if columns <= 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}
	if err := s.file.SetColWidth(s.name, "A", last, width); err != nil {
		return fmt.Errorf("set column widths in %s: %w", s.name, err)
	}
	return nil
}

// BoldHeader styles the first row in bold
func (s *Sheet) BoldHeader() error {
	headerStyle, err := s.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	return s.file.SetRowStyle(s.name, 1, 1, headerStyle)
}
