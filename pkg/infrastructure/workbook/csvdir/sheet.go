package csvdir

import (
	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
)

// Sheet buffers the rows written to one CSV sheet
type Sheet struct {
	name string
	rows []entities.Row
}

var _ repositories.Sheet = (*Sheet)(nil)

// Name returns the sheet name
func (s *Sheet) Name() string {
	return s.name
}

// AppendRow buffers row; a blank row becomes an empty record
func (s *Sheet) AppendRow(row entities.Row) error {
	copied := make(entities.Row, len(row))
	copy(copied, row)
	s.rows = append(s.rows, copied)
	return nil
}

// Rows returns the buffered rows
func (s *Sheet) Rows() []entities.Row {
	return s.rows
}
