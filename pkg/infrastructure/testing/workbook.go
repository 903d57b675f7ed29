package testing

import (
	"fmt"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
)

// MemoryWorkbook is an in-memory workbook. Sheet mutations are staged and
// only become visible through Rows after Persist, like a file on disk.
type MemoryWorkbook struct {
	sheets map[string][]entities.Row
	staged map[string][]entities.Row
	order  []string

	// FailCreate makes CreateOrReplaceSheet fail for that sheet name
	FailCreate string
	// PersistErr is returned by Persist when set
	PersistErr error

	PersistCount int
	Closed       bool
}

var _ repositories.Workbook = (*MemoryWorkbook)(nil)

// NewMemoryWorkbook creates an empty workbook
func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{
		sheets: make(map[string][]entities.Row),
		staged: make(map[string][]entities.Row),
		order:  make([]string, 0),
	}
}

// SetSheet stores rows, header included, as a committed sheet
func (w *MemoryWorkbook) SetSheet(name string, rows []entities.Row) {
	if _, exists := w.sheets[name]; !exists {
		w.order = append(w.order, name)
	}
	w.sheets[name] = rows
}

// Rows returns the committed rows of a sheet, header included
func (w *MemoryWorkbook) Rows(name string) []entities.Row {
	return w.sheets[name]
}

// SheetNames returns the committed sheets in creation order
func (w *MemoryWorkbook) SheetNames() []string {
	return w.order
}

func (w *MemoryWorkbook) HasSheet(sheet string) bool {
	_, exists := w.sheets[sheet]
	return exists
}

func (w *MemoryWorkbook) ReadTable(sheet string, headerRows int) ([]entities.Row, error) {
	rows, exists := w.sheets[sheet]
	if !exists {
		return nil, &repositories.SheetNotFoundError{Sheet: sheet}
	}
	if headerRows >= len(rows) {
		return []entities.Row{}, nil
	}
	out := make([]entities.Row, len(rows)-headerRows)
	copy(out, rows[headerRows:])
	return out, nil
}

func (w *MemoryWorkbook) CreateOrReplaceSheet(name string) (repositories.Sheet, error) {
	if name == w.FailCreate {
		return nil, fmt.Errorf("cannot create sheet %s", name)
	}
	w.staged[name] = make([]entities.Row, 0)
	return &memorySheet{workbook: w, name: name}, nil
}

func (w *MemoryWorkbook) Persist() error {
	if w.PersistErr != nil {
		return w.PersistErr
	}
	for name, rows := range w.staged {
		w.SetSheet(name, rows)
	}
	w.staged = make(map[string][]entities.Row)
	w.PersistCount++
	return nil
}

func (w *MemoryWorkbook) Close() error {
	w.Closed = true
	return nil
}

type memorySheet struct {
	workbook *MemoryWorkbook
	name     string
}

func (s *memorySheet) Name() string {
	return s.name
}

func (s *memorySheet) AppendRow(row entities.Row) error {
	s.workbook.staged[s.name] = append(s.workbook.staged[s.name], row)
	return nil
}
