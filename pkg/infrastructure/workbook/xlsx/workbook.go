package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
)

// Workbook is an .xlsx file opened with excelize. Sheet mutations stay in
// memory until Persist.
type Workbook struct {
	path     string
	file     *excelize.File
	date1904 bool
	// placeholder is the default sheet of a new file, reused by the first
	// created sheet
	placeholder string
}

// Verify interface compliance
var _ repositories.Workbook = (*Workbook)(nil)

// Open opens the workbook at path
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &repositories.FileNotFoundError{Path: path, Err: err}
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &repositories.FileNotFoundError{Path: path, Err: err}
	}
	return FromFile(file, path), nil
}

// New creates an empty workbook that Persist saves to path
func New(path string) *Workbook {
	wb := FromFile(excelize.NewFile(), path)
	wb.placeholder = wb.file.GetSheetName(0)
	return wb
}

// FromFile wraps an already opened excelize file; Persist writes it to path
func FromFile(file *excelize.File, path string) *Workbook {
	wb := &Workbook{path: path, file: file}
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb
}

// HasSheet reports whether the workbook contains sheet
func (w *Workbook) HasSheet(sheet string) bool {
	idx, err := w.file.GetSheetIndex(sheet)
	return err == nil && idx >= 0
}

// ReadTable returns the typed rows of sheet, skipping headerRows rows
func (w *Workbook) ReadTable(sheet string, headerRows int) ([]entities.Row, error) {
	if !w.HasSheet(sheet) {
		return nil, &repositories.SheetNotFoundError{Sheet: sheet}
	}

	raw, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheet, err)
	}

	if headerRows < 0 {
		headerRows = 0
	}
	if headerRows >= len(raw) {
		return []entities.Row{}, nil
	}

	rows := make([]entities.Row, 0, len(raw)-headerRows)
	for i := headerRows; i < len(raw); i++ {
		row := make(entities.Row, len(raw[i]))
		for j, value := range raw[i] {
			cell, err := w.readCell(sheet, j+1, i+1, value)
			if err != nil {
				return nil, fmt.Errorf("read sheet %s row %d: %w", sheet, i+1, err)
			}
			row[j] = cell
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// CreateOrReplaceSheet deletes any sheet called name and creates an empty one
func (w *Workbook) CreateOrReplaceSheet(name string) (repositories.Sheet, error) {
	if name == w.placeholder {
		w.placeholder = ""
		return newSheet(w.file, name), nil
	}

	if w.HasSheet(name) {
		if err := w.file.DeleteSheet(name); err != nil {
			return nil, fmt.Errorf("delete sheet %s: %w", name, err)
		}
		// excelize keeps the last remaining sheet instead of deleting it
		if w.HasSheet(name) {
			return nil, fmt.Errorf("cannot replace sheet %s: it is the only sheet in the workbook", name)
		}
	}

	if w.placeholder != "" {
		placeholder := w.placeholder
		w.placeholder = ""
		if err := w.file.SetSheetName(placeholder, name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		return newSheet(w.file, name), nil
	}

	if _, err := w.file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", name, err)
	}

	return newSheet(w.file, name), nil
}

// Persist saves the workbook to its path
func (w *Workbook) Persist() error {
	if w.path == "" {
		return fmt.Errorf("workbook has no path to save to")
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}
