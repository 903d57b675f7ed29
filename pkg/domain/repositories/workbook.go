package repositories

import (
	"errors"
	"fmt"

	"github.com/vsinha/orderbom/pkg/domain/entities"
)

var (
	// ErrSheetNotFound is returned when a required sheet is absent
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrFileNotFound is returned when the backing file cannot be opened
	ErrFileNotFound = errors.New("file not found")
)

// SheetNotFoundError names the missing sheet
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet '%s' not found", e.Sheet)
}

func (e *SheetNotFoundError) Unwrap() error {
	return ErrSheetNotFound
}

// FileNotFoundError names the file that could not be opened
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file '%s' could not be opened: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("file '%s' not found", e.Path)
}

func (e *FileNotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFileNotFound, e.Err}
	}
	return []error{ErrFileNotFound}
}

// Workbook is the spreadsheet collaborator the pipeline reads from and writes to.
// Sheet mutations stay in memory until Persist is called.
type Workbook interface {
	// ReadTable returns the rows of a sheet after skipping headerRows rows.
	// Missing cells are empty; a missing sheet yields *SheetNotFoundError.
	ReadTable(sheet string, headerRows int) ([]entities.Row, error)
	HasSheet(sheet string) bool
	// CreateOrReplaceSheet deletes any sheet of that name and creates an empty one.
	CreateOrReplaceSheet(name string) (Sheet, error)
	Persist() error
	Close() error
}

// Sheet is a writable sheet handle
type Sheet interface {
	Name() string
	AppendRow(row entities.Row) error
}

// ColumnFormatter is implemented by sheets that support cosmetic column sizing
type ColumnFormatter interface {
	// AutoSizeColumns sets each column to the longest rendered value plus padding.
	AutoSizeColumns(padding float64) error
	SetColumnWidths(columns int, width float64) error
	BoldHeader() error
}
