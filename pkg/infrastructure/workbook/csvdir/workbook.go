// Package csvdir stores a workbook as a directory holding one CSV file per
// sheet. It mirrors the xlsx backend for data exported from spreadsheets.
package csvdir

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
)

const extension = ".csv"

// Workbook is a directory of <sheet>.csv files. Written sheets are buffered
// until Persist.
type Workbook struct {
	dir     string
	pending map[string]*Sheet
	order   []string
}

// Verify interface compliance
var _ repositories.Workbook = (*Workbook)(nil)

// Open opens the workbook directory dir
func Open(dir string) (*Workbook, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &repositories.FileNotFoundError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &repositories.FileNotFoundError{Path: dir, Err: fmt.Errorf("%s is not a directory", dir)}
	}

	return &Workbook{
		dir:     dir,
		pending: make(map[string]*Sheet),
		order:   make([]string, 0),
	}, nil
}

// Create creates dir if needed and opens it
func Create(dir string) (*Workbook, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workbook directory: %w", err)
	}
	return Open(dir)
}

// HasSheet reports whether <dir>/<sheet>.csv exists
func (w *Workbook) HasSheet(sheet string) bool {
	path, err := w.sheetPath(sheet)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadTable returns the typed rows of sheet, skipping headerRows records
func (w *Workbook) ReadTable(sheet string, headerRows int) ([]entities.Row, error) {
	path, err := w.sheetPath(sheet)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &repositories.SheetNotFoundError{Sheet: sheet}
		}
		return nil, fmt.Errorf("failed to open sheet file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s CSV: %w", sheet, err)
	}

	if headerRows < 0 {
		headerRows = 0
	}
	if headerRows >= len(records) {
		return []entities.Row{}, nil
	}

	rows := make([]entities.Row, 0, len(records)-headerRows)
	for _, record := range records[headerRows:] {
		row := make(entities.Row, len(record))
		for i, field := range record {
			row[i] = parseCell(field)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// CreateOrReplaceSheet starts an empty buffered sheet. The file on disk is
// replaced when the workbook is persisted.
func (w *Workbook) CreateOrReplaceSheet(name string) (repositories.Sheet, error) {
	if _, err := w.sheetPath(name); err != nil {
		return nil, err
	}

	if _, exists := w.pending[name]; !exists {
		w.order = append(w.order, name)
	}
	sheet := &Sheet{name: name, rows: make([]entities.Row, 0)}
	w.pending[name] = sheet
	return sheet, nil
}

// Persist writes every buffered sheet to its CSV file
func (w *Workbook) Persist() error {
	for _, name := range w.order {
		path, err := w.sheetPath(name)
		if err != nil {
			return err
		}
		if err := writeSheet(path, w.pending[name]); err != nil {
			return err
		}
	}
	return nil
}

// Close drops buffered sheets that were not persisted
func (w *Workbook) Close() error {
	w.pending = make(map[string]*Sheet)
	w.order = w.order[:0]
	return nil
}

func (w *Workbook) sheetPath(sheet string) (string, error) {
	if sheet == "" {
		return "", fmt.Errorf("sheet name cannot be empty")
	}
	if strings.ContainsAny(sheet, `/\`) || sheet == "." || sheet == ".." {
		return "", fmt.Errorf("invalid sheet name %q for a CSV workbook", sheet)
	}
	return filepath.Join(w.dir, sheet+extension), nil
}

func writeSheet(path string, sheet *Sheet) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sheet-*"+extension)
	if err != nil {
		return fmt.Errorf("failed to create file for sheet %s: %w", sheet.name, err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	for _, row := range sheet.rows {
		record := make([]string, len(row))
		for i, c := range row {
			record[i] = formatCell(c)
		}
		if err := writer.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write sheet %s: %w", sheet.name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write sheet %s: %w", sheet.name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close sheet %s: %w", sheet.name, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace sheet file %s: %w", path, err)
	}
	return nil
}
