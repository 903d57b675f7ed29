package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/orderbom/pkg/application/services/orchestration"
	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
	"github.com/vsinha/orderbom/pkg/infrastructure/config"
	"github.com/vsinha/orderbom/pkg/infrastructure/logging"
	testhelpers "github.com/vsinha/orderbom/pkg/infrastructure/testing"
)

// writeXLSX saves the sheets of the SAP fixture workbook as an .xlsx file
func writeXLSX(t *testing.T) string {
	t.Helper()

	fixture := testhelpers.BuildSAPWorkbook()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range fixture.SheetNames() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet failed: %v", err)
		}

		for r, row := range fixture.Rows(name) {
			values := make([]interface{}, len(row))
			for c, cell := range row {
				switch cell.Kind {
				case entities.CellEmpty:
					values[c] = nil
				case entities.CellDate:
					values[c] = cell.Time
				case entities.CellNumber:
					values[c] = cell.Number.InexactFloat64()
				default:
					values[c] = cell.String()
				}
			}
			axis, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, axis, &values); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func newTestCommand(cfg Config) *PipelineCommand {
	cmd := NewPipelineCommand(cfg, config.Default())
	cmd.log = logging.Nop{}
	cmd.clock = testhelpers.FixedClock(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	return cmd
}

func TestPipelineCommand_XLSX(t *testing.T) {
	path := writeXLSX(t)
	var out bytes.Buffer

	cmd := newTestCommand(Config{
		WorkbookPath: path,
		Mode:         orchestration.ModeFull,
		Format:       "json",
		Out:          &out,
	})
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var result struct {
		Products []struct {
			ProductCode string    `json:"product_code"`
			Description string    `json:"description"`
			Quantity    string    `json:"quantity"`
			DueDate     time.Time `json:"due_date"`
		} `json:"products"`
		SheetsWritten []string `json:"sheets_written"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Expected JSON output, got %v: %s", err, out.String())
	}
	if len(result.Products) != 3 {
		t.Fatalf("Expected 3 products, got %d", len(result.Products))
	}
	first := result.Products[0]
	if first.ProductCode != "P1" || first.Description != "CB-A" || first.Quantity != "8" {
		t.Errorf("Expected P1|CB-A quantity 8, got %+v", first)
	}
	if !first.DueDate.Equal(testhelpers.Date(2024, 1, 5)) {
		t.Errorf("Expected due date 2024-01-05, got %s", first.DueDate)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("CarteiraSAP")
	if err != nil {
		t.Fatalf("Expected summary sheet, got %v", err)
	}
	if len(rows) != 4 || rows[1][3] != "05-01-2024" {
		t.Errorf("Unexpected summary sheet: %v", rows)
	}
	if _, err := f.GetRows("Processed BOM"); err != nil {
		t.Errorf("Expected expanded sheet, got %v", err)
	}
}

func TestPipelineCommand_CSVDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Planilha1.csv": "Pedido,Cliente,Data,Item,Produto,Descrição,a,b,c,Quantidade\n" +
			"1,ACME,2024-01-10,,P1,x CB-A,,,,5\n" +
			"2,ACME,2024-01-05,,P1,y CB-A,,,,3\n",
		"BOM SAP.csv": "Material,Alt,Item,Componente,Texto,Quantidade\n" +
			"P1,1,1,C1,Cobre,2\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	var out bytes.Buffer
	cmd := newTestCommand(Config{WorkbookPath: dir, Mode: orchestration.ModeFull, Format: "text", Out: &out})
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	summary, err := os.ReadFile(filepath.Join(dir, "CarteiraSAP.csv"))
	if err != nil {
		t.Fatalf("Expected summary CSV, got %v", err)
	}
	if !strings.Contains(string(summary), "P1,CB-A,8,05-01-2024") {
		t.Errorf("Unexpected summary CSV: %q", summary)
	}

	expanded, err := os.ReadFile(filepath.Join(dir, "Processed BOM.csv"))
	if err != nil {
		t.Fatalf("Expected expanded CSV, got %v", err)
	}
	if !strings.Contains(string(expanded), "C1,Cobre,16,,2") {
		t.Errorf("Unexpected expanded CSV: %q", expanded)
	}
	if !strings.Contains(out.String(), "Component Totals") {
		t.Errorf("Expected text report, got:\n%s", out.String())
	}
}

func TestPipelineCommand_MissingWorkbook(t *testing.T) {
	cmd := newTestCommand(Config{
		WorkbookPath: filepath.Join(t.TempDir(), "missing.xlsx"),
		Mode:         orchestration.ModeFull,
		Format:       "text",
		Out:          &bytes.Buffer{},
	})

	err := cmd.Execute(context.Background())
	if !errors.Is(err, repositories.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestPipelineCommand_MissingSheetLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Planilha1.csv")
	if err := os.WriteFile(source, []byte("h\nP1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cmd := newTestCommand(Config{WorkbookPath: dir, Mode: orchestration.ModeFull, Format: "text", Out: &bytes.Buffer{}})
	err := cmd.Execute(context.Background())
	if !errors.Is(err, repositories.ErrSheetNotFound) {
		t.Fatalf("Expected ErrSheetNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "BOM SAP") {
		t.Errorf("Expected error to name the missing sheet, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected no sheet files to be written, got %d entries", len(entries))
	}
}

func TestPipelineCommand_ValidateInputs(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"empty path", Config{Mode: orchestration.ModeFull, Format: "text"}},
		{"bad mode", Config{WorkbookPath: "x.xlsx", Mode: "explode", Format: "text"}},
		{"bad format", Config{WorkbookPath: "x.xlsx", Mode: orchestration.ModeFull, Format: "xml"}},
		{"csv without dir", Config{WorkbookPath: "x.xlsx", Mode: orchestration.ModeFull, Format: "csv"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := newTestCommand(tc.cfg).validateInputs(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
