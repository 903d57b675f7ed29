package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/orderbom/pkg/infrastructure/config"
	"github.com/vsinha/orderbom/pkg/infrastructure/workbook/csvdir"
	"github.com/vsinha/orderbom/pkg/infrastructure/workbook/xlsx"
)

func testGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Products:    6,
		Components:  3,
		OrderLines:  40,
		MaxBOMLines: 3,
		Seed:        42,
	}
}

func TestGenerateCommand_CSVDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gerado")
	cfg := config.Default()

	if err := NewGenerateCommand(testGenerateConfig(), cfg).Execute(context.Background(), dir); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	wb, err := csvdir.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	orders, err := wb.ReadTable(cfg.Sheets.Source, cfg.Source.HeaderRows)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(orders) != 40 {
		t.Errorf("Expected 40 order lines, got %d", len(orders))
	}
	for i, row := range orders {
		if _, ok := row.At(cfg.Source.QuantityCol).Decimal(); !ok {
			t.Errorf("Expected numeric quantity without noise on line %d, got %v", i, row.At(cfg.Source.QuantityCol))
		}
		if !strings.HasPrefix(row.At(cfg.Source.ProductCol).String(), "PRD") {
			t.Errorf("Expected product code on line %d, got %q", i, row.At(cfg.Source.ProductCol).String())
		}
	}

	bom, err := wb.ReadTable(cfg.Sheets.BOM, cfg.BOM.HeaderRows)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	orphan := false
	for _, row := range bom {
		if row.At(cfg.BOM.ParentCol).String() == "PRD99999" {
			orphan = true
		}
	}
	if !orphan {
		t.Error("Expected a BOM parent that is never ordered")
	}
}

func TestGenerateCommand_SameSeedSameWorkbook(t *testing.T) {
	first := filepath.Join(t.TempDir(), "a")
	second := filepath.Join(t.TempDir(), "b")

	for _, dir := range []string{first, second} {
		if err := NewGenerateCommand(testGenerateConfig(), nil).Execute(context.Background(), dir); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
	}

	for _, name := range []string{"Planilha1.csv", "BOM SAP.csv"} {
		a, err := os.ReadFile(filepath.Join(first, name))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		b, err := os.ReadFile(filepath.Join(second, name))
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("Expected %s to be identical for the same seed", name)
		}
	}
}

func TestGenerateCommand_XLSXFeedsPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gerado.xlsx")
	var log bytes.Buffer

	gen := testGenerateConfig()
	gen.Noise = 0.2
	gen.Verbose = true
	gen.Out = &log
	if err := NewGenerateCommand(gen, nil).Execute(context.Background(), path); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(log.String(), "Workbook generated") {
		t.Errorf("Expected verbose progress output, got %q", log.String())
	}

	wb, err := xlsx.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for _, sheet := range []string{"Planilha1", "BOM SAP"} {
		if !wb.HasSheet(sheet) {
			t.Errorf("Expected sheet %s in generated workbook", sheet)
		}
	}
	wb.Close()

	var out bytes.Buffer
	cmd := newTestCommand(Config{
		WorkbookPath: path,
		Mode:         "run",
		Format:       "json",
		Out:          &out,
	})
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("pipeline failed on generated workbook: %v", err)
	}

	var result struct {
		Products      []json.RawMessage `json:"products"`
		SheetsWritten []string          `json:"sheets_written"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(result.Products) == 0 {
		t.Error("Expected aggregated products from generated workbook")
	}
	if len(result.SheetsWritten) != 2 {
		t.Errorf("Expected 2 sheets written, got %v", result.SheetsWritten)
	}
}

func TestGenerateCommand_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GenerateConfig)
	}{
		{"no products", func(c *GenerateConfig) { c.Products = 0 }},
		{"no components", func(c *GenerateConfig) { c.Components = 0 }},
		{"negative lines", func(c *GenerateConfig) { c.OrderLines = -1 }},
		{"no BOM lines", func(c *GenerateConfig) { c.MaxBOMLines = 0 }},
		{"noise above one", func(c *GenerateConfig) { c.Noise = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testGenerateConfig()
			tt.modify(&cfg)
			dir := filepath.Join(t.TempDir(), "wb")

			if err := NewGenerateCommand(cfg, nil).Execute(context.Background(), dir); err == nil {
				t.Error("Expected validation error")
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Errorf("Expected nothing created on validation error, got %v", err)
			}
		})
	}
}

func TestRootCommand_Generate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wb")

	if _, err := executeRoot(t, "generate", dir, "--seed", "7", "--lines", "10", "--loglevel", "error"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Planilha1.csv")); err != nil {
		t.Errorf("Expected generated source sheet, got %v", err)
	}
}
