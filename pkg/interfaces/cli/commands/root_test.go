package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/orderbom/pkg/infrastructure/logging"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer logging.Log.SetLevel(logrus.InfoLevel)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_ConfigOverridesSheets(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Pedidos.csv": "Produto,Descrição,Quantidade\nP1,x CB-A,5\nP1,y CB-A,3\n",
		"BOM.csv":     "Material,Componente,Texto,Fator\nP1,C1,Cobre,2\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	cfgPath := filepath.Join(t.TempDir(), "orderbom.yaml")
	yaml := `sheets:
  source: Pedidos
  bom: BOM
  summary: Resumo
source:
  product_col: 0
  description_col: 1
  quantity_col: 2
  due_date_col: 3
bom:
  parent_col: 0
  component_col: 1
  description_col: 2
  factor_col: 3
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := executeRoot(t, "run", dir, "--config", cfgPath, "--format", "text", "--loglevel", "error")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	summary, err := os.ReadFile(filepath.Join(dir, "Resumo.csv"))
	if err != nil {
		t.Fatalf("Expected summary sheet from config, got %v", err)
	}
	if !strings.Contains(string(summary), "P1,CB-A,8,") {
		t.Errorf("Unexpected summary: %q", summary)
	}
	if !strings.Contains(out, "Component Totals") {
		t.Errorf("Expected text output, got:\n%s", out)
	}
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	_, err := executeRoot(t, "summary", t.TempDir(), "--config", "", "--loglevel", "loud")
	if err == nil || !strings.Contains(err.Error(), "bad log level") {
		t.Errorf("Expected log level error, got %v", err)
	}
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	_, err := executeRoot(t, "run", t.TempDir(), "--config", filepath.Join(t.TempDir(), "nope.yaml"), "--loglevel", "info")
	if err == nil || !strings.Contains(err.Error(), "config file") {
		t.Errorf("Expected config file error, got %v", err)
	}
}

func TestRootCommand_RequiresWorkbook(t *testing.T) {
	if _, err := executeRoot(t, "bom", "--config", "", "--loglevel", "info"); err == nil {
		t.Error("Expected error without a workbook argument")
	}
}
