package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/vsinha/orderbom/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	RunTime   time.Duration
	InputFile string
	Writer    io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(result *dto.RunResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.RunResult, config Config) error {
	out := config.writer()

	fmt.Fprintf(out, "📊 Order BOM Results Summary\n")
	fmt.Fprintf(out, "============================\n\n")

	if config.InputFile != "" {
		fmt.Fprintf(out, "Workbook: %s\n", config.InputFile)
	}
	fmt.Fprintf(out, "Run: %s (%s)\n", result.RunID, result.Mode)
	fmt.Fprintf(out, "Processing Date: %s\n", result.ProcessedAt.Format("2006-01-02"))
	fmt.Fprintf(out, "Products: %d\n", len(result.Products))
	fmt.Fprintf(out, "Components: %d\n", len(result.Components))
	fmt.Fprintf(out, "Diagnostics: %d\n", len(result.Diagnostics))
	if config.RunTime > 0 {
		fmt.Fprintf(out, "Run Time: %v\n", config.RunTime)
	}
	fmt.Fprintln(out)

	if len(result.Products) > 0 {
		fmt.Fprintf(out, "📋 Products:\n")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tDESCRIPTION\tQUANTITY\tDUE DATE\tCOMPONENTS\t")
		for _, p := range result.Products {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t\n",
				p.ProductCode,
				p.Description,
				p.Quantity.String(),
				p.DueDate.Format("2006-01-02"),
				len(p.Components))

			if config.Verbose {
				for _, c := range p.Components {
					fmt.Fprintf(w, "  %s\t%s\t%s\tx %s\t\t\n",
						c.PartNumber, c.Description, c.TotalQuantity.String(), c.Factor.String())
				}
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if len(result.Components) > 0 {
		fmt.Fprintf(out, "🔩 Component Totals:\n")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "COMPONENT\tDESCRIPTION\tQUANTITY\t")
		for _, c := range result.Components {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", c.PartNumber, c.Description, c.Quantity.String())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(out, "⚠️  Diagnostics:\n")
		if config.Verbose {
			for _, d := range result.Diagnostics {
				fmt.Fprintf(out, "  %s\n", d)
			}
		} else {
			kinds := make([]string, 0, len(result.Counts))
			for kind := range result.Counts {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				fmt.Fprintf(out, "  %-28s %d\n", kind, result.Counts[kind])
			}
		}
		fmt.Fprintln(out)
	}

	if len(result.SheetsWritten) > 0 {
		fmt.Fprintf(out, "💾 Sheets written: %v\n", result.SheetsWritten)
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.RunResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "orderbom_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the component totals and product breakdowns as CSV
func generateCSVOutput(result *dto.RunResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	componentsFile := filepath.Join(config.OutputDir, "components.csv")
	if err := writeComponentsCSV(result, componentsFile); err != nil {
		return fmt.Errorf("failed to write components CSV: %w", err)
	}

	breakdownFile := filepath.Join(config.OutputDir, "breakdown.csv")
	if err := writeBreakdownCSV(result, breakdownFile); err != nil {
		return fmt.Errorf("failed to write breakdown CSV: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 CSV results saved to:\n")
		fmt.Fprintf(config.writer(), "  Components: %s\n", componentsFile)
		fmt.Fprintf(config.writer(), "  Breakdown: %s\n", breakdownFile)
	}

	return nil
}

func writeComponentsCSV(result *dto.RunResult, filename string) error {
	records := [][]string{{"component", "description", "quantity"}}
	for _, c := range result.Components {
		records = append(records, []string{string(c.PartNumber), c.Description, c.Quantity.String()})
	}
	return writeCSV(filename, records)
}

func writeBreakdownCSV(result *dto.RunResult, filename string) error {
	records := [][]string{{"product", "product_description", "product_quantity", "due_date", "component", "component_description", "factor", "total_quantity"}}
	for _, p := range result.Products {
		for _, c := range p.Components {
			records = append(records, []string{
				string(p.ProductCode),
				p.Description,
				p.Quantity.String(),
				p.DueDate.Format("2006-01-02"),
				string(c.PartNumber),
				c.Description,
				c.Factor.String(),
				c.TotalQuantity.String(),
			})
		}
	}
	return writeCSV(filename, records)
}

func writeCSV(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}
