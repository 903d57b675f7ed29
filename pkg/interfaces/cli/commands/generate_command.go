package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
	"github.com/vsinha/orderbom/pkg/infrastructure/config"
	"github.com/vsinha/orderbom/pkg/infrastructure/workbook/csvdir"
	"github.com/vsinha/orderbom/pkg/infrastructure/workbook/xlsx"
)

// GenerateConfig holds configuration for workbook generation
type GenerateConfig struct {
	Products    int     // Number of distinct products ordered
	Components  int     // Size of the component pool shared by all BOMs
	OrderLines  int     // Number of sales-order lines
	MaxBOMLines int     // Maximum BOM lines per product
	Noise       float64 // Share of order lines with a missing quantity or due date
	Seed        int64   // Random seed for reproducible generation
	Verbose     bool    // Verbose output
	Out         io.Writer
}

// GenerateCommand writes a synthetic workbook in the configured sheet layout
type GenerateCommand struct {
	config   GenerateConfig
	pipeline *config.Config
	rand     *rand.Rand
	baseDate time.Time
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(cfg GenerateConfig, pipeline *config.Config) *GenerateCommand {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if pipeline == nil {
		pipeline = config.Default()
	}

	return &GenerateCommand{
		config:   cfg,
		pipeline: pipeline,
		rand:     rand.New(rand.NewSource(seed)),
		baseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// generatedProduct is a product of the synthetic portfolio
type generatedProduct struct {
	code        string
	description string
	hasBOM      bool
}

// Execute writes the workbook to path. A path ending in .xlsx becomes an
// xlsx file, anything else a CSV directory.
func (cmd *GenerateCommand) Execute(ctx context.Context, path string) error {
	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	wb, err := createWorkbook(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	products := cmd.generateProducts()
	components := cmd.generateComponents()

	cmd.logf("📋 Generating %d order lines for %d products...\n", cmd.config.OrderLines, len(products))
	if err := cmd.writeOrders(wb, products); err != nil {
		return fmt.Errorf("failed to generate orders: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	cmd.logf("🔗 Generating BOM over %d components...\n", len(components))
	bomLines, err := cmd.writeBOM(wb, products, components)
	if err != nil {
		return fmt.Errorf("failed to generate BOM: %w", err)
	}

	if err := wb.Persist(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	cmd.logf("✅ Workbook generated in %s (%d BOM lines)\n", path, bomLines)
	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.Products <= 0 {
		return fmt.Errorf("products must be positive, got %d", cmd.config.Products)
	}
	if cmd.config.Components <= 0 {
		return fmt.Errorf("components must be positive, got %d", cmd.config.Components)
	}
	if cmd.config.OrderLines < 0 {
		return fmt.Errorf("order lines cannot be negative, got %d", cmd.config.OrderLines)
	}
	if cmd.config.MaxBOMLines <= 0 {
		return fmt.Errorf("max BOM lines must be positive, got %d", cmd.config.MaxBOMLines)
	}
	if cmd.config.Noise < 0 || cmd.config.Noise > 1 {
		return fmt.Errorf("noise must be between 0 and 1, got %.2f", cmd.config.Noise)
	}
	return nil
}

func (cmd *GenerateCommand) logf(format string, args ...interface{}) {
	if cmd.config.Verbose && cmd.config.Out != nil {
		fmt.Fprintf(cmd.config.Out, format, args...)
	}
}

// generateProducts creates cable and wire products. About one in ten has a
// description without a marker and one in twenty has no BOM.
func (cmd *GenerateCommand) generateProducts() []generatedProduct {
	products := make([]generatedProduct, cmd.config.Products)
	for i := range products {
		var description string
		switch roll := cmd.rand.Float64(); {
		case roll < 0.1:
			description = fmt.Sprintf("ACESSORIO %d", i+1)
		case roll < 0.55:
			description = fmt.Sprintf("CB-%dX%d,%dMM", 1+cmd.rand.Intn(4), 1+cmd.rand.Intn(16), cmd.rand.Intn(10))
		default:
			description = fmt.Sprintf("FIO-%d,%dMM", 1+cmd.rand.Intn(10), cmd.rand.Intn(10))
		}

		products[i] = generatedProduct{
			code:        fmt.Sprintf("PRD%05d", i+1),
			description: description,
			hasBOM:      cmd.rand.Float64() >= 0.05,
		}
	}
	return products
}

func (cmd *GenerateCommand) generateComponents() []generatedProduct {
	kinds := []string{"COBRE NU", "PVC ANTICHAMA", "FITA ALUMINIO", "MALHA", "CAPA PE"}
	components := make([]generatedProduct, cmd.config.Components)
	for i := range components {
		components[i] = generatedProduct{
			code:        fmt.Sprintf("MP%05d", i+1),
			description: fmt.Sprintf("%s %d", kinds[cmd.rand.Intn(len(kinds))], i+1),
		}
	}
	return components
}

// noisyPrefix mimics the free text typed before the marker in the extract
func (cmd *GenerateCommand) noisyPrefix() string {
	prefixes := []string{"", "", "PED ", "ROLO 100M ", "*URGENTE* ", "LOTE 7 "}
	return prefixes[cmd.rand.Intn(len(prefixes))]
}

func (cmd *GenerateCommand) writeOrders(wb repositories.Workbook, products []generatedProduct) error {
	src := cmd.pipeline.Source
	width := 1 + maxInt(src.ProductCol, src.DescriptionCol, src.QuantityCol, src.DueDateCol)

	header := columnTitles(width, map[int]string{
		src.ProductCol:     "Produto",
		src.DescriptionCol: "Descrição",
		src.QuantityCol:    "Quantidade",
		src.DueDateCol:     "Data Entrega",
	})

	sheet, err := wb.CreateOrReplaceSheet(cmd.pipeline.Sheets.Source)
	if err != nil {
		return err
	}
	for i := 0; i < src.HeaderRows; i++ {
		if err := sheet.AppendRow(header); err != nil {
			return err
		}
	}

	for i := 0; i < cmd.config.OrderLines; i++ {
		product := products[cmd.rand.Intn(len(products))]
		row := emptyRow(width)

		row[src.ProductCol] = entities.StringCell(product.code)
		row[src.DescriptionCol] = entities.StringCell(cmd.noisyPrefix() + product.description)
		row[src.QuantityCol] = entities.NumberCell(decimal.NewFromInt(int64(1 + cmd.rand.Intn(500))))
		row[src.DueDateCol] = entities.DateCell(cmd.baseDate.AddDate(0, 0, cmd.rand.Intn(180)))

		if cmd.rand.Float64() < cmd.config.Noise {
			if cmd.rand.Intn(2) == 0 {
				row[src.QuantityCol] = entities.EmptyCell()
			} else {
				row[src.DueDateCol] = entities.StringCell("A DEFINIR")
			}
		}

		if err := sheet.AppendRow(row); err != nil {
			return err
		}
	}

	return nil
}

// writeBOM writes the BOM sheet and returns the number of lines written.
// Components are drawn from a shared pool so totals accumulate across
// products, and one parent nobody orders is added.
func (cmd *GenerateCommand) writeBOM(wb repositories.Workbook, products, components []generatedProduct) (int, error) {
	b := cmd.pipeline.BOM
	width := 1 + maxInt(b.ParentCol, b.ComponentCol, b.DescriptionCol, b.FactorCol)
	factors := []string{"0.5", "1", "2", "3.25", "0.125"}

	header := columnTitles(width, map[int]string{
		b.ParentCol:      "Material",
		b.ComponentCol:   "Componente",
		b.DescriptionCol: "Texto Breve",
		b.FactorCol:      "Quantidade",
	})

	sheet, err := wb.CreateOrReplaceSheet(cmd.pipeline.Sheets.BOM)
	if err != nil {
		return 0, err
	}
	for i := 0; i < b.HeaderRows; i++ {
		if err := sheet.AppendRow(header); err != nil {
			return 0, err
		}
	}

	parents := make([]generatedProduct, 0, len(products)+1)
	for _, p := range products {
		if p.hasBOM {
			parents = append(parents, p)
		}
	}
	parents = append(parents, generatedProduct{code: "PRD99999"})

	lines := 0
	for _, parent := range parents {
		n := 1 + cmd.rand.Intn(cmd.config.MaxBOMLines)
		for i := 0; i < n; i++ {
			component := components[cmd.rand.Intn(len(components))]
			row := emptyRow(width)
			row[b.ParentCol] = entities.StringCell(parent.code)
			row[b.ComponentCol] = entities.StringCell(component.code)
			row[b.DescriptionCol] = entities.StringCell(component.description)
			row[b.FactorCol] = entities.NumberCell(decimal.RequireFromString(factors[cmd.rand.Intn(len(factors))]))

			if err := sheet.AppendRow(row); err != nil {
				return 0, err
			}
			lines++
		}
	}

	return lines, nil
}

// createWorkbook creates an xlsx file for .xlsx paths and a CSV directory otherwise
func createWorkbook(path string) (repositories.Workbook, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsx.New(path), nil
	}
	return csvdir.Create(path)
}

func columnTitles(width int, named map[int]string) entities.Row {
	row := make(entities.Row, width)
	for i := range row {
		title, ok := named[i]
		if !ok {
			title = fmt.Sprintf("Coluna %d", i+1)
		}
		row[i] = entities.StringCell(title)
	}
	return row
}

func emptyRow(width int) entities.Row {
	row := make(entities.Row, width)
	for i := range row {
		row[i] = entities.EmptyCell()
	}
	return row
}

func maxInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// generateCmd writes a synthetic workbook for trying out the pipeline
var generateCmd = &cobra.Command{
	Use:   "generate <workbook>",
	Short: "Generate a synthetic order and BOM workbook.",
	Long: `Generates a workbook with a sales-order sheet and a BOM sheet laid out as
configured. Descriptions carry noisy prefixes before their CB or FIO marker,
some lines miss a quantity or due date, components are shared across products
and a few products have no BOM. A path ending in .xlsx creates an xlsx file,
any other path a directory of CSV files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if initErr != nil {
			return initErr
		}

		pipeline, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		products, _ := cmd.Flags().GetInt("products")
		components, _ := cmd.Flags().GetInt("components")
		lines, _ := cmd.Flags().GetInt("lines")
		maxBOM, _ := cmd.Flags().GetInt("max-bom-lines")
		noise, _ := cmd.Flags().GetFloat64("noise")
		seed, _ := cmd.Flags().GetInt64("seed")
		verbose, _ := cmd.Flags().GetBool("verbose")

		command := NewGenerateCommand(GenerateConfig{
			Products:    products,
			Components:  components,
			OrderLines:  lines,
			MaxBOMLines: maxBOM,
			Noise:       noise,
			Seed:        seed,
			Verbose:     verbose,
			Out:         cmd.OutOrStdout(),
		}, pipeline)
		return command.Execute(cmd.Context(), args[0])
	},
}

func init() {
	generateCmd.Flags().Int("products", 20, "Number of distinct products")
	generateCmd.Flags().Int("components", 8, "Size of the shared component pool")
	generateCmd.Flags().Int("lines", 100, "Number of sales-order lines")
	generateCmd.Flags().Int("max-bom-lines", 4, "Maximum BOM lines per product")
	generateCmd.Flags().Float64("noise", 0.05, "Share of order lines missing a quantity or due date")
	generateCmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")

	rootCmd.AddCommand(generateCmd)
}
