package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vsinha/orderbom/pkg/domain/entities"
)

// Config holds everything a pipeline run needs besides the workbook path
type Config struct {
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Source    SourceConfig    `mapstructure:"source"`
	BOM       BOMConfig       `mapstructure:"bom"`
	Report    ReportConfig    `mapstructure:"report"`
	Normalize NormalizeConfig `mapstructure:"normalize"`
}

// SheetsConfig names the input and output sheets
type SheetsConfig struct {
	Source   string `mapstructure:"source"`
	BOM      string `mapstructure:"bom"`
	Summary  string `mapstructure:"summary"`
	Expanded string `mapstructure:"expanded"`
}

// SourceConfig holds the 0-based column offsets of the order extract
type SourceConfig struct {
	HeaderRows     int `mapstructure:"header_rows"`
	ProductCol     int `mapstructure:"product_col"`
	DescriptionCol int `mapstructure:"description_col"`
	QuantityCol    int `mapstructure:"quantity_col"`
	DueDateCol     int `mapstructure:"due_date_col"`
}

// BOMConfig holds the 0-based column offsets of the BOM sheet
type BOMConfig struct {
	HeaderRows     int `mapstructure:"header_rows"`
	ParentCol      int `mapstructure:"parent_col"`
	ComponentCol   int `mapstructure:"component_col"`
	DescriptionCol int `mapstructure:"description_col"`
	FactorCol      int `mapstructure:"factor_col"`
}

// ReportConfig controls rendering of the output sheets
type ReportConfig struct {
	DateLayout       string  `mapstructure:"date_layout"`
	ExpandedColWidth float64 `mapstructure:"expanded_col_width"`
}

// NormalizeConfig lists the description markers, checked in order
type NormalizeConfig struct {
	Markers []string `mapstructure:"markers"`
}

// Default returns the configuration matching the SAP extract layout
func Default() *Config {
	return &Config{
		Sheets: SheetsConfig{
			Source:   "Planilha1",
			BOM:      "BOM SAP",
			Summary:  "CarteiraSAP",
			Expanded: "Processed BOM",
		},
		Source: SourceConfig{
			HeaderRows:     1,
			ProductCol:     4,
			DescriptionCol: 5,
			QuantityCol:    9,
			DueDateCol:     2,
		},
		BOM: BOMConfig{
			HeaderRows:     1,
			ParentCol:      0,
			ComponentCol:   3,
			DescriptionCol: 4,
			FactorCol:      5,
		},
		Report: ReportConfig{
			DateLayout:       "02-01-2006",
			ExpandedColWidth: 20,
		},
		Normalize: NormalizeConfig{
			Markers: []string{"CB", "FIO"},
		},
	}
}

// SetDefaults registers Default() values on v
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("sheets.source", d.Sheets.Source)
	v.SetDefault("sheets.bom", d.Sheets.BOM)
	v.SetDefault("sheets.summary", d.Sheets.Summary)
	v.SetDefault("sheets.expanded", d.Sheets.Expanded)

	v.SetDefault("source.header_rows", d.Source.HeaderRows)
	v.SetDefault("source.product_col", d.Source.ProductCol)
	v.SetDefault("source.description_col", d.Source.DescriptionCol)
	v.SetDefault("source.quantity_col", d.Source.QuantityCol)
	v.SetDefault("source.due_date_col", d.Source.DueDateCol)

	v.SetDefault("bom.header_rows", d.BOM.HeaderRows)
	v.SetDefault("bom.parent_col", d.BOM.ParentCol)
	v.SetDefault("bom.component_col", d.BOM.ComponentCol)
	v.SetDefault("bom.description_col", d.BOM.DescriptionCol)
	v.SetDefault("bom.factor_col", d.BOM.FactorCol)

	v.SetDefault("report.date_layout", d.Report.DateLayout)
	v.SetDefault("report.expanded_col_width", d.Report.ExpandedColWidth)

	v.SetDefault("normalize.markers", d.Normalize.Markers)
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks sheet names and column offsets
func (c *Config) Validate() error {
	sheets := []struct{ key, name string }{
		{"sheets.source", c.Sheets.Source},
		{"sheets.bom", c.Sheets.BOM},
		{"sheets.summary", c.Sheets.Summary},
		{"sheets.expanded", c.Sheets.Expanded},
	}
	for _, s := range sheets {
		if strings.TrimSpace(s.name) == "" {
			return fmt.Errorf("%s cannot be empty", s.key)
		}
	}
	if c.Sheets.Summary == c.Sheets.Expanded {
		return fmt.Errorf("summary and expanded sheets must differ, both are '%s'", c.Sheets.Summary)
	}
	if c.Source.HeaderRows < 0 || c.BOM.HeaderRows < 0 {
		return fmt.Errorf("header rows cannot be negative")
	}
	if _, err := c.OrderLayout(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if _, err := c.BOMLayout(); err != nil {
		return fmt.Errorf("bom: %w", err)
	}
	if c.Report.DateLayout == "" {
		return fmt.Errorf("report.date_layout cannot be empty")
	}
	return nil
}

// OrderLayout returns the source column layout
func (c *Config) OrderLayout() (*entities.OrderLayout, error) {
	return entities.NewOrderLayout(
		c.Source.ProductCol,
		c.Source.DescriptionCol,
		c.Source.QuantityCol,
		c.Source.DueDateCol,
	)
}

// BOMLayout returns the BOM column layout
func (c *Config) BOMLayout() (*entities.BOMLayout, error) {
	return entities.NewBOMLayout(
		c.BOM.ParentCol,
		c.BOM.ComponentCol,
		c.BOM.DescriptionCol,
		c.BOM.FactorCol,
	)
}
