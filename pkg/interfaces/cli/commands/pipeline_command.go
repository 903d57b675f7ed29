package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vsinha/orderbom/pkg/application/services/orchestration"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
	"github.com/vsinha/orderbom/pkg/infrastructure/config"
	"github.com/vsinha/orderbom/pkg/infrastructure/logging"
	"github.com/vsinha/orderbom/pkg/infrastructure/workbook/csvdir"
	"github.com/vsinha/orderbom/pkg/infrastructure/workbook/xlsx"
	"github.com/vsinha/orderbom/pkg/interfaces/cli/output"
)

// Config holds configuration for a pipeline command
type Config struct {
	WorkbookPath string
	Mode         orchestration.Mode
	Format       string
	OutputDir    string
	Verbose      bool
	Out          io.Writer
}

// PipelineCommand opens a workbook, runs the pipeline and reports the result
type PipelineCommand struct {
	config   Config
	pipeline *config.Config
	log      logging.Logger
	clock    func() time.Time
}

// NewPipelineCommand creates a command running with the pipeline settings cfg
func NewPipelineCommand(cfg Config, pipeline *config.Config) *PipelineCommand {
	return &PipelineCommand{
		config:   cfg,
		pipeline: pipeline,
		log:      logging.Log,
		clock:    time.Now,
	}
}

// Execute runs the pipeline command
func (c *PipelineCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	wb, err := openWorkbook(c.config.WorkbookPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	orchestrator := orchestration.NewPipelineOrchestrator(c.pipeline, c.log, c.clock)

	startTime := time.Now()
	result, err := orchestrator.Run(ctx, wb, c.config.Mode)
	if err != nil {
		return err
	}
	runTime := time.Since(startTime)

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		RunTime:   runTime,
		InputFile: c.config.WorkbookPath,
		Writer:    c.config.Out,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration
func (c *PipelineCommand) validateInputs() error {
	if c.config.WorkbookPath == "" {
		return fmt.Errorf("workbook path cannot be empty")
	}
	if _, err := orchestration.ParseMode(string(c.config.Mode)); err != nil {
		return err
	}
	switch c.config.Format {
	case "text", "json":
	case "csv":
		if c.config.OutputDir == "" {
			return fmt.Errorf("csv format requires an output directory")
		}
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	return nil
}

// openWorkbook opens a directory as a CSV workbook and anything else as xlsx
func openWorkbook(path string) (repositories.Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &repositories.FileNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return csvdir.Open(path)
	}
	return xlsx.Open(path)
}
