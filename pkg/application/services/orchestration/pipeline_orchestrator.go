package orchestration

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vsinha/orderbom/pkg/application/dto"
	"github.com/vsinha/orderbom/pkg/application/services/aggregation"
	"github.com/vsinha/orderbom/pkg/application/services/expansion"
	"github.com/vsinha/orderbom/pkg/application/services/report"
	"github.com/vsinha/orderbom/pkg/domain/entities"
	"github.com/vsinha/orderbom/pkg/domain/repositories"
	"github.com/vsinha/orderbom/pkg/domain/services"
	"github.com/vsinha/orderbom/pkg/infrastructure/config"
	"github.com/vsinha/orderbom/pkg/infrastructure/diagnostics"
	"github.com/vsinha/orderbom/pkg/infrastructure/logging"
	"github.com/vsinha/orderbom/pkg/infrastructure/repositories/memory"
)

// Mode selects which stages of the pipeline run
type Mode string

const (
	// ModeFull groups the source sheet and expands it through the BOM
	ModeFull Mode = "run"
	// ModeSummary only writes the grouped summary sheet
	ModeSummary Mode = "summary"
	// ModeExpand reads the grouped summary sheet back and expands it
	ModeExpand Mode = "bom"
)

// ParseMode converts a command name into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeSummary, ModeExpand:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode: %s", s)
	}
}

func (m Mode) groups() bool  { return m != ModeExpand }
func (m Mode) expands() bool { return m != ModeSummary }

// summaryHeaderRows is the header height of the summary sheet this
// pipeline writes
const summaryHeaderRows = 1

// PipelineOrchestrator runs load, transform and save against one workbook
type PipelineOrchestrator struct {
	cfg       *config.Config
	log       logging.Logger
	clock     aggregation.Clock
	validator *services.BOMValidator
}

// NewPipelineOrchestrator creates an orchestrator. A nil cfg uses the
// defaults, a nil log discards output and a nil clock uses time.Now.
func NewPipelineOrchestrator(cfg *config.Config, log logging.Logger, clock aggregation.Clock) *PipelineOrchestrator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineOrchestrator{
		cfg:       cfg,
		log:       logging.OrNop(log),
		clock:     clock,
		validator: services.NewBOMValidator(),
	}
}

// inputs holds every sheet a run reads, loaded before anything is written
type inputs struct {
	source  []entities.Row
	summary []entities.Row
	bom     []entities.Row
}

// Run executes the stages selected by mode. Every input sheet is read before
// any sheet is modified and the workbook is persisted once at the end, so a
// failing run leaves the backing file untouched.
func (o *PipelineOrchestrator) Run(ctx context.Context, wb repositories.Workbook, mode Mode) (*dto.RunResult, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	orderLayout, err := o.cfg.OrderLayout()
	if err != nil {
		return nil, fmt.Errorf("invalid source layout: %w", err)
	}
	bomLayout, err := o.cfg.BOMLayout()
	if err != nil {
		return nil, fmt.Errorf("invalid BOM layout: %w", err)
	}

	runID := uuid.NewString()
	log := logging.WithRun(o.log, runID)
	recorder := diagnostics.NewRecorder(log)

	aggregator := aggregation.NewAggregator(
		*orderLayout,
		services.NewDescriptionNormalizer(o.cfg.Normalize.Markers...),
		recorder,
		o.clock,
	)

	// Step 1: read every input sheet
	in, err := o.readInputs(wb, mode)
	if err != nil {
		return nil, err
	}

	// Step 2: group order lines into the product ledger
	var ledger *entities.ProductLedger
	if mode.groups() {
		ledger = aggregator.Aggregate(o.cfg.Sheets.Source, in.source, o.cfg.Source.HeaderRows+1)
		log.Infof("Grouped %d source rows into %d products", len(in.source), ledger.Len())
	} else {
		ledger = aggregator.ReadSummary(o.cfg.Sheets.Summary, in.summary, summaryHeaderRows+1, o.cfg.Report.DateLayout)
		log.Infof("Read %d products from sheet '%s'", ledger.Len(), o.cfg.Sheets.Summary)
	}

	result := &dto.RunResult{
		RunID:         runID,
		Mode:          string(mode),
		ProcessedAt:   aggregator.ProcessingDate(),
		SheetsWritten: make([]string, 0, 2),
		Breakdowns:    make(map[entities.AggregationKey][]entities.ComponentBreakdown),
		Components:    make([]*entities.AggregatedComponent, 0),
	}

	// Step 3: expand products through the BOM
	if mode.expands() {
		lines := expansion.LoadBOM(o.cfg.Sheets.BOM, in.bom, o.cfg.BOM.HeaderRows+1, *bomLayout, recorder)
		bomRepo := memory.NewBOMRepository(len(lines))
		if err := bomRepo.LoadBOMLines(lines); err != nil {
			return nil, fmt.Errorf("failed to load BOM lines: %w", err)
		}

		expanded, err := expansion.NewExpander(bomRepo, recorder).Expand(ctx, ledger)
		if err != nil {
			return nil, fmt.Errorf("failed to expand BOM: %w", err)
		}
		result.Components = expanded.Components.Components()
		result.Breakdowns = expanded.Breakdowns
		if result.Coverage, err = o.checkCoverage(log, recorder, ledger, bomRepo); err != nil {
			return nil, err
		}

		log.Infof("Expanded %d products into %d components using %d BOM lines",
			ledger.Len(), expanded.Components.Len(), len(lines))
	}

	// Step 4: write output sheets, then persist once
	builder := report.NewBuilder(o.cfg.Report.DateLayout)
	if mode.groups() {
		if err := o.writeSummary(wb, builder.SummaryRows(ledger)); err != nil {
			return nil, err
		}
		result.SheetsWritten = append(result.SheetsWritten, o.cfg.Sheets.Summary)
	}
	if mode.expands() {
		if err := o.writeExpanded(wb, builder.ExpandedRows(ledger, result.Breakdowns)); err != nil {
			return nil, err
		}
		result.SheetsWritten = append(result.SheetsWritten, o.cfg.Sheets.Expanded)
	}

	if err := wb.Persist(); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}
	for _, sheet := range result.SheetsWritten {
		log.Infof("Results have been written to sheet '%s'", sheet)
	}

	result.Products = productResults(ledger, result.Breakdowns)
	result.Diagnostics = recorder.Diagnostics()
	result.Counts = recorder.Counts()
	return result, nil
}

func (o *PipelineOrchestrator) readInputs(wb repositories.Workbook, mode Mode) (*inputs, error) {
	in := &inputs{}
	var err error

	if mode.groups() {
		in.source, err = wb.ReadTable(o.cfg.Sheets.Source, o.cfg.Source.HeaderRows)
		if err != nil {
			return nil, fmt.Errorf("failed to read source sheet: %w", err)
		}
	} else {
		in.summary, err = wb.ReadTable(o.cfg.Sheets.Summary, summaryHeaderRows)
		if err != nil {
			return nil, fmt.Errorf("failed to read summary sheet: %w", err)
		}
	}

	if mode.expands() {
		in.bom, err = wb.ReadTable(o.cfg.Sheets.BOM, o.cfg.BOM.HeaderRows)
		if err != nil {
			return nil, fmt.Errorf("failed to read BOM sheet: %w", err)
		}
	}

	return in, nil
}

// checkCoverage records BOM parents that match no product and logs the
// validator's findings. Products without BOM lines were already recorded
// by the expander.
func (o *PipelineOrchestrator) checkCoverage(log logging.Logger, sink diagnostics.Sink, ledger *entities.ProductLedger, bomRepo repositories.BOMRepository) (*dto.CoverageResult, error) {
	validation, err := o.validator.ValidateCoverage(ledger, bomRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to check BOM coverage: %w", err)
	}

	for _, parent := range validation.OrphanedParents {
		sink.Record(diagnostics.NewOrphanedBOMParent(parent))
	}
	for _, warning := range validation.Warnings {
		log.Debugf("BOM coverage: %s", warning)
	}

	return &dto.CoverageResult{
		ProductsWithoutBOM: validation.ProductsWithoutBOM,
		OrphanedParents:    validation.OrphanedParents,
		DuplicateLines:     len(validation.DuplicateLines),
	}, nil
}

func (o *PipelineOrchestrator) writeSummary(wb repositories.Workbook, rows []entities.Row) error {
	return writeSheet(wb, o.cfg.Sheets.Summary, rows, func(f repositories.ColumnFormatter) error {
		return f.AutoSizeColumns(2)
	})
}

func (o *PipelineOrchestrator) writeExpanded(wb repositories.Workbook, rows []entities.Row) error {
	return writeSheet(wb, o.cfg.Sheets.Expanded, rows, func(f repositories.ColumnFormatter) error {
		return f.SetColumnWidths(len(report.ExpandedHeader), o.cfg.Report.ExpandedColWidth)
	})
}

// writeSheet recreates the sheet, appends rows and applies column widths
// when the workbook supports them
func writeSheet(wb repositories.Workbook, name string, rows []entities.Row, widths func(repositories.ColumnFormatter) error) error {
	sheet, err := wb.CreateOrReplaceSheet(name)
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	for _, row := range rows {
		if err := sheet.AppendRow(row); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}

	formatter, ok := sheet.(repositories.ColumnFormatter)
	if !ok {
		return nil
	}
	if err := widths(formatter); err != nil {
		return fmt.Errorf("failed to size columns of %s: %w", name, err)
	}
	if err := formatter.BoldHeader(); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", name, err)
	}
	return nil
}

func productResults(ledger *entities.ProductLedger, breakdowns map[entities.AggregationKey][]entities.ComponentBreakdown) []dto.ProductResult {
	products := make([]dto.ProductResult, 0, ledger.Len())
	for _, p := range ledger.Products() {
		components := breakdowns[p.Key]
		if components == nil {
			components = []entities.ComponentBreakdown{}
		}
		products = append(products, dto.ProductResult{
			ProductCode: p.Key.ProductCode,
			Description: p.Key.Description,
			Quantity:    p.Quantity,
			DueDate:     p.DueDate,
			Components:  components,
		})
	}
	return products
}
