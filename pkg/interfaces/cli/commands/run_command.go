package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vsinha/orderbom/pkg/application/services/orchestration"
	"github.com/vsinha/orderbom/pkg/infrastructure/config"
)

// runCmd runs both stages of the pipeline
var runCmd = newPipelineCmd(orchestration.ModeFull,
	"Group the order sheet and expand it through the BOM.",
	`Groups the source order sheet by product and normalized description, writes the
grouped summary sheet, expands every product through the BOM sheet and writes
the expanded sheet. Both sheets are recreated on every run.`)

// summaryCmd only writes the grouped summary sheet
var summaryCmd = newPipelineCmd(orchestration.ModeSummary,
	"Group the order sheet into the summary sheet.",
	`Groups the source order sheet by product and normalized description and
writes one row per group with the total quantity and earliest due date.`)

// bomCmd expands an existing summary sheet
var bomCmd = newPipelineCmd(orchestration.ModeExpand,
	"Expand the summary sheet through the BOM.",
	`Reads the grouped summary sheet written by the summary command, multiplies
every product by the factors of the BOM sheet and writes the expanded sheet.`)

func newPipelineCmd(mode orchestration.Mode, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode) + " <workbook>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if initErr != nil {
				return initErr
			}

			pipeline, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			outputDir, _ := cmd.Flags().GetString("output")
			verbose, _ := cmd.Flags().GetBool("verbose")

			command := NewPipelineCommand(Config{
				WorkbookPath: args[0],
				Mode:         mode,
				Format:       format,
				OutputDir:    outputDir,
				Verbose:      verbose,
				Out:          cmd.OutOrStdout(),
			}, pipeline)
			return command.Execute(cmd.Context())
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd, summaryCmd, bomCmd)
}
