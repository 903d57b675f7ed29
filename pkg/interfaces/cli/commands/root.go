package commands

import (
	"errors"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vsinha/orderbom/pkg/infrastructure/logging"
)

var (
	cfgFile string
	// initErr holds a config or log level problem found by initConfig; the
	// commands report it instead of running.
	initErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orderbom",
	Short: "Groups a sales-order extract by product and expands it through a BOM.",
	Long: `orderbom reads the sales-order sheet of a workbook, normalizes the product
descriptions, groups the order lines by product and writes a grouped summary
sheet. It then multiplies every product by the factors of the BOM sheet and
writes the component requirements to an expanded sheet.

A workbook is either an .xlsx file or a directory holding one CSV file per sheet.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.orderbom.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "Output format: text, json, csv")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory for json/csv results (optional for json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print component breakdowns and every diagnostic")
}

// initConfig reads in the config file if there is one
func initConfig() {
	initErr = nil
	viper.Reset()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			initErr = err
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".orderbom")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			initErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
	} else {
		logging.Log.Debugf("Using config file %s", viper.ConfigFileUsed())
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	if err := logging.SetLogLevel(levelString); err != nil {
		initErr = err
	}
}
