// Package root contains the root command for the application
package root

import (
	"lmoraes/extrato-csv/internal/common"
	"lmoraes/extrato-csv/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by the import commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the loaded configuration, populated before any command runs
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "extrato-csv",
		Short: "A CLI tool to import bank statement exports and categorize transactions.",
		Long: `extrato-csv imports bank statement exports (generic delimited text or the
Banco do Brasil CSV) into a standard CSV, auto-categorizing each transaction
with user-defined keyword rules and the history of previous assignments.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to extrato-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg

			ConfigureLogging(cfg)
			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Import command flags
	AppendHistory bool

	// Categorize command flags
	Description string
	TxType      string
	Amount      string
	Date        string
)

// ConfigureLogging applies the configured level and format to the shared
// logger.
func ConfigureLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if cfg.Log.Format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// Init initializes the root command and its persistent flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
