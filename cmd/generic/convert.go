// Package generic handles the generic delimited statement import command
package generic

import (
	"lmoraes/extrato-csv/cmd/common"
	"lmoraes/extrato-csv/cmd/root"
	"lmoraes/extrato-csv/internal/genericparser"
	"lmoraes/extrato-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the generic import command
var Cmd = &cobra.Command{
	Use:   "generic",
	Short: "Import a generic delimited statement",
	Long: `Import a generic delimited statement (tab, semicolon or comma separated)
whose header names the date, description and amount columns.`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().BoolVar(&root.AppendHistory, "append-history", false, "Append imported transactions to the stored history")
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Generic import command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Both --input and --output are required")
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	result, err := genericparser.ParseFile(root.SharedFlags.Input, logger)
	if err != nil {
		root.Log.Fatalf("Error importing statement: %v", err)
	}

	err = common.ProcessImport(common.ImportInput{
		Source:       "generic",
		Candidates:   result.Transactions,
		RowErrors:    result.RowErrors,
		OutputFile:   root.SharedFlags.Output,
		AppendToHist: root.AppendHistory,
	}, root.Cfg, logger)
	if err != nil {
		root.Log.Fatalf("Error processing statement: %v", err)
	}

	root.Log.Info("Statement import completed successfully!")
}
