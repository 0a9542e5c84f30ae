// Package bancodobrasil handles the Banco do Brasil statement import command
package bancodobrasil

import (
	"lmoraes/extrato-csv/cmd/common"
	"lmoraes/extrato-csv/cmd/root"
	"lmoraes/extrato-csv/internal/bbparser"
	"lmoraes/extrato-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the Banco do Brasil import command
var Cmd = &cobra.Command{
	Use:   "bb",
	Short: "Import a Banco do Brasil CSV statement",
	Long: `Import the six-column Banco do Brasil CSV export, skipping balance and
zero-value housekeeping rows.`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().BoolVar(&root.AppendHistory, "append-history", false, "Append imported transactions to the stored history")
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Banco do Brasil import command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Both --input and --output are required")
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	result, err := bbparser.ParseFile(root.SharedFlags.Input, logger)
	if err != nil {
		root.Log.Fatalf("Error importing statement: %v", err)
	}

	err = common.ProcessImport(common.ImportInput{
		Source:       "banco-do-brasil",
		Candidates:   result.Transactions,
		RowErrors:    result.RowErrors,
		Skipped:      result.Skipped,
		OutputFile:   root.SharedFlags.Output,
		AppendToHist: root.AppendHistory,
	}, root.Cfg, logger)
	if err != nil {
		root.Log.Fatalf("Error processing statement: %v", err)
	}

	root.Log.Info("Statement import completed successfully!")
}
