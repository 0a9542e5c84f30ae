// Package common holds the import flow shared by the statement commands.
package common

import (
	"fmt"

	"lmoraes/extrato-csv/internal/categorizer"
	internalcommon "lmoraes/extrato-csv/internal/common"
	"lmoraes/extrato-csv/internal/config"
	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"
	"lmoraes/extrato-csv/internal/parsererror"
	"lmoraes/extrato-csv/internal/report"
	"lmoraes/extrato-csv/internal/store"
)

// ImportInput bundles what a statement parser produced for one file.
type ImportInput struct {
	Source       string
	Candidates   []models.CandidateTransaction
	RowErrors    []*parsererror.RowError
	Skipped      int
	OutputFile   string
	AppendToHist bool
}

// ProcessImport categorizes parsed candidates against the stored rules and
// history, writes the standard CSV and logs the import report. The caller
// owns parsing; this owns everything after it.
func ProcessImport(in ImportInput, cfg *config.Config, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	ruleStore := store.NewRuleStore(cfg.Data.RulesFile, logger)
	rules, err := ruleStore.Load()
	if err != nil {
		return fmt.Errorf("error loading rules: %w", err)
	}

	txStore := store.NewTransactionStore(cfg.Data.TransactionsFile, logger)
	recorded, err := txStore.Load()
	if err != nil {
		return fmt.Errorf("error loading transaction history: %w", err)
	}
	history := categorizer.BuildHistory(recorded)

	engine := categorizer.NewEngine(rules, history, cfg.Categorization.UncategorizedLabel, logger)
	categorized, stats := engine.CategorizeAll(in.Candidates)

	transactions := make([]models.Transaction, len(categorized))
	for i, candidate := range categorized {
		transactions[i] = candidate.ToTransaction()
	}

	if err := internalcommon.WriteTransactionsToCSV(transactions, in.OutputFile, logger); err != nil {
		return err
	}

	if in.AppendToHist {
		if err := txStore.Append(transactions); err != nil {
			return fmt.Errorf("error appending to transaction history: %w", err)
		}
	}

	report.ImportReport{
		Source:    in.Source,
		Parsed:    len(transactions),
		Skipped:   in.Skipped,
		Stats:     stats,
		RowErrors: in.RowErrors,
	}.Log(logger)

	return nil
}
