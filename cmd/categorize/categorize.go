// Package categorize handles the single-transaction categorization command
package categorize

import (
	"lmoraes/extrato-csv/cmd/root"
	"lmoraes/extrato-csv/internal/categorizer"
	"lmoraes/extrato-csv/internal/genericparser"
	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"
	"lmoraes/extrato-csv/internal/store"
	"lmoraes/extrato-csv/internal/textutils"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Resolve one transaction description against the stored rules and the
history of previous assignments, and print the resulting category.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&root.TxType, "type", "t", "expense", "Transaction type (income or expense)")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Transaction amount (optional)")
	Cmd.Flags().StringVar(&root.Date, "date", "", "Transaction date (optional)")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Categorize command called")

	txType := models.TransactionType(root.TxType)
	if txType != models.TypeIncome && txType != models.TypeExpense {
		root.Log.Fatalf("Invalid transaction type %q (must be income or expense)", root.TxType)
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	ruleStore := store.NewRuleStore(root.Cfg.Data.RulesFile, logger)
	rules, err := ruleStore.Load()
	if err != nil {
		root.Log.Fatalf("Error loading rules: %v", err)
	}

	txStore := store.NewTransactionStore(root.Cfg.Data.TransactionsFile, logger)
	recorded, err := txStore.Load()
	if err != nil {
		root.Log.Fatalf("Error loading transaction history: %v", err)
	}

	tokens := textutils.TokenizeDescription(root.Description)
	candidate := models.CandidateTransaction{
		Date:               root.Date,
		Description:        root.Description,
		CleanedDescription: textutils.CorrectTypos(textutils.NormalizeText(root.Description)),
		Tokens:             tokens,
		Amount:             models.ParseAmount(root.Amount).Abs(),
		Type:               txType,
		Confidence:         genericparser.CalculateConfidence(root.Description, tokens),
	}

	engine := categorizer.NewEngine(rules, categorizer.BuildHistory(recorded), root.Cfg.Categorization.UncategorizedLabel, logger)
	category, method := engine.Categorize(candidate)

	root.Log.Infof("Category: %s (via %s)", category, method)
}
