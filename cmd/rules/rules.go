// Package rules handles the categorization rule management commands
package rules

import (
	"lmoraes/extrato-csv/cmd/root"
	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"
	"lmoraes/extrato-csv/internal/store"

	"github.com/spf13/cobra"
)

var (
	ruleName     string
	ruleCategory string
	ruleKeywords []string
	ruleType     string
	rulePriority int
	ruleInactive bool
)

// Cmd represents the rules command group
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage categorization rules",
	Long:  `List, add, remove and toggle the keyword rules used for automatic categorization.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categorization rules",
	Run:   listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a categorization rule",
	Run:   addFunc,
}

var removeCmd = &cobra.Command{
	Use:   "remove <id-or-name>",
	Short: "Remove a categorization rule",
	Args:  cobra.ExactArgs(1),
	Run:   removeFunc,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id-or-name>",
	Short: "Activate or deactivate a categorization rule",
	Args:  cobra.ExactArgs(1),
	Run:   toggleFunc,
}

func init() {
	addCmd.Flags().StringVarP(&ruleName, "name", "n", "", "Rule name")
	addCmd.Flags().StringVarP(&ruleCategory, "category", "c", "", "Category the rule assigns")
	addCmd.Flags().StringSliceVarP(&ruleKeywords, "keywords", "k", nil, "Keywords matched against descriptions")
	addCmd.Flags().StringVarP(&ruleType, "type", "t", "both", "Transaction type the rule applies to (income, expense or both)")
	addCmd.Flags().IntVarP(&rulePriority, "priority", "p", 0, "Rule priority (higher wins)")
	addCmd.Flags().BoolVar(&ruleInactive, "inactive", false, "Create the rule deactivated")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("keywords")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(toggleCmd)
}

func newRuleStore() *store.RuleStore {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	return store.NewRuleStore(root.Cfg.Data.RulesFile, logger)
}

func listFunc(cmd *cobra.Command, args []string) {
	rules, err := newRuleStore().Load()
	if err != nil {
		root.Log.Fatalf("Error loading rules: %v", err)
	}

	if len(rules) == 0 {
		root.Log.Info("No rules defined")
		return
	}

	for _, rule := range rules {
		state := "active"
		if !rule.IsActive {
			state = "inactive"
		}
		root.Log.Infof("%s  %-20s  %-20s  type=%-7s  priority=%d  [%s]  keywords=%v",
			rule.ID, rule.Name, rule.Category, rule.Type, rule.Priority, state, rule.Keywords)
	}
}

func addFunc(cmd *cobra.Command, args []string) {
	rule := models.Rule{
		Name:     ruleName,
		Category: ruleCategory,
		Keywords: ruleKeywords,
		Type:     models.RuleType(ruleType),
		Priority: rulePriority,
		IsActive: !ruleInactive,
	}

	created, err := newRuleStore().Add(rule)
	if err != nil {
		root.Log.Fatalf("Error adding rule: %v", err)
	}
	root.Log.Infof("Rule %s (%s) created", created.ID, created.Name)
}

func removeFunc(cmd *cobra.Command, args []string) {
	if err := newRuleStore().Remove(args[0]); err != nil {
		root.Log.Fatalf("Error removing rule: %v", err)
	}
	root.Log.Infof("Rule %s removed", args[0])
}

func toggleFunc(cmd *cobra.Command, args []string) {
	active, err := newRuleStore().Toggle(args[0])
	if err != nil {
		root.Log.Fatalf("Error toggling rule: %v", err)
	}
	if active {
		root.Log.Infof("Rule %s is now active", args[0])
	} else {
		root.Log.Infof("Rule %s is now inactive", args[0])
	}
}
