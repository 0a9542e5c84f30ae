// Package store provides persistence for categorization rules and recorded
// transactions.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lmoraes/extrato-csv/internal/common"
	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// RuleStore manages loading and saving of categorization rules.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store backed by the given YAML file.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &RuleStore{
		RulesFile: rulesFile,
		logger:    logger,
	}
}

// FindConfigFile looks for a data file in the standard locations: the path
// itself, ./config/, and ~/.config/extrato-csv/.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "extrato-csv", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads the rule set from the YAML file. A missing file yields an empty
// rule set, not an error.
func (s *RuleStore) Load() ([]models.Rule, error) {
	filePath, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", s.RulesFile).Debug("Rules file not found, starting empty")
			return []models.Rule{}, nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var config models.RulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "count", Value: len(config.Rules)},
	).Debug("Rules loaded")

	return config.Rules, nil
}

// Save writes the rule set back to the YAML file.
func (s *RuleStore) Save(rules []models.Rule) error {
	data, err := yaml.Marshal(models.RulesConfig{Rules: rules})
	if err != nil {
		return fmt.Errorf("error serializing rules: %w", err)
	}

	filePath := s.RulesFile
	if found, err := s.FindConfigFile(s.RulesFile); err == nil {
		filePath = found
	}

	if err := os.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "count", Value: len(rules)},
	).Debug("Rules saved")
	return nil
}

// Add validates a rule, assigns it an ID when empty, and persists the grown
// rule set. Duplicate rule names are rejected.
func (s *RuleStore) Add(rule models.Rule) (models.Rule, error) {
	if err := rule.Validate(); err != nil {
		return models.Rule{}, err
	}

	rules, err := s.Load()
	if err != nil {
		return models.Rule{}, err
	}

	for _, existing := range rules {
		if strings.EqualFold(existing.Name, rule.Name) {
			return models.Rule{}, fmt.Errorf("a rule named %q already exists", rule.Name)
		}
	}

	if rule.ID == "" {
		rule.ID = nextRuleID(rules)
	}

	rules = append(rules, rule)
	if err := s.Save(rules); err != nil {
		return models.Rule{}, err
	}
	return rule, nil
}

// Remove deletes the rule with the given ID or name.
func (s *RuleStore) Remove(idOrName string) error {
	rules, err := s.Load()
	if err != nil {
		return err
	}

	idx := findRule(rules, idOrName)
	if idx < 0 {
		return fmt.Errorf("rule %q not found", idOrName)
	}

	rules = append(rules[:idx], rules[idx+1:]...)
	return s.Save(rules)
}

// Toggle flips the active flag of the rule with the given ID or name and
// returns the new state.
func (s *RuleStore) Toggle(idOrName string) (bool, error) {
	rules, err := s.Load()
	if err != nil {
		return false, err
	}

	idx := findRule(rules, idOrName)
	if idx < 0 {
		return false, fmt.Errorf("rule %q not found", idOrName)
	}

	rules[idx].IsActive = !rules[idx].IsActive
	if err := s.Save(rules); err != nil {
		return false, err
	}
	return rules[idx].IsActive, nil
}

// Update replaces the rule with the same ID after validation.
func (s *RuleStore) Update(rule models.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	rules, err := s.Load()
	if err != nil {
		return err
	}

	idx := findRule(rules, rule.ID)
	if idx < 0 {
		return fmt.Errorf("rule %q not found", rule.ID)
	}

	for i, existing := range rules {
		if i != idx && strings.EqualFold(existing.Name, rule.Name) {
			return fmt.Errorf("a rule named %q already exists", rule.Name)
		}
	}

	rules[idx] = rule
	return s.Save(rules)
}

func findRule(rules []models.Rule, idOrName string) int {
	for i, rule := range rules {
		if rule.ID == idOrName || strings.EqualFold(rule.Name, idOrName) {
			return i
		}
	}
	return -1
}

func nextRuleID(rules []models.Rule) string {
	max := 0
	for _, rule := range rules {
		suffix := strings.TrimPrefix(rule.ID, "rule-")
		if n, err := strconv.Atoi(suffix); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("rule-%d", max+1)
}

// TransactionStore manages the persisted transaction records that feed the
// categorization history.
type TransactionStore struct {
	TransactionsFile string
	logger           logging.Logger
}

// NewTransactionStore creates a store backed by the given CSV file.
func NewTransactionStore(transactionsFile string, logger logging.Logger) *TransactionStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &TransactionStore{
		TransactionsFile: transactionsFile,
		logger:           logger,
	}
}

// Load reads all recorded transactions. A missing file yields an empty slice.
func (s *TransactionStore) Load() ([]models.Transaction, error) {
	return common.ReadTransactionsFromCSV(s.TransactionsFile, s.logger)
}

// Append adds newly imported transactions to the stored history and rewrites
// the file.
func (s *TransactionStore) Append(transactions []models.Transaction) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}
	merged := append(existing, transactions...)
	return common.WriteTransactionsToCSV(merged, s.TransactionsFile, s.logger)
}
