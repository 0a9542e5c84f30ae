package models

import (
	"fmt"
)

// RuleType restricts which transaction direction a rule applies to.
type RuleType string

const (
	RuleTypeIncome  RuleType = "income"
	RuleTypeExpense RuleType = "expense"
	RuleTypeBoth    RuleType = "both"
)

// Valid reports whether the rule type is one of the declared variants.
func (rt RuleType) Valid() bool {
	switch rt {
	case RuleTypeIncome, RuleTypeExpense, RuleTypeBoth:
		return true
	}
	return false
}

// AppliesTo reports whether a rule of this type may match a transaction of
// the given direction.
func (rt RuleType) AppliesTo(txType TransactionType) bool {
	if rt == RuleTypeBoth {
		return true
	}
	return string(rt) == string(txType)
}

// Rule is a user-defined keyword-to-category mapping used for automatic
// classification. Rules with higher Priority win over lower ones when several
// match the same description.
type Rule struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Category string   `yaml:"category"`
	Type     RuleType `yaml:"type"`
	IsActive bool     `yaml:"is_active"`
	Priority int      `yaml:"priority"`
}

// Validate checks the fields a rule needs before it can be stored.
func (r Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule name must not be empty")
	}
	if r.Category == "" {
		return fmt.Errorf("rule %q: category must not be empty", r.Name)
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("rule %q: at least one keyword is required", r.Name)
	}
	for _, kw := range r.Keywords {
		if kw == "" {
			return fmt.Errorf("rule %q: keywords must not be empty", r.Name)
		}
	}
	if !r.Type.Valid() {
		return fmt.Errorf("rule %q: invalid type %q (must be income, expense or both)", r.Name, r.Type)
	}
	return nil
}

// RulesConfig is the structure of the rules YAML file.
type RulesConfig struct {
	Rules []Rule `yaml:"rules"`
}
