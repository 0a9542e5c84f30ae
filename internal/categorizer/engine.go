// Package categorizer assigns categories to candidate transactions using two
// ranked strategies: user-defined keyword rules first, then a frequency-ranked
// history of previous assignments. Transactions that match neither receive the
// uncategorized sentinel for manual review.
package categorizer

import (
	"strings"

	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"
)

// Method identifies which strategy produced a category assignment.
type Method string

const (
	MethodRule    Method = "rule"
	MethodHistory Method = "history"
	MethodNone    Method = "none"
)

// Engine categorizes transactions. It is a pure function of the rules and
// history it was constructed with: it never mutates the rule set and never
// writes through to storage.
type Engine struct {
	rules              []models.Rule
	history            map[string]models.HistoryPattern
	uncategorizedLabel string
	logger             logging.Logger
}

// NewEngine creates an engine over the given rule set and history patterns.
// An empty uncategorizedLabel falls back to models.CategoryUncategorized.
func NewEngine(rules []models.Rule, history map[string]models.HistoryPattern, uncategorizedLabel string, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if uncategorizedLabel == "" {
		uncategorizedLabel = models.CategoryUncategorized
	}
	return &Engine{
		rules:              rules,
		history:            history,
		uncategorizedLabel: uncategorizedLabel,
		logger:             logger,
	}
}

// Categorize returns the category for one transaction and the method that
// produced it.
func (e *Engine) Categorize(tx models.CandidateTransaction) (string, Method) {
	if category, found := e.categorizeByRules(tx); found {
		return category, MethodRule
	}
	if category, found := e.categorizeByHistory(tx); found {
		return category, MethodHistory
	}
	return e.uncategorizedLabel, MethodNone
}

// CategorizeAll applies Categorize across a slice, filling in each
// transaction's Category, and returns the aggregate counts for reporting.
func (e *Engine) CategorizeAll(txs []models.CandidateTransaction) ([]models.CandidateTransaction, models.ImportStats) {
	stats := models.ImportStats{Total: len(txs)}

	out := make([]models.CandidateTransaction, len(txs))
	for i, tx := range txs {
		category, method := e.Categorize(tx)
		tx.Category = category
		out[i] = tx

		switch method {
		case MethodRule:
			stats.ByRule++
		case MethodHistory:
			stats.ByHistory++
		default:
			stats.Uncategorized++
		}
	}

	return out, stats
}

// categorizeByRules tests the active, type-compatible rules against the raw
// description. Among all matching rules the highest numeric priority wins;
// ties keep the rule encountered first in the collection.
func (e *Engine) categorizeByRules(tx models.CandidateTransaction) (string, bool) {
	description := strings.ToLower(tx.Description)

	var best *models.Rule
	for i := range e.rules {
		rule := &e.rules[i]
		if !rule.IsActive {
			continue
		}
		if !rule.Type.AppliesTo(tx.Type) {
			continue
		}
		if !ruleMatches(rule, description) {
			continue
		}
		if best == nil || rule.Priority > best.Priority {
			best = rule
		}
	}

	if best == nil {
		return "", false
	}

	e.logger.WithFields(
		logging.Field{Key: "rule", Value: best.Name},
		logging.Field{Key: "category", Value: best.Category},
		logging.Field{Key: "description", Value: tx.Description},
	).Debug("Transaction categorized by rule")

	return best.Category, true
}

// categorizeByHistory looks up the exact raw description in the derived
// history patterns.
func (e *Engine) categorizeByHistory(tx models.CandidateTransaction) (string, bool) {
	pattern, found := e.history[tx.Description]
	if !found {
		return "", false
	}

	e.logger.WithFields(
		logging.Field{Key: "category", Value: pattern.Category},
		logging.Field{Key: "count", Value: pattern.Count},
		logging.Field{Key: "description", Value: tx.Description},
	).Debug("Transaction categorized by history")

	return pattern.Category, true
}

func ruleMatches(rule *models.Rule, lowerDescription string) bool {
	for _, keyword := range rule.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowerDescription, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
