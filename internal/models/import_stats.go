package models

import (
	"lmoraes/extrato-csv/internal/logging"
)

// ImportStats tracks how the transactions of one import were categorized.
type ImportStats struct {
	Total         int // Total number of transactions processed
	ByRule        int // Categorized by a keyword rule
	ByHistory     int // Categorized by a history pattern
	Uncategorized int // Left with the uncategorized sentinel
}

// Categorized returns the number of transactions that received a category.
func (s ImportStats) Categorized() int {
	return s.ByRule + s.ByHistory
}

// SuccessRate returns the categorized share as a percentage.
func (s ImportStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Categorized()) / float64(s.Total) * 100.0
}

// LogSummary logs a summary of the categorization outcome.
func (s ImportStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.Field{Key: "source", Value: source},
		logging.Field{Key: "total", Value: s.Total},
		logging.Field{Key: "by_rule", Value: s.ByRule},
		logging.Field{Key: "by_history", Value: s.ByHistory},
		logging.Field{Key: "uncategorized", Value: s.Uncategorized},
		logging.Field{Key: "success_rate", Value: s.SuccessRate()},
	)
}
