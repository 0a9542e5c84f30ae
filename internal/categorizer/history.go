package categorizer

import (
	"lmoraes/extrato-csv/internal/models"
)

// BuildHistory aggregates previously recorded transactions into history
// patterns, grouping by exact description string and counting how often each
// category was used. For each description the most frequent category wins;
// on equal counts the category recorded later takes over. Uncategorized
// records carry no signal and are ignored.
//
// The map is rebuilt on every import pass. Volumes are small enough that
// caching would buy nothing.
func BuildHistory(transactions []models.Transaction) map[string]models.HistoryPattern {
	type accumulator struct {
		counts    map[string]int
		best      string
		bestCount int
	}

	acc := make(map[string]*accumulator)
	for _, tx := range transactions {
		if tx.Description == "" || tx.Category == "" || tx.Category == models.CategoryUncategorized {
			continue
		}

		a, ok := acc[tx.Description]
		if !ok {
			a = &accumulator{counts: make(map[string]int)}
			acc[tx.Description] = a
		}

		a.counts[tx.Category]++
		if a.counts[tx.Category] >= a.bestCount {
			a.best = tx.Category
			a.bestCount = a.counts[tx.Category]
		}
	}

	history := make(map[string]models.HistoryPattern, len(acc))
	for description, a := range acc {
		history[description] = models.HistoryPattern{
			Description: description,
			Category:    a.best,
			Count:       a.bestCount,
		}
	}
	return history
}
