package categorizer

import (
	"testing"

	"lmoraes/extrato-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorded(description, category string) models.Transaction {
	return models.Transaction{
		Date:        "2024-01-15",
		Description: description,
		Type:        models.TypeExpense,
		Category:    category,
	}
}

func TestBuildHistoryCountsByDescription(t *testing.T) {
	history := BuildHistory([]models.Transaction{
		recorded("Uber", "Transporte"),
		recorded("Uber", "Transporte"),
		recorded("Padaria", "Alimentação"),
	})

	require.Len(t, history, 2)
	assert.Equal(t, models.HistoryPattern{Description: "Uber", Category: "Transporte", Count: 2}, history["Uber"])
	assert.Equal(t, models.HistoryPattern{Description: "Padaria", Category: "Alimentação", Count: 1}, history["Padaria"])
}

func TestBuildHistoryMostFrequentCategoryWins(t *testing.T) {
	history := BuildHistory([]models.Transaction{
		recorded("Uber", "Lazer"),
		recorded("Uber", "Transporte"),
		recorded("Uber", "Transporte"),
	})

	assert.Equal(t, "Transporte", history["Uber"].Category)
	assert.Equal(t, 2, history["Uber"].Count)
}

func TestBuildHistoryTieGoesToLatestRecord(t *testing.T) {
	history := BuildHistory([]models.Transaction{
		recorded("Uber", "Lazer"),
		recorded("Uber", "Transporte"),
	})

	assert.Equal(t, "Transporte", history["Uber"].Category)
}

func TestBuildHistoryIgnoresUncategorized(t *testing.T) {
	history := BuildHistory([]models.Transaction{
		recorded("Uber", models.CategoryUncategorized),
		recorded("Uber", ""),
		recorded("", "Transporte"),
	})

	assert.Empty(t, history)
}
