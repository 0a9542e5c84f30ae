package categorizer

import (
	"strings"
	"testing"

	"lmoraes/extrato-csv/internal/genericparser"
	"lmoraes/extrato-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(description string, txType models.TransactionType) models.CandidateTransaction {
	return models.CandidateTransaction{
		Description: description,
		Type:        txType,
	}
}

func activeRule(name, keyword, category string, ruleType models.RuleType, priority int) models.Rule {
	return models.Rule{
		ID:       name,
		Name:     name,
		Keywords: []string{keyword},
		Category: category,
		Type:     ruleType,
		IsActive: true,
		Priority: priority,
	}
}

func TestCategorizeByRule(t *testing.T) {
	rules := []models.Rule{
		activeRule("mercado", "supermercado", "Alimentação", models.RuleTypeExpense, 1),
	}
	engine := NewEngine(rules, nil, "", nil)

	category, method := engine.Categorize(candidate("Compra supermercado centro", models.TypeExpense))
	assert.Equal(t, "Alimentação", category)
	assert.Equal(t, MethodRule, method)
}

func TestRuleKeywordMatchIsCaseInsensitiveSubstring(t *testing.T) {
	rules := []models.Rule{
		activeRule("uber", "UBER", "Transporte", models.RuleTypeExpense, 1),
	}
	engine := NewEngine(rules, nil, "", nil)

	category, method := engine.Categorize(candidate("uber *trip 99", models.TypeExpense))
	assert.Equal(t, "Transporte", category)
	assert.Equal(t, MethodRule, method)
}

func TestHighestPriorityWins(t *testing.T) {
	rules := []models.Rule{
		activeRule("genérica", "supermercado", "Compras", models.RuleTypeExpense, 1),
		activeRule("específica", "supermercado", "Alimentação", models.RuleTypeExpense, 5),
	}
	engine := NewEngine(rules, nil, "", nil)

	category, _ := engine.Categorize(candidate("Compra supermercado", models.TypeExpense))
	assert.Equal(t, "Alimentação", category)
}

func TestPriorityTieKeepsFirstRule(t *testing.T) {
	rules := []models.Rule{
		activeRule("primeira", "supermercado", "Alimentação", models.RuleTypeExpense, 3),
		activeRule("segunda", "supermercado", "Compras", models.RuleTypeExpense, 3),
	}
	engine := NewEngine(rules, nil, "", nil)

	category, _ := engine.Categorize(candidate("Compra supermercado", models.TypeExpense))
	assert.Equal(t, "Alimentação", category)
}

func TestInactiveRuleNeverMatches(t *testing.T) {
	rule := activeRule("mercado", "supermercado", "Alimentação", models.RuleTypeExpense, 1)
	rule.IsActive = false
	engine := NewEngine([]models.Rule{rule}, nil, "", nil)

	category, method := engine.Categorize(candidate("Compra supermercado", models.TypeExpense))
	assert.Equal(t, models.CategoryUncategorized, category)
	assert.Equal(t, MethodNone, method)
}

func TestRuleTypeCompatibility(t *testing.T) {
	rules := []models.Rule{
		activeRule("salário", "salário", "Renda", models.RuleTypeIncome, 1),
		activeRule("qualquer", "pix", "Transferências", models.RuleTypeBoth, 1),
	}
	engine := NewEngine(rules, nil, "", nil)

	// Income rule does not fire for an expense
	category, method := engine.Categorize(candidate("Adiantamento salário", models.TypeExpense))
	assert.Equal(t, models.CategoryUncategorized, category)
	assert.Equal(t, MethodNone, method)

	// A "both" rule fires for either direction
	category, _ = engine.Categorize(candidate("pix recebido", models.TypeIncome))
	assert.Equal(t, "Transferências", category)
	category, _ = engine.Categorize(candidate("pix enviado", models.TypeExpense))
	assert.Equal(t, "Transferências", category)
}

func TestHistoryFallback(t *testing.T) {
	history := map[string]models.HistoryPattern{
		"Compra supermercado": {Description: "Compra supermercado", Category: "Alimentação", Count: 4},
	}
	engine := NewEngine(nil, history, "", nil)

	category, method := engine.Categorize(candidate("Compra supermercado", models.TypeExpense))
	assert.Equal(t, "Alimentação", category)
	assert.Equal(t, MethodHistory, method)
}

func TestHistoryLookupIsExact(t *testing.T) {
	history := map[string]models.HistoryPattern{
		"Compra supermercado": {Description: "Compra supermercado", Category: "Alimentação", Count: 4},
	}
	engine := NewEngine(nil, history, "", nil)

	category, method := engine.Categorize(candidate("compra supermercado", models.TypeExpense))
	assert.Equal(t, models.CategoryUncategorized, category)
	assert.Equal(t, MethodNone, method)
}

func TestRuleWinsOverHistory(t *testing.T) {
	rules := []models.Rule{
		activeRule("mercado", "supermercado", "Alimentação", models.RuleTypeExpense, 1),
	}
	history := map[string]models.HistoryPattern{
		"Compra supermercado": {Description: "Compra supermercado", Category: "Lazer", Count: 9},
	}
	engine := NewEngine(rules, history, "", nil)

	category, method := engine.Categorize(candidate("Compra supermercado", models.TypeExpense))
	assert.Equal(t, "Alimentação", category)
	assert.Equal(t, MethodRule, method)
}

func TestCustomUncategorizedLabel(t *testing.T) {
	engine := NewEngine(nil, nil, "Revisar", nil)

	category, _ := engine.Categorize(candidate("Desconhecido", models.TypeExpense))
	assert.Equal(t, "Revisar", category)
}

func TestCategorizeAll(t *testing.T) {
	rules := []models.Rule{
		activeRule("mercado", "supermercado", "Alimentação", models.RuleTypeExpense, 1),
	}
	history := map[string]models.HistoryPattern{
		"Uber": {Description: "Uber", Category: "Transporte", Count: 2},
	}
	engine := NewEngine(rules, history, "", nil)

	txs := []models.CandidateTransaction{
		candidate("Compra supermercado", models.TypeExpense),
		candidate("Uber", models.TypeExpense),
		candidate("Coisa nova", models.TypeExpense),
	}

	categorized, stats := engine.CategorizeAll(txs)
	require.Len(t, categorized, 3)
	assert.Equal(t, "Alimentação", categorized[0].Category)
	assert.Equal(t, "Transporte", categorized[1].Category)
	assert.Equal(t, models.CategoryUncategorized, categorized[2].Category)

	assert.Equal(t, models.ImportStats{Total: 3, ByRule: 1, ByHistory: 1, Uncategorized: 1}, stats)

	// Engine must not mutate its input slice
	assert.Empty(t, txs[0].Category)
}

func TestEndToEndImportScenario(t *testing.T) {
	input := "Data,Descrição,Valor\n" +
		"15/01/2024,Compra supermercado,-150.50\n" +
		"16/01/2024,Salário,3000.00\n"

	result, err := genericparser.Parse(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)

	rules := []models.Rule{
		activeRule("mercado", "supermercado", "Alimentação", models.RuleTypeExpense, 1),
	}
	engine := NewEngine(rules, nil, "", nil)
	categorized, stats := engine.CategorizeAll(result.Transactions)

	first := categorized[0]
	assert.Equal(t, "2024-01-15", first.Date)
	assert.Equal(t, models.TypeExpense, first.Type)
	assert.Equal(t, "Alimentação", first.Category)

	second := categorized[1]
	assert.Equal(t, "2024-01-16", second.Date)
	assert.Equal(t, models.TypeIncome, second.Type)
	assert.Equal(t, models.CategoryUncategorized, second.Category)

	assert.Equal(t, models.ImportStats{Total: 2, ByRule: 1, Uncategorized: 1}, stats)
}
