// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is one recorded income or expense event. This is the shape that
// gets persisted to the standard CSV and read back to derive history patterns.
type Transaction struct {
	Date        string          `csv:"Data"`
	Description string          `csv:"Descricao"`
	Amount      decimal.Decimal `csv:"Valor"`
	Type        TransactionType `csv:"Tipo"`
	Category    string          `csv:"Categoria"`
}

// IsExpense returns true for outgoing money.
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsIncome returns true for incoming money.
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// ParseAmount parses a string amount into a decimal, accepting a comma as the
// decimal separator and stripping currency noise. Returns decimal.Zero when
// the string cannot be parsed; callers that must distinguish a bad amount from
// a genuine zero should validate the raw string first.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "R$", "")

	// Brazilian exports use "1.234,56"; when both separators appear the dots
	// are thousand markers.
	if strings.Contains(amount, ",") {
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
