package models

import (
	"github.com/shopspring/decimal"
)

// CandidateTransaction is a transaction parsed out of one statement row,
// before it is persisted. The sign of the original amount is carried only in
// Type; Amount is always non-negative. Category is empty until the
// categorization engine runs, and holds the uncategorized sentinel when
// neither a rule nor a history pattern matched.
type CandidateTransaction struct {
	Date               string
	Description        string
	CleanedDescription string
	Tokens             []string
	Amount             decimal.Decimal
	Type               TransactionType
	Confidence         float64
	Category           string
}

// ToTransaction converts the candidate into the persisted record shape.
func (c CandidateTransaction) ToTransaction() Transaction {
	return Transaction{
		Date:        c.Date,
		Description: c.Description,
		Amount:      c.Amount,
		Type:        c.Type,
		Category:    c.Category,
	}
}
