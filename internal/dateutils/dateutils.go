// Package dateutils provides the date operations used by the statement parsers.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
)

// NormalizeDate converts a statement date into ISO YYYY-MM-DD form. Brazilian
// DD/MM/YYYY dates are converted; dates already in ISO form pass through. A
// trailing time component ("15/01/2024 10:30") is truncated at the first
// space before parsing.
func NormalizeDate(dateStr string) (string, error) {
	cleaned := strings.TrimSpace(dateStr)
	if idx := strings.IndexByte(cleaned, ' '); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if cleaned == "" {
		return "", fmt.Errorf("empty date")
	}

	if t, err := time.Parse(DateLayoutBrazilian, cleaned); err == nil {
		return t.Format(DateLayoutISO), nil
	}
	if t, err := time.Parse(DateLayoutISO, cleaned); err == nil {
		return t.Format(DateLayoutISO), nil
	}

	return "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
