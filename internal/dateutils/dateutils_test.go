package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   string
		expectedOk bool
	}{
		{"Brazilian format", "15/01/2024", "2024-01-15", true},
		{"Already ISO", "2024-01-15", "2024-01-15", true},
		{"Trailing time truncated", "2024-01-15 10:30", "2024-01-15", true},
		{"Brazilian with trailing time", "15/01/2024 08:00:00", "2024-01-15", true},
		{"Surrounding whitespace", "  15/01/2024  ", "2024-01-15", true},
		{"Empty string", "", "", false},
		{"Whitespace only", "   ", "", false},
		{"Impossible day", "31/02/2024", "", false},
		{"Not a date", "quinze de janeiro", "", false},
		{"Zero date", "00/00/0000", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := NormalizeDate(tc.input)
			if tc.expectedOk {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToISODate(t *testing.T) {
	date := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15", ToISODate(date))
}
