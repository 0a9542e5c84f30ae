// Package report renders the outcome of an import for user display.
package report

import (
	"fmt"

	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"
	"lmoraes/extrato-csv/internal/parsererror"
)

// maxDisplayedErrors caps how many row errors are shown in full; the rest are
// summarized as a "+N more" line.
const maxDisplayedErrors = 5

// ImportReport summarizes one import run.
type ImportReport struct {
	Source    string
	Parsed    int
	Skipped   int
	Stats     models.ImportStats
	RowErrors []*parsererror.RowError
}

// ErrorSummary returns the first errors verbatim plus a trailing summary line
// when more were collected.
func (r ImportReport) ErrorSummary() []string {
	if len(r.RowErrors) == 0 {
		return nil
	}

	shown := len(r.RowErrors)
	if shown > maxDisplayedErrors {
		shown = maxDisplayedErrors
	}

	lines := make([]string, 0, shown+1)
	for _, rowErr := range r.RowErrors[:shown] {
		lines = append(lines, rowErr.Error())
	}
	if remaining := len(r.RowErrors) - shown; remaining > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", remaining))
	}
	return lines
}

// Log writes the report through the structured logger.
func (r ImportReport) Log(logger logging.Logger) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	r.Stats.LogSummary(logger, r.Source)

	if r.Skipped > 0 {
		logger.Info("Housekeeping rows skipped",
			logging.Field{Key: "source", Value: r.Source},
			logging.Field{Key: "skipped", Value: r.Skipped})
	}

	if len(r.RowErrors) > 0 {
		logger.Warn("Rows excluded from import",
			logging.Field{Key: "source", Value: r.Source},
			logging.Field{Key: "count", Value: len(r.RowErrors)})
		for _, line := range r.ErrorSummary() {
			logger.Warn(line)
		}
	}
}
