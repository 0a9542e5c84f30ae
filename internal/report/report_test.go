package report

import (
	"fmt"
	"testing"

	"lmoraes/extrato-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowErrors(n int) []*parsererror.RowError {
	errs := make([]*parsererror.RowError, n)
	for i := range errs {
		errs[i] = parsererror.NewRowError(i+2, fmt.Sprintf("motivo %d", i+1))
	}
	return errs
}

func TestErrorSummaryEmpty(t *testing.T) {
	r := ImportReport{}
	assert.Nil(t, r.ErrorSummary())
}

func TestErrorSummaryUnderLimit(t *testing.T) {
	r := ImportReport{RowErrors: rowErrors(3)}

	lines := r.ErrorSummary()
	require.Len(t, lines, 3)
	assert.Equal(t, "Linha 2: motivo 1", lines[0])
	assert.Equal(t, "Linha 4: motivo 3", lines[2])
}

func TestErrorSummaryAtLimit(t *testing.T) {
	r := ImportReport{RowErrors: rowErrors(5)}

	lines := r.ErrorSummary()
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.NotContains(t, line, "more")
	}
}

func TestErrorSummaryOverLimit(t *testing.T) {
	r := ImportReport{RowErrors: rowErrors(8)}

	lines := r.ErrorSummary()
	require.Len(t, lines, 6)
	assert.Equal(t, "Linha 2: motivo 1", lines[0])
	assert.Equal(t, "Linha 6: motivo 5", lines[4])
	assert.Equal(t, "+3 more", lines[5])
}
