// Package genericparser parses generic delimited bank statement exports into
// candidate transactions. It detects the field separator and the positions of
// the date, description and amount columns from the header row, so it copes
// with exports from different banks as long as the usual Portuguese column
// names are present.
package genericparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"lmoraes/extrato-csv/internal/dateutils"
	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"
	"lmoraes/extrato-csv/internal/parsererror"
	"lmoraes/extrato-csv/internal/textutils"

	"github.com/shopspring/decimal"
)

// ColumnIndices holds the positions of the three required columns.
type ColumnIndices struct {
	Date        int
	Description int
	Amount      int
}

// Result is the outcome of parsing one statement file. Row-level failures are
// collected in RowErrors and never abort the remaining rows.
type Result struct {
	Transactions []models.CandidateTransaction
	RowErrors    []*parsererror.RowError
}

// Header column name prefixes, matched case-insensitively.
const (
	headerPrefixDate        = "data"
	headerPrefixDescription = "descri"
	headerPrefixAmount      = "valor"
)

// DetectSeparator inspects the first line for a tab, semicolon or comma, in
// that preference order, defaulting to comma.
func DetectSeparator(text string) rune {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}

	switch {
	case strings.ContainsRune(firstLine, '\t'):
		return '\t'
	case strings.ContainsRune(firstLine, ';'):
		return ';'
	default:
		return ','
	}
}

// ParseHeaderColumns locates the date, description and amount columns in the
// header row. A missing column is fatal for the whole import.
func ParseHeaderColumns(headerLine string, sep rune) (ColumnIndices, error) {
	indices := ColumnIndices{Date: -1, Description: -1, Amount: -1}

	for i, field := range strings.Split(headerLine, string(sep)) {
		name := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(field), `"`)))
		switch {
		case indices.Date < 0 && strings.HasPrefix(name, headerPrefixDate):
			indices.Date = i
		case indices.Description < 0 && strings.HasPrefix(name, headerPrefixDescription):
			indices.Description = i
		case indices.Amount < 0 && strings.HasPrefix(name, headerPrefixAmount):
			indices.Amount = i
		}
	}

	var missing []string
	if indices.Date < 0 {
		missing = append(missing, "data")
	}
	if indices.Description < 0 {
		missing = append(missing, "descrição")
	}
	if indices.Amount < 0 {
		missing = append(missing, "valor")
	}
	if len(missing) > 0 {
		return indices, &parsererror.HeaderError{Missing: missing}
	}

	return indices, nil
}

// Parse reads a delimited statement from r and returns the candidate
// transactions together with the row errors. Header detection failure and a
// file with zero valid rows are returned as errors.
func Parse(r io.Reader, logger logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	headerParsed := false
	var sep rune
	var indices ColumnIndices
	result := &Result{}

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !headerParsed {
			sep = DetectSeparator(line)
			var err error
			indices, err = ParseHeaderColumns(line, sep)
			if err != nil {
				logger.WithError(err).Error("Failed to locate statement columns")
				return nil, err
			}
			headerParsed = true
			logger.Debug("Statement header detected",
				logging.Field{Key: "separator", Value: string(sep)},
				logging.Field{Key: "date_col", Value: indices.Date},
				logging.Field{Key: "description_col", Value: indices.Description},
				logging.Field{Key: "amount_col", Value: indices.Amount})
			continue
		}

		tx, rowErr := ParseRow(line, lineNum, sep, indices)
		if rowErr != nil {
			result.RowErrors = append(result.RowErrors, rowErr)
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading statement: %w", err)
	}

	if !headerParsed {
		return nil, &parsererror.HeaderError{Missing: []string{"data", "descrição", "valor"}}
	}

	if len(result.Transactions) == 0 {
		return nil, &parsererror.EmptyImportError{}
	}

	logger.Info("Statement parsed",
		logging.Field{Key: "transactions", Value: len(result.Transactions)},
		logging.Field{Key: "row_errors", Value: len(result.RowErrors)})

	return result, nil
}

// ParseFile parses a statement file from disk.
func ParseFile(filePath string, logger logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField("file", filePath).Info("Parsing statement file")

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to open statement file")
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	result, err := Parse(file, logger)
	if err != nil {
		if _, ok := err.(*parsererror.EmptyImportError); ok {
			return nil, &parsererror.EmptyImportError{File: filePath}
		}
		return nil, err
	}
	return result, nil
}

// ParseRow converts one data line into a candidate transaction. Failures are
// reported as a RowError carrying the 1-based line number.
func ParseRow(line string, lineNum int, sep rune, indices ColumnIndices) (models.CandidateTransaction, *parsererror.RowError) {
	fields := strings.Split(line, string(sep))

	nonEmpty := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			nonEmpty++
		}
	}
	if nonEmpty < 3 {
		return models.CandidateTransaction{}, parsererror.NewRowError(lineNum, "número insuficiente de colunas")
	}

	rawDate := fieldAt(fields, indices.Date)
	rawDescription := fieldAt(fields, indices.Description)
	rawAmount := fieldAt(fields, indices.Amount)
	if rawDate == "" || rawDescription == "" || rawAmount == "" {
		return models.CandidateTransaction{}, parsererror.NewRowError(lineNum, "campos obrigatórios ausentes")
	}

	date, err := dateutils.NormalizeDate(rawDate)
	if err != nil {
		return models.CandidateTransaction{}, parsererror.NewRowError(lineNum, fmt.Sprintf("data inválida: %q", rawDate))
	}

	amount, err := parseSignedAmount(rawAmount)
	if err != nil {
		return models.CandidateTransaction{}, parsererror.NewRowError(lineNum, fmt.Sprintf("valor inválido: %q", rawAmount))
	}

	// The sign only decides the direction; the stored amount is absolute.
	txType := models.TypeIncome
	if amount.IsNegative() {
		txType = models.TypeExpense
	}

	tokens := textutils.TokenizeDescription(rawDescription)

	return models.CandidateTransaction{
		Date:               date,
		Description:        rawDescription,
		CleanedDescription: textutils.CorrectTypos(textutils.NormalizeText(rawDescription)),
		Tokens:             tokens,
		Amount:             amount.Abs(),
		Type:               txType,
		Confidence:         CalculateConfidence(rawDescription, tokens),
	}, nil
}

// CalculateConfidence scores how useful a parsed description is for
// classification. Advisory metadata only; nothing in the pipeline branches
// on it.
func CalculateConfidence(description string, tokens []string) float64 {
	confidence := 0.5

	length := len([]rune(strings.TrimSpace(description)))
	if length > 5 {
		confidence += 0.2
	}
	if length < 3 {
		confidence -= 0.3
	}

	if len(tokens) >= 1 {
		confidence += 0.2
	} else {
		confidence -= 0.4
	}
	if len(tokens) > 2 {
		confidence += 0.1
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// parseSignedAmount parses a statement amount keeping its sign. A comma is
// treated as the decimal separator, in which case dots are thousand markers
// ("1.234,56" -> 1234.56).
func parseSignedAmount(raw string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(raw)
	amount = strings.ReplaceAll(amount, "R$", "")
	amount = strings.ReplaceAll(amount, " ", "")
	if strings.Contains(amount, ",") {
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	}
	return decimal.NewFromString(amount)
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}
