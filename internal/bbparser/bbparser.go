// Package bbparser parses the Banco do Brasil CSV statement export. The
// format has six comma-separated, possibly quoted columns: date, lançamento,
// detalhes, documento, valor and tipo de lançamento. Balance-summary and
// zero-value housekeeping rows are silently skipped; they are bookkeeping
// noise, not malformed data.
package bbparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"lmoraes/extrato-csv/internal/dateutils"
	"lmoraes/extrato-csv/internal/genericparser"
	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"
	"lmoraes/extrato-csv/internal/parsererror"
	"lmoraes/extrato-csv/internal/textutils"

	"github.com/shopspring/decimal"
)

const expectedColumns = 6

// Column positions in the Banco do Brasil export.
const (
	colDate = iota
	colLancamento
	colDetalhes
	colDocumento
	colValor
	colTipoLancamento
)

// Keywords that mark an incoming transaction when the tipo column is not
// conclusive.
var incomeKeywords = []string{"salario", "deposito", "rendimento", "credito", "recebido"}

// Result mirrors the generic parser result: parsed transactions plus the
// collected row errors. Skipped housekeeping rows are counted separately.
type Result struct {
	Transactions []models.CandidateTransaction
	RowErrors    []*parsererror.RowError
	Skipped      int
}

// Parse reads a Banco do Brasil CSV statement from r.
func Parse(r io.Reader, logger logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count is validated per row
	reader.LazyQuotes = true

	result := &Result{}
	lineNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading Banco do Brasil CSV: %w", err)
		}
		lineNum++

		if lineNum == 1 && isHeaderRow(record) {
			continue
		}

		if len(record) != expectedColumns {
			result.RowErrors = append(result.RowErrors,
				parsererror.NewRowError(lineNum, fmt.Sprintf("esperadas %d colunas, encontradas %d", expectedColumns, len(record))))
			continue
		}

		if isHousekeepingRow(record) {
			result.Skipped++
			continue
		}

		tx, rowErr := parseRecord(record, lineNum)
		if rowErr != nil {
			result.RowErrors = append(result.RowErrors, rowErr)
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	if len(result.Transactions) == 0 {
		return nil, &parsererror.EmptyImportError{}
	}

	logger.Info("Banco do Brasil statement parsed",
		logging.Field{Key: "transactions", Value: len(result.Transactions)},
		logging.Field{Key: "row_errors", Value: len(result.RowErrors)},
		logging.Field{Key: "skipped", Value: result.Skipped})

	return result, nil
}

// ParseFile parses a Banco do Brasil CSV file from disk.
func ParseFile(filePath string, logger logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField("file", filePath).Info("Parsing Banco do Brasil statement file")

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

func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return strings.HasPrefix(first, "data")
}

// isHousekeepingRow recognizes the balance and zero-value rows the export
// interleaves with real transactions.
func isHousekeepingRow(record []string) bool {
	date := strings.TrimSpace(record[colDate])
	valor := strings.TrimSpace(record[colValor])
	lancamento := strings.TrimSpace(record[colLancamento])

	if date == "00/00/0000" {
		return true
	}
	if valor == "" || valor == "0,00" {
		return true
	}
	return strings.Contains(lancamento, "Saldo")
}

func parseRecord(record []string, lineNum int) (models.CandidateTransaction, *parsererror.RowError) {
	rawDate := strings.TrimSpace(record[colDate])
	date, err := dateutils.NormalizeDate(rawDate)
	if err != nil {
		return models.CandidateTransaction{}, parsererror.NewRowError(lineNum, fmt.Sprintf("data inválida: %q", rawDate))
	}

	rawValor := strings.TrimSpace(record[colValor])
	amount, err := parseValor(rawValor)
	if err != nil {
		return models.CandidateTransaction{}, parsererror.NewRowError(lineNum, fmt.Sprintf("valor inválido: %q", rawValor))
	}

	description := strings.TrimSpace(strings.TrimSpace(record[colLancamento]) + " " + strings.TrimSpace(record[colDetalhes]))
	if description == "" {
		return models.CandidateTransaction{}, parsererror.NewRowError(lineNum, "descrição ausente")
	}

	txType := deriveType(record[colTipoLancamento], description, amount)
	tokens := textutils.TokenizeDescription(description)

	return models.CandidateTransaction{
		Date:               date,
		Description:        description,
		CleanedDescription: textutils.CorrectTypos(textutils.NormalizeText(description)),
		Tokens:             tokens,
		Amount:             amount.Abs(),
		Type:               txType,
		Confidence:         genericparser.CalculateConfidence(description, tokens),
	}, nil
}

// deriveType prefers the explicit tipo de lançamento column and falls back to
// keyword cues on the description, then to the amount sign.
func deriveType(tipoLancamento, description string, amount decimal.Decimal) models.TransactionType {
	tipo := strings.ToLower(strings.TrimSpace(tipoLancamento))
	if strings.Contains(tipo, "entrada") {
		return models.TypeIncome
	}
	if strings.Contains(tipo, "saida") || strings.Contains(tipo, "saída") {
		return models.TypeExpense
	}

	cleaned := textutils.NormalizeText(description)
	for _, kw := range incomeKeywords {
		if strings.Contains(cleaned, kw) {
			return models.TypeIncome
		}
	}

	if amount.IsNegative() {
		return models.TypeExpense
	}
	return models.TypeIncome
}

func parseValor(raw string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(raw)
	amount = strings.ReplaceAll(amount, "R$", "")
	amount = strings.ReplaceAll(amount, " ", "")
	if strings.Contains(amount, ",") {
		amount = strings.ReplaceAll(amount, ".", "")
		amount = strings.ReplaceAll(amount, ",", ".")
	}
	return decimal.NewFromString(amount)
}
