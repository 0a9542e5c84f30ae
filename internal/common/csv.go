// Package common provides the shared CSV reading and writing used by the
// commands and the transaction store.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"lmoraes/extrato-csv/internal/logging"
	"lmoraes/extrato-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// Delimiter is the output CSV delimiter, configurable via the csv.delimiter
// config key.
var Delimiter rune = ','

// SetDelimiter sets the delimiter used when reading and writing the standard
// CSV format.
func SetDelimiter(delim rune) {
	Delimiter = delim

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		return r
	})
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(w)
	})
}

// WriteTransactionsToCSV writes transactions to a CSV file in the standard
// format. All commands use this function so the output stays consistent.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(transactions) == 0 {
		return fmt.Errorf("no transactions to write")
	}

	file, err := os.OpenFile(csvFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionDataFile) // #nosec G304
	if err != nil {
		logger.WithError(err).Error("Failed to create output CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&transactions, file); err != nil {
		logger.WithError(err).Error("Failed to write transactions to CSV")
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	logger.Info("Transactions written to CSV",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(transactions)})
	return nil
}

// ReadTransactionsFromCSV reads transactions from a standard-format CSV file.
// A missing file yields an empty slice, not an error.
func ReadTransactionsFromCSV(csvFile string, logger logging.Logger) ([]models.Transaction, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	file, err := os.Open(csvFile) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField("file", csvFile).Debug("Transactions file not found, starting empty")
			return []models.Transaction{}, nil
		}
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var transactions []models.Transaction
	if err := gocsv.UnmarshalFile(file, &transactions); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return []models.Transaction{}, nil
		}
		logger.WithError(err).Error("Failed to parse transactions CSV")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.WithField("count", len(transactions)).Debug("Transactions read from CSV")
	return transactions, nil
}
