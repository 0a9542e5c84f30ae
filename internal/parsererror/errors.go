// Package parsererror defines the error types shared by the statement parsers.
package parsererror

import "fmt"

// RowError represents a failure to parse one statement row. The row is
// excluded from the import but does not abort it.
type RowError struct {
	Line   int // 1-based line number in the input file
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Linha %d: %s", e.Line, e.Reason)
}

// NewRowError creates a RowError for the given 1-based line.
func NewRowError(line int, reason string) *RowError {
	return &RowError{Line: line, Reason: reason}
}

// HeaderError represents a failure to locate the required columns in the
// header row. This is fatal for the whole import.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	if len(e.Missing) == 0 {
		return "colunas obrigatórias não encontradas no cabeçalho"
	}
	return fmt.Sprintf("colunas obrigatórias não encontradas no cabeçalho: %v", e.Missing)
}

// EmptyImportError indicates that no row of the file produced a valid
// transaction. Also fatal for the whole import.
type EmptyImportError struct {
	File string
}

func (e *EmptyImportError) Error() string {
	if e.File == "" {
		return "nenhuma transação válida encontrada"
	}
	return fmt.Sprintf("nenhuma transação válida encontrada em %s", e.File)
}
