package ingesting

import (
	"errors"
	"fmt"
)

// Erros de arquivo (fatais, nenhuma linha é gravada)
var (
	ErrUnknownFormat   = errors.New("unknown report format")
	ErrAmbiguousFormat = errors.New("ambiguous report format")
	ErrSourceRead      = errors.New("error reading report file")
)

// Erros de linha (a linha é descartada e a importação continua)
var (
	ErrDateParse       = errors.New("invalid week date")
	ErrUnknownChannel  = errors.New("unknown channel")
	ErrMalformedNumber = errors.New("malformed number")
	ErrMissingField    = errors.New("missing required field")
)

// ErrStorage interrompe a importação; linhas já gravadas permanecem
var ErrStorage = errors.New("storage operation failed")

// Tipos de erro de linha registrados no resumo
const (
	KindDateParse       = "DateParseError"
	KindUnknownChannel  = "UnknownChannelError"
	KindMalformedNumber = "MalformedNumberError"
	KindMissingField    = "MissingFieldError"
)

// RowError é um erro de linha com o campo e o valor que o causaram
type RowError struct {
	Err     error  // Erro base
	Field   string // Campo canônico
	Value   string // Valor bruto lido do arquivo
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *RowError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", e.Err.Error(), e.Field, e.Value)
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *RowError) Unwrap() error {
	return e.Err
}

// Kind retorna o tipo estável do erro
func (e *RowError) Kind() string {
	return ErrorKind(e.Err)
}

// NewRowError cria um novo RowError
func NewRowError(err error, field, value, details string) *RowError {
	return &RowError{
		Err:     err,
		Field:   field,
		Value:   value,
		Details: details,
	}
}

// ErrorKind mapeia um erro de linha para o seu tipo; retorna vazio para erros fatais
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrDateParse):
		return KindDateParse
	case errors.Is(err, ErrUnknownChannel):
		return KindUnknownChannel
	case errors.Is(err, ErrMalformedNumber):
		return KindMalformedNumber
	case errors.Is(err, ErrMissingField):
		return KindMissingField
	}
	return ""
}

// IsRowError verifica se o erro permite descartar a linha e continuar
func IsRowError(err error) bool {
	return ErrorKind(err) != ""
}

// IsFileError verifica se o erro invalida o arquivo inteiro
func IsFileError(err error) bool {
	return errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrAmbiguousFormat) ||
		errors.Is(err, ErrSourceRead)
}
