package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken = errors.New("token ausente")
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")
	ErrUserDisabled = errors.New("usuário desativado")
)

// AuthError é um erro de autenticação com detalhes
type AuthError struct {
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(baseErr error, details string) *AuthError {
	return &AuthError{Err: baseErr, Details: details}
}
