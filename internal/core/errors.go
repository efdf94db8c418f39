// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
)

// AppError is an error that knows how it is rendered to API clients.
// Message and Details are public; Err is kept for logs only.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Details    any
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Usuário não autenticado"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "Acesso negado: permissão insuficiente"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, http.StatusNotFound)
}

func InvalidInputError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest)
}

func ValidationError(details []FieldError) *AppError {
	appErr := NewAppError(ErrInvalidInput, "Dados inválidos", http.StatusBadRequest)
	appErr.Details = details
	return appErr
}

func InvalidIDError() *AppError {
	return InvalidInputError("ID inválido")
}

func TokenMissingError() *AppError {
	return NewAppError(ErrUnauthorized, "Token não fornecido", http.StatusUnauthorized)
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "Token expirado", http.StatusUnauthorized)
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "Token inválido", http.StatusUnauthorized)
}

func TokenRevokedError() *AppError {
	return NewAppError(ErrTokenRevoked, "Token revogado", http.StatusUnauthorized)
}

func InternalError(err error, message string) *AppError {
	if message == "" {
		message = "Erro interno do servidor"
	}
	return NewAppError(err, message, http.StatusInternalServerError)
}
