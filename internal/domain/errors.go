package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas). Los mensajes son los que ve el cliente.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUserNotFound        = errors.New("User not found")
	ErrEmailAlreadyExists  = errors.New("Email already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicate           = errors.New("Duplicate field value entered")
	ErrUnauthorized        = errors.New("User not authenticated")
	ErrForbidden           = errors.New("Insufficient permissions")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrAccountInactive     = errors.New("User account is inactive")
	ErrInvalidRefreshToken = errors.New("Invalid refresh token")
	ErrInsufficientStock   = errors.New("Insufficient stock")
	ErrInvalidFileType     = errors.New("Invalid file type. Only JPEG, PNG, WEBP allowed")
	ErrFileTooLarge        = errors.New("File too large. Maximum size is 5MB")
	ErrFileRequired        = errors.New("No file uploaded")
	ErrConflict            = errors.New("Product was modified concurrently, please retry")
)

// FieldError falla de validación de un campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las fallas de un payload (no se detiene en la primera).
type ValidationError struct {
	Fields []FieldError
}

// Error une los mensajes con ", ".
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// Messages devuelve los mensajes individuales.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Message)
	}
	return out
}

// NewValidationError atajo para un solo campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
