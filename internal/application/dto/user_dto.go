package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/pkg/jwt"
	"github.com/jhoicas/catalogo-admin-api/pkg/password"
)

// RegisterRequest entrada para registro: email, password, fullName.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=2"`
}

// Normalize recorta espacios y pasa el email a minúsculas.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
}

// Messages mensajes propios por campo y regla.
func (r *RegisterRequest) Messages() map[string]string {
	return authMessages
}

// ValidateFields bcrypt sólo admite hasta 72 bytes; la etiqueta max cuenta runas.
func (r *RegisterRequest) ValidateFields() []domain.FieldError {
	if len(r.Password) > password.MaxBytes {
		return []domain.FieldError{PasswordTooLongError()}
	}
	return nil
}

// PasswordTooLongError error de campo para contraseñas de más de 72 bytes.
func PasswordTooLongError() domain.FieldError {
	return domain.FieldError{Field: "password", Message: "Password must be at most 72 bytes long"}
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Normalize recorta espacios y pasa el email a minúsculas.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Messages mensajes propios por campo y regla.
func (r *LoginRequest) Messages() map[string]string {
	return authMessages
}

// RefreshRequest entrada para renovar el par de tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

var authMessages = map[string]string{
	"email.email":       "Email must be a valid email address",
	"email.required":    "Email is required",
	"password.min":      "Password must be at least 6 characters",
	"password.required": "Password is required",
	"fullName.min":      "Full name must be at least 2 characters",
	"fullName.required": "Full name is required",
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterResponse usuario creado más su par de tokens.
type RegisterResponse struct {
	User   UserResponse  `json:"user"`
	Tokens jwt.TokenPair `json:"tokens"`
}

// LoginResponse usuario más tokens al mismo nivel.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
